package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
	"github.com/sourcegraph/conc/pool"
)

// Dashboard is the student home view.
type Dashboard struct {
	Enrollments         []enrollment.Enrollment
	Certificates        []certificate.Certificate
	UnreadNotifications int
	WishlistCount       int
	CompletedCourses    int
	InProgressCourses   int
}

type DashboardService struct {
	enrollments   enrollment.Repository
	certificates  certificate.Repository
	notifications notification.Repository
	wishlist      wishlist.Repository
}

func NewDashboardService(
	enrollments enrollment.Repository,
	certificates certificate.Repository,
	notifications notification.Repository,
	wishlistRepo wishlist.Repository,
) *DashboardService {
	return &DashboardService{
		enrollments:   enrollments,
		certificates:  certificates,
		notifications: notifications,
		wishlist:      wishlistRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	var out Dashboard
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.enrollments.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list enrollments for dashboard: %w", err)
		}
		out.Enrollments = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.certificates.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list certificates for dashboard: %w", err)
		}
		out.Certificates = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := s.notifications.CountUnread(ctx, userID)
		if err != nil {
			return fmt.Errorf("count unread notifications for dashboard: %w", err)
		}
		out.UnreadNotifications = count
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := s.wishlist.CountByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count wishlist for dashboard: %w", err)
		}
		out.WishlistCount = count
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	for _, item := range out.Enrollments {
		if item.IsCompleted() {
			out.CompletedCourses++
		} else {
			out.InProgressCourses++
		}
	}
	return out, nil
}

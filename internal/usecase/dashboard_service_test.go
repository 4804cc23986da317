package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
	certificatemock "github.com/riskibarqy/course-marketplace/internal/mocks/domain/certificate"
	"github.com/stretchr/testify/mock"
)

func TestDashboardService_Get(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)
	m.addProfile(t, "ins", user.RoleInstructor)
	done, doneLessons := m.addCourse(t, "done", "ins", 0, 1)
	started, _ := m.addCourse(t, "started", "ins", 0, 2)
	wanted, _ := m.addCourse(t, "wanted", "ins", 0, 1)

	for _, courseID := range []string{done.ID, started.ID} {
		if _, err := m.enrollSvc.Enroll(ctx, "stu", courseID); err != nil {
			t.Fatalf("enroll %s: %v", courseID, err)
		}
	}
	if _, err := m.enrollSvc.MarkLessonComplete(ctx, "stu", doneLessons[0].ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	if err := m.wishlist.Add(ctx, wishlist.Item{ID: "w-1", UserID: "stu", CourseID: wanted.ID, CreatedAt: fixedNow}); err != nil {
		t.Fatalf("add wishlist: %v", err)
	}

	got, err := m.dashboardSvc.Get(ctx, "stu")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(got.Enrollments) != 2 || got.CompletedCourses != 1 || got.InProgressCourses != 1 {
		t.Fatalf("unexpected enrollment summary: %+v", got)
	}
	if len(got.Certificates) != 1 {
		t.Fatalf("expected 1 certificate, got %d", len(got.Certificates))
	}
	// two enrollment confirmations and one completion
	if got.UnreadNotifications != 3 {
		t.Fatalf("expected 3 unread notifications, got %d", got.UnreadNotifications)
	}
	if got.WishlistCount != 1 {
		t.Fatalf("expected 1 wishlist item, got %d", got.WishlistCount)
	}
}

func TestDashboardService_GetPropagatesFailureUsingMockery(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	certs := certificatemock.NewRepository(t)
	certs.
		On("ListByUser", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "stu").
		Return([]certificate.Certificate(nil), errors.New("connection reset")).
		Once()

	service := NewDashboardService(m.enrollments, certs, m.notifications, m.wishlist)
	if _, err := service.Get(t.Context(), "stu"); err == nil {
		t.Fatalf("expected dashboard error when certificates fail")
	}
}

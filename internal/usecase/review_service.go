package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/review"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
)

type ReviewService struct {
	repo        review.Repository
	enrollments enrollment.Repository
	ids         id.Generator
	now         func() time.Time
}

func NewReviewService(repo review.Repository, enrollments enrollment.Repository, ids id.Generator) *ReviewService {
	return &ReviewService{repo: repo, enrollments: enrollments, ids: ids, now: time.Now}
}

// Upsert writes the caller's review of a course they are enrolled in.
func (s *ReviewService) Upsert(ctx context.Context, userID, courseID string, rating int, comment string) (review.Review, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReviewService.Upsert")
	defer span.End()

	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return review.Review{}, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}
	if _, enrolled, err := s.enrollments.Get(ctx, userID, courseID); err != nil {
		return review.Review{}, fmt.Errorf("get enrollment: %w", err)
	} else if !enrolled {
		return review.Review{}, fmt.Errorf("%w: only enrolled students can review", ErrForbidden)
	}

	reviewID, err := s.ids.NewID()
	if err != nil {
		return review.Review{}, fmt.Errorf("generate review id: %w", err)
	}
	now := s.now().UTC()
	item := review.Review{
		ID:        reviewID,
		UserID:    userID,
		CourseID:  courseID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.ValidateBasic(); err != nil {
		return review.Review{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.repo.Upsert(ctx, item)
	if err != nil {
		return review.Review{}, fmt.Errorf("upsert review: %w", err)
	}
	return stored, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, courseID string) error {
	ok, err := s.repo.Delete(ctx, userID, strings.TrimSpace(courseID))
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: review not found", ErrNotFound)
	}
	return nil
}

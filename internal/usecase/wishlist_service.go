package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
)

type WishlistService struct {
	repo    wishlist.Repository
	courses course.Repository
	ids     id.Generator
	now     func() time.Time
}

func NewWishlistService(repo wishlist.Repository, courses course.Repository, ids id.Generator) *WishlistService {
	return &WishlistService{repo: repo, courses: courses, ids: ids, now: time.Now}
}

func (s *WishlistService) Add(ctx context.Context, userID, courseID string) error {
	item, err := publishedCourse(ctx, s.courses, courseID)
	if err != nil {
		return err
	}
	itemID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate wishlist id: %w", err)
	}
	if err := s.repo.Add(ctx, wishlist.Item{
		ID:        itemID,
		UserID:    userID,
		CourseID:  item.ID,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, courseID string) error {
	ok, err := s.repo.Remove(ctx, userID, strings.TrimSpace(courseID))
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: course not in wishlist", ErrNotFound)
	}
	return nil
}

func (s *WishlistService) Contains(ctx context.Context, userID, courseID string) (bool, error) {
	ok, err := s.repo.Contains(ctx, userID, strings.TrimSpace(courseID))
	if err != nil {
		return false, fmt.Errorf("check wishlist: %w", err)
	}
	return ok, nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]wishlist.Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

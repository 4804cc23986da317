package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
)

type WishlistRepository struct {
	s *Store
}

func NewWishlistRepository(s *Store) *WishlistRepository {
	return &WishlistRepository{s: s}
}

func (r *WishlistRepository) Add(_ context.Context, item wishlist.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(item.UserID, item.CourseID)
	if _, ok := r.s.wishlist[key]; !ok {
		r.s.wishlist[key] = item
	}
	return nil
}

func (r *WishlistRepository) Remove(_ context.Context, userID, courseID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(userID, courseID)
	if _, ok := r.s.wishlist[key]; !ok {
		return false, nil
	}
	delete(r.s.wishlist, key)
	return true, nil
}

func (r *WishlistRepository) Contains(_ context.Context, userID, courseID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.wishlist[pairKey(userID, courseID)]
	return ok, nil
}

func (r *WishlistRepository) ListByUser(_ context.Context, userID string) ([]wishlist.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]wishlist.Item, 0)
	for _, item := range r.s.wishlist {
		if item.UserID != userID {
			continue
		}
		c := r.s.courses[item.CourseID]
		item.CourseTitle = c.Title
		item.CourseSlug = c.Slug
		item.CourseThumbnailURL = c.ThumbnailURL
		item.CoursePrice = c.Price
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *WishlistRepository) CountByUser(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, item := range r.s.wishlist {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/review"
)

type ReviewRepository struct {
	s *Store
}

func NewReviewRepository(s *Store) *ReviewRepository {
	return &ReviewRepository{s: s}
}

func (r *ReviewRepository) Upsert(_ context.Context, item review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(item.UserID, item.CourseID)
	if existing, ok := r.s.reviews[key]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	r.s.reviews[key] = item
	return r.decorate(item), nil
}

func (r *ReviewRepository) Delete(_ context.Context, userID, courseID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(userID, courseID)
	if _, ok := r.s.reviews[key]; !ok {
		return false, nil
	}
	delete(r.s.reviews, key)
	return true, nil
}

func (r *ReviewRepository) ListByCourse(_ context.Context, courseID string) ([]review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]review.Review, 0)
	for _, item := range r.s.reviews {
		if item.CourseID == courseID {
			out = append(out, r.decorate(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReviewRepository) AverageByCourse(_ context.Context, courseIDs []string) (map[string]float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, item := range r.s.reviews {
		sums[item.CourseID] += item.Rating
		counts[item.CourseID]++
	}
	out := make(map[string]float64, len(courseIDs))
	for _, courseID := range courseIDs {
		if n := counts[courseID]; n > 0 {
			out[courseID] = float64(sums[courseID]) / float64(n)
		}
	}
	return out, nil
}

func (r *ReviewRepository) decorate(item review.Review) review.Review {
	profile := r.s.profiles[item.UserID]
	item.ReviewerName = profile.FullName
	item.ReviewerAvatarURL = profile.AvatarURL
	return item
}

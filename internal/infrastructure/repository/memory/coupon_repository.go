package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
)

type CouponRepository struct {
	s *Store
}

func NewCouponRepository(s *Store) *CouponRepository {
	return &CouponRepository{s: s}
}

func (r *CouponRepository) Create(_ context.Context, item coupon.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.coupons {
		if existing.Code == item.Code {
			return coupon.ErrCodeTaken
		}
	}
	r.s.coupons[item.ID] = item
	return nil
}

func (r *CouponRepository) GetByCode(_ context.Context, code string) (coupon.Coupon, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.coupons {
		if item.Code == code {
			return item, true, nil
		}
	}
	return coupon.Coupon{}, false, nil
}

func (r *CouponRepository) List(_ context.Context) ([]coupon.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]coupon.Coupon, 0, len(r.s.coupons))
	for _, item := range r.s.coupons {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CouponRepository) Deactivate(_ context.Context, couponID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.coupons[couponID]
	if !ok {
		return false, nil
	}
	item.IsActive = false
	r.s.coupons[couponID] = item
	return true, nil
}

func (r *CouponRepository) HasRedeemed(_ context.Context, couponID, userID, courseID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.redemptions {
		if item.CouponID == couponID && item.UserID == userID && item.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

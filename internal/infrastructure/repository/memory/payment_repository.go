package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
)

type PaymentRepository struct {
	s *Store
}

func NewPaymentRepository(s *Store) *PaymentRepository {
	return &PaymentRepository{s: s}
}

func (r *PaymentRepository) Create(_ context.Context, params payment.CreateParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record := params.Payment
	if params.Redemption != nil {
		item, ok := r.s.coupons[params.Redemption.CouponID]
		if !ok || item.CurrentUses >= item.MaxUses {
			return coupon.ErrExhausted
		}
		for _, existing := range r.s.redemptions {
			if existing.CouponID == item.ID && existing.UserID == record.UserID && existing.CourseID == record.CourseID {
				return coupon.ErrAlreadyRedeemed
			}
		}
		item.CurrentUses++
		r.s.coupons[item.ID] = item
		r.s.redemptions[params.Redemption.ID] = coupon.Redemption{
			ID:        params.Redemption.ID,
			CouponID:  item.ID,
			UserID:    record.UserID,
			CourseID:  record.CourseID,
			PaymentID: record.ID,
			CreatedAt: record.CreatedAt,
		}
	}
	r.s.payments[record.ID] = record
	return nil
}

func (r *PaymentRepository) GetByID(_ context.Context, paymentID string) (payment.Payment, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.payments[paymentID]
	if !ok {
		return payment.Payment{}, false, nil
	}
	return r.decorate(item), true, nil
}

func (r *PaymentRepository) ListByUser(_ context.Context, userID string) ([]payment.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, item := range r.s.payments {
		if item.UserID == userID {
			out = append(out, r.decorate(item))
		}
	}
	sortPayments(out)
	return out, nil
}

func (r *PaymentRepository) List(_ context.Context, filter payment.ListFilter) ([]payment.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, item := range r.s.payments {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, r.decorate(item))
	}
	sortPayments(out)
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *PaymentRepository) Totals(_ context.Context) (payment.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := payment.Totals{CountByStatus: make(map[payment.Status]int)}
	for _, item := range r.s.payments {
		out.CountByStatus[item.Status]++
		switch item.Status {
		case payment.StatusCompleted:
			out.CompletedAmount += item.Amount
		case payment.StatusPending:
			out.PendingAmount += item.Amount
		}
	}
	return out, nil
}

func (r *PaymentRepository) Transition(_ context.Context, paymentID string, from []payment.Status, to payment.Status, notes string) (payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.payments[paymentID]
	if !ok {
		return payment.Payment{}, fmt.Errorf("payment %s not found", paymentID)
	}
	if !slices.Contains(from, item.Status) {
		return payment.Payment{}, payment.ErrInvalidTransition
	}
	item.Status = to
	if notes != "" {
		item.Notes = notes
	}
	r.s.payments[paymentID] = item
	return r.decorate(item), nil
}

func (r *PaymentRepository) Approve(_ context.Context, params payment.ApproveParams) (payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.payments[params.PaymentID]
	if !ok {
		return payment.Payment{}, fmt.Errorf("payment %s not found", params.PaymentID)
	}
	if !payment.CanTransition(item.Status, payment.StatusCompleted) {
		return payment.Payment{}, payment.ErrInvalidTransition
	}
	item.Status = payment.StatusCompleted
	item.UpdatedAt = params.At
	r.s.payments[item.ID] = item

	r.s.enroll(enrollment.Enrollment{
		ID:         params.EnrollmentID,
		UserID:     item.UserID,
		CourseID:   item.CourseID,
		EnrolledAt: params.At,
	})
	return r.decorate(item), nil
}

func (r *PaymentRepository) RevenueByCourse(_ context.Context, courseIDs []string, status payment.Status) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]int64, len(courseIDs))
	for _, item := range r.s.payments {
		if item.Status == status && slices.Contains(courseIDs, item.CourseID) {
			out[item.CourseID] += item.Amount
		}
	}
	return out, nil
}

func (r *PaymentRepository) decorate(item payment.Payment) payment.Payment {
	item.CourseTitle = r.s.courses[item.CourseID].Title
	profile := r.s.profiles[item.UserID]
	item.UserName = profile.FullName
	item.UserEmail = profile.Email
	return item
}

func sortPayments(items []payment.Payment) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

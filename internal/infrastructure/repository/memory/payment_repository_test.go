package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
)

func seedPaidCourse(t *testing.T, store *Store) course.Course {
	t.Helper()

	item := course.Course{
		ID:           "course-1",
		Title:        "Data Structures",
		Slug:         "data-structures",
		Price:        50000,
		InstructorID: "instructor-1",
		UniversityID: SeedUniversities()[0].ID,
		Level:        course.Level2nd,
		IsPublished:  true,
	}
	if err := NewCourseRepository(store).Create(context.Background(), item); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return item
}

func pendingPayment(n int, userID, courseID string, at time.Time) payment.Payment {
	return payment.Payment{
		ID:            fmt.Sprintf("payment-%d", n),
		UserID:        userID,
		CourseID:      courseID,
		Amount:        40000,
		Method:        payment.MethodInstapay,
		Status:        payment.StatusPending,
		TransactionID: fmt.Sprintf("txn-%d", n),
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func TestPaymentRepository_CouponUsesNeverExceedMax(t *testing.T) {
	t.Parallel()

	store := NewStore()
	item := seedPaidCourse(t, store)
	coupons := NewCouponRepository(store)
	payments := NewPaymentRepository(store)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := coupons.Create(t.Context(), coupon.Coupon{
		ID:                 "coupon-1",
		Code:               "SAVE20",
		DiscountPercentage: 20,
		MaxUses:            3,
		IsActive:           true,
		CreatedAt:          now,
	}); err != nil {
		t.Fatalf("create coupon: %v", err)
	}

	const buyers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		exhausted int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := payments.Create(t.Context(), payment.CreateParams{
				Payment:    pendingPayment(n, fmt.Sprintf("user-%d", n), item.ID, now),
				Redemption: &payment.Redemption{ID: fmt.Sprintf("redemption-%d", n), CouponID: "coupon-1"},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, coupon.ErrExhausted):
				exhausted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 3 || exhausted != buyers-3 {
		t.Fatalf("expected 3 successes and %d exhausted, got %d and %d", buyers-3, succeeded, exhausted)
	}
	stored, ok, err := coupons.GetByCode(t.Context(), "SAVE20")
	if err != nil || !ok {
		t.Fatalf("get coupon: ok=%v err=%v", ok, err)
	}
	if stored.CurrentUses != 3 {
		t.Fatalf("expected current uses 3, got %d", stored.CurrentUses)
	}
}

func TestPaymentRepository_RejectsSecondRedemptionBySameUser(t *testing.T) {
	t.Parallel()

	store := NewStore()
	item := seedPaidCourse(t, store)
	payments := NewPaymentRepository(store)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := NewCouponRepository(store).Create(t.Context(), coupon.Coupon{
		ID: "coupon-1", Code: "ONCE", DiscountPercentage: 10, MaxUses: 10, IsActive: true,
	}); err != nil {
		t.Fatalf("create coupon: %v", err)
	}

	first := payment.CreateParams{
		Payment:    pendingPayment(1, "user-1", item.ID, now),
		Redemption: &payment.Redemption{ID: "redemption-1", CouponID: "coupon-1"},
	}
	if err := payments.Create(t.Context(), first); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	second := payment.CreateParams{
		Payment:    pendingPayment(2, "user-1", item.ID, now.Add(time.Minute)),
		Redemption: &payment.Redemption{ID: "redemption-2", CouponID: "coupon-1"},
	}
	if err := payments.Create(t.Context(), second); !errors.Is(err, coupon.ErrAlreadyRedeemed) {
		t.Fatalf("expected ErrAlreadyRedeemed, got %v", err)
	}
	if _, ok, _ := payments.GetByID(t.Context(), "payment-2"); ok {
		t.Fatalf("rejected checkout must not store a payment")
	}
}

func TestPaymentRepository_ApproveEnrollsOnce(t *testing.T) {
	t.Parallel()

	store := NewStore()
	item := seedPaidCourse(t, store)
	payments := NewPaymentRepository(store)
	enrollments := NewEnrollmentRepository(store)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := payments.Create(t.Context(), payment.CreateParams{Payment: pendingPayment(1, "user-1", item.ID, now)}); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	approved, err := payments.Approve(t.Context(), payment.ApproveParams{PaymentID: "payment-1", EnrollmentID: "enrollment-1", At: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != payment.StatusCompleted {
		t.Fatalf("expected completed, got %s", approved.Status)
	}
	if approved.CourseTitle != item.Title {
		t.Fatalf("expected decorated course title, got %q", approved.CourseTitle)
	}

	enrolled, ok, err := enrollments.Get(t.Context(), "user-1", item.ID)
	if err != nil || !ok {
		t.Fatalf("expected enrollment after approval: ok=%v err=%v", ok, err)
	}
	if enrolled.ID != "enrollment-1" || enrolled.ProgressPercentage != 0 {
		t.Fatalf("unexpected enrollment: %+v", enrolled)
	}

	if _, err := payments.Approve(t.Context(), payment.ApproveParams{PaymentID: "payment-1", EnrollmentID: "enrollment-2", At: now}); !errors.Is(err, payment.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}

	totals, err := payments.Totals(t.Context())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.CompletedAmount != 40000 || totals.CountByStatus[payment.StatusCompleted] != 1 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

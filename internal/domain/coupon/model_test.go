package coupon

import (
	"errors"
	"testing"
	"time"
)

func TestCoupon_Check(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	base := Coupon{
		ID:                 "c-1",
		Code:               "SPRING10",
		DiscountPercentage: 10,
		MaxUses:            5,
		CurrentUses:        1,
		ValidFrom:          &past,
		ValidUntil:         &future,
		IsActive:           true,
	}

	tests := []struct {
		name     string
		mutate   func(*Coupon)
		courseID string
		want     error
	}{
		{name: "valid unscoped", mutate: func(*Coupon) {}, courseID: "course-1"},
		{name: "valid scoped", mutate: func(c *Coupon) { c.CourseID = "course-1" }, courseID: "course-1"},
		{name: "no window", mutate: func(c *Coupon) { c.ValidFrom, c.ValidUntil = nil, nil }, courseID: "course-1"},
		{name: "inactive", mutate: func(c *Coupon) { c.IsActive = false }, want: ErrInactive},
		{name: "not started", mutate: func(c *Coupon) { c.ValidFrom = &future }, want: ErrNotStarted},
		{name: "expired", mutate: func(c *Coupon) { c.ValidUntil = &past }, want: ErrExpired},
		{name: "exhausted", mutate: func(c *Coupon) { c.CurrentUses = 5 }, want: ErrExhausted},
		{name: "wrong course", mutate: func(c *Coupon) { c.CourseID = "course-2" }, courseID: "course-1", want: ErrWrongCourse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := base
			tc.mutate(&item)
			err := item.Check(now, tc.courseID)
			if tc.want == nil && err != nil {
				t.Fatalf("expected valid coupon, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  spring10 "); got != "SPRING10" {
		t.Fatalf("unexpected code: %q", got)
	}
}

func TestCoupon_ValidateBasic(t *testing.T) {
	item := Coupon{ID: "c-1", Code: "X", DiscountPercentage: 101, MaxUses: 1}
	if err := item.ValidateBasic(); err == nil {
		t.Fatalf("expected percentage error")
	}
	item.DiscountPercentage = 50
	if err := item.ValidateBasic(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

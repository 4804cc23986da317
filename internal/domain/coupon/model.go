package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInactive        = errors.New("coupon is not active")
	ErrNotStarted      = errors.New("coupon is not valid yet")
	ErrExpired         = errors.New("coupon has expired")
	ErrExhausted       = errors.New("coupon has no uses left")
	ErrWrongCourse     = errors.New("coupon does not apply to this course")
	ErrAlreadyRedeemed = errors.New("coupon already redeemed for this course")
	ErrCodeTaken       = errors.New("coupon code already exists")
)

type Coupon struct {
	ID                 string
	Code               string
	DiscountPercentage int
	MaxUses            int
	CurrentUses        int
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	IsActive           bool
	CourseID           string
	CreatedAt          time.Time
}

// NormalizeCode uppercases and trims a coupon code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c Coupon) ValidateBasic() error {
	if c.ID == "" {
		return fmt.Errorf("coupon id is required")
	}
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if c.DiscountPercentage < 1 || c.DiscountPercentage > 100 {
		return fmt.Errorf("discount percentage must be between 1 and 100")
	}
	if c.MaxUses < 1 {
		return fmt.Errorf("max uses must be >= 1")
	}
	if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidUntil.Before(*c.ValidFrom) {
		return fmt.Errorf("valid until must not be before valid from")
	}

	return nil
}

// Check applies every redemption rule that does not depend on the caller's history.
func (c Coupon) Check(now time.Time, courseID string) error {
	if !c.IsActive {
		return ErrInactive
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return ErrNotStarted
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrExpired
	}
	if c.CurrentUses >= c.MaxUses {
		return ErrExhausted
	}
	if c.CourseID != "" && c.CourseID != courseID {
		return ErrWrongCourse
	}

	return nil
}

type Redemption struct {
	ID        string
	CouponID  string
	UserID    string
	CourseID  string
	PaymentID string
	CreatedAt time.Time
}

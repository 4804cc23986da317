package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
)

// CouponQuote is a coupon checked against a course for one buyer.
type CouponQuote struct {
	Coupon             coupon.Coupon
	DiscountPercentage int
	OriginalPrice      int64
	DiscountedPrice    int64
}

type CreateCouponInput struct {
	Code               string
	DiscountPercentage int
	MaxUses            int
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	CourseID           string
}

type CouponService struct {
	repo    coupon.Repository
	courses course.Repository
	ids     id.Generator
	now     func() time.Time
}

func NewCouponService(repo coupon.Repository, courses course.Repository, ids id.Generator) *CouponService {
	return &CouponService{repo: repo, courses: courses, ids: ids, now: time.Now}
}

// Validate checks a code for the caller and course and prices the discount.
func (s *CouponService) Validate(ctx context.Context, userID, code, courseID string) (CouponQuote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CouponService.Validate")
	defer span.End()

	item, err := publishedCourse(ctx, s.courses, courseID)
	if err != nil {
		return CouponQuote{}, err
	}
	return s.quote(ctx, userID, code, item)
}

func (s *CouponService) quote(ctx context.Context, userID, code string, item course.Course) (CouponQuote, error) {
	code = coupon.NormalizeCode(code)
	if code == "" {
		return CouponQuote{}, fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}

	found, exists, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return CouponQuote{}, fmt.Errorf("get coupon by code: %w", err)
	}
	if !exists {
		return CouponQuote{}, fmt.Errorf("%w: coupon not found", ErrNotFound)
	}
	if err := found.Check(s.now().UTC(), item.ID); err != nil {
		return CouponQuote{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	redeemed, err := s.repo.HasRedeemed(ctx, found.ID, userID, item.ID)
	if err != nil {
		return CouponQuote{}, fmt.Errorf("check coupon redemption: %w", err)
	}
	if redeemed {
		return CouponQuote{}, fmt.Errorf("%w: %w", ErrInvalidInput, coupon.ErrAlreadyRedeemed)
	}

	return CouponQuote{
		Coupon:             found,
		DiscountPercentage: found.DiscountPercentage,
		OriginalPrice:      item.Price,
		DiscountedPrice:    payment.ApplyDiscount(item.Price, found.DiscountPercentage),
	}, nil
}

func (s *CouponService) Create(ctx context.Context, input CreateCouponInput) (coupon.Coupon, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CouponService.Create")
	defer span.End()

	input.CourseID = strings.TrimSpace(input.CourseID)
	if input.CourseID != "" {
		if _, exists, err := s.courses.GetByID(ctx, input.CourseID); err != nil {
			return coupon.Coupon{}, fmt.Errorf("get course: %w", err)
		} else if !exists {
			return coupon.Coupon{}, fmt.Errorf("%w: course not found", ErrNotFound)
		}
	}

	couponID, err := s.ids.NewID()
	if err != nil {
		return coupon.Coupon{}, fmt.Errorf("generate coupon id: %w", err)
	}
	item := coupon.Coupon{
		ID:                 couponID,
		Code:               coupon.NormalizeCode(input.Code),
		DiscountPercentage: input.DiscountPercentage,
		MaxUses:            input.MaxUses,
		ValidFrom:          input.ValidFrom,
		ValidUntil:         input.ValidUntil,
		IsActive:           true,
		CourseID:           input.CourseID,
		CreatedAt:          s.now().UTC(),
	}
	if err := item.ValidateBasic(); err != nil {
		return coupon.Coupon{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, coupon.ErrCodeTaken) {
			return coupon.Coupon{}, fmt.Errorf("%w: coupon code already exists", ErrConflict)
		}
		return coupon.Coupon{}, fmt.Errorf("create coupon: %w", err)
	}
	return item, nil
}

func (s *CouponService) List(ctx context.Context) ([]coupon.Coupon, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return items, nil
}

func (s *CouponService) Deactivate(ctx context.Context, couponID string) error {
	ok, err := s.repo.Deactivate(ctx, strings.TrimSpace(couponID))
	if err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: coupon not found", ErrNotFound)
	}
	return nil
}

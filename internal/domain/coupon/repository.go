package coupon

import "context"

// Repository describes coupon persistence. Redemptions are written by the
// payment repository inside the checkout transaction.
type Repository interface {
	Create(ctx context.Context, item Coupon) error
	GetByCode(ctx context.Context, code string) (Coupon, bool, error)
	List(ctx context.Context) ([]Coupon, error)
	Deactivate(ctx context.Context, couponID string) (bool, error)
	HasRedeemed(ctx context.Context, couponID, userID, courseID string) (bool, error)
}

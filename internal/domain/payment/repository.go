package payment

import "context"

// Repository describes payment persistence needs from use cases.
type Repository interface {
	// Create stores a payment and, when a redemption is given, consumes one
	// coupon use in the same transaction.
	Create(ctx context.Context, params CreateParams) error
	GetByID(ctx context.Context, paymentID string) (Payment, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, error)
	Totals(ctx context.Context) (Totals, error)
	// Transition moves a payment to status `to` only if it is currently in one of `from`.
	Transition(ctx context.Context, paymentID string, from []Status, to Status, notes string) (Payment, error)
	// Approve completes a pending/processing payment and enrolls the buyer atomically.
	Approve(ctx context.Context, params ApproveParams) (Payment, error)
	// RevenueByCourse sums payment amounts in the given status per course.
	RevenueByCourse(ctx context.Context, courseIDs []string, status Status) (map[string]int64, error)
}

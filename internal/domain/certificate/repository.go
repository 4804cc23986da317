package certificate

import "context"

type Repository interface {
	// Create stores the certificate unless one exists for the same user and
	// course, and returns whichever row is stored.
	Create(ctx context.Context, item Certificate) (Certificate, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (Certificate, bool, error)
	GetByNumber(ctx context.Context, number string) (Certificate, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Certificate, error)
}

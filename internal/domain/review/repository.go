package review

import "context"

type Repository interface {
	// Upsert inserts or replaces the user's review of a course.
	Upsert(ctx context.Context, item Review) (Review, error)
	Delete(ctx context.Context, userID, courseID string) (bool, error)
	ListByCourse(ctx context.Context, courseID string) ([]Review, error)
	AverageByCourse(ctx context.Context, courseIDs []string) (map[string]float64, error)
}

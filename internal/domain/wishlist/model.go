package wishlist

import (
	"context"
	"time"
)

type Item struct {
	ID        string
	UserID    string
	CourseID  string
	CreatedAt time.Time

	CourseTitle        string
	CourseSlug         string
	CourseThumbnailURL string
	CoursePrice        int64
}

type Repository interface {
	// Add is a no-op when the course is already on the list.
	Add(ctx context.Context, item Item) error
	Remove(ctx context.Context, userID, courseID string) (bool, error)
	Contains(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

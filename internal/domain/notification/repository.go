package notification

import "context"

// Repository scopes every mutation to the owning user; a false result means
// no row of that user matched.
type Repository interface {
	Create(ctx context.Context, item Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, notificationID string) (bool, error)
}

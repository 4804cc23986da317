package memory

import (
	"context"
	"maps"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
)

type NotificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{s: s}
}

func (r *NotificationRepository) Create(_ context.Context, item notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.Data = maps.Clone(item.Data)
	r.s.notifications[item.ID] = item
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string, limit int) ([]notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, item := range r.s.notifications {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, 0), nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, item := range r.s.notifications {
		if item.UserID == userID && !item.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID, notificationID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.notifications[notificationID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	item.Read = true
	r.s.notifications[notificationID] = item
	return true, nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	updated := 0
	for id, item := range r.s.notifications {
		if item.UserID == userID && !item.Read {
			item.Read = true
			r.s.notifications[id] = item
			updated++
		}
	}
	return updated, nil
}

func (r *NotificationRepository) Delete(_ context.Context, userID, notificationID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.notifications[notificationID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(r.s.notifications, notificationID)
	return true, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

const defaultNotifyWorkers = 8

type NotifyInput struct {
	UserID  string
	Type    notification.Type
	Title   string
	Message string
	Data    map[string]any
}

// BroadcastResult counts per-recipient outcomes of a fan-out.
type BroadcastResult struct {
	Sent   int
	Failed int
}

type NotificationService struct {
	repo    notification.Repository
	ids     id.Generator
	workers int
	logger  *logging.Logger
	now     func() time.Time
}

func NewNotificationService(repo notification.Repository, ids id.Generator, workers int, logger *logging.Logger) *NotificationService {
	if workers <= 0 {
		workers = defaultNotifyWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &NotificationService{
		repo:    repo,
		ids:     ids,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) (notification.Notification, error) {
	notificationID, err := s.ids.NewID()
	if err != nil {
		return notification.Notification{}, fmt.Errorf("generate notification id: %w", err)
	}

	item := notification.Notification{
		ID:        notificationID,
		UserID:    strings.TrimSpace(input.UserID),
		Title:     strings.TrimSpace(input.Title),
		Message:   strings.TrimSpace(input.Message),
		Type:      input.Type,
		Data:      input.Data,
		CreatedAt: s.now().UTC(),
	}
	if err := item.ValidateBasic(); err != nil {
		return notification.Notification{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return notification.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	return item, nil
}

// notifyQuietly records a side-effect notification; failures are logged only.
func (s *NotificationService) notifyQuietly(ctx context.Context, input NotifyInput) {
	if s == nil {
		return
	}
	if _, err := s.Notify(ctx, input); err != nil {
		s.logger.WarnContext(ctx, "create notification failed",
			"user_id", input.UserID,
			"type", string(input.Type),
			"error", err,
		)
	}
}

// Broadcast sends the same notification to every user on a bounded worker pool.
func (s *NotificationService) Broadcast(ctx context.Context, userIDs []string, template NotifyInput) (BroadcastResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.Broadcast")
	defer span.End()

	if len(userIDs) == 0 {
		return BroadcastResult{}, nil
	}

	workerCount := s.workers
	if workerCount > len(userIDs) {
		workerCount = len(userIDs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var sent atomic.Int32
	var failed atomic.Int32

	var workers sync.WaitGroup
	var stopErr error
	submitted := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		userID := userID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			input := template
			input.UserID = userID
			if _, err := s.Notify(ctx, input); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "broadcast notification failed", "user_id", userID, "error", err)
				return
			}
			sent.Add(1)
		}); err != nil {
			workers.Done()
			stopErr = fmt.Errorf("submit notification to worker pool: %w", err)
			break
		}
		submitted++
	}
	workers.Wait()

	// recipients never handed to a worker count as failed
	result := BroadcastResult{
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()) + len(userIDs) - submitted,
	}
	if stopErr != nil {
		s.logger.WarnContext(ctx, "broadcast stopped early",
			"submitted", submitted,
			"recipients", len(userIDs),
			"error", stopErr,
		)
		return result, stopErr
	}
	return result, nil
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]notification.Notification, error) {
	items, err := s.repo.ListByUser(ctx, userID, notification.DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	ok, err := s.repo.MarkRead(ctx, userID, strings.TrimSpace(notificationID))
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return updated, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	ok, err := s.repo.Delete(ctx, userID, strings.TrimSpace(notificationID))
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	return nil
}

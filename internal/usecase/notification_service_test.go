package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	notificationmock "github.com/riskibarqy/course-marketplace/internal/mocks/domain/notification"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_BroadcastCountsFailuresUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notificationmock.NewRepository(t)
	service := NewNotificationService(repo, &sequenceIDs{prefix: "n"}, 3, nil)

	recipients := make([]string, 0, 20)
	for i := range 20 {
		recipients = append(recipients, fmt.Sprintf("user-%02d", i))
	}

	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(n notification.Notification) bool { return n.UserID == "user-07" })).
		Return(errors.New("db down")).
		Once()
	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(n notification.Notification) bool {
			return n.UserID != "user-07" && n.Title == "Maintenance" && n.Type == notification.TypeUpdate
		})).
		Return(nil).
		Times(19)

	result, err := service.Broadcast(ctx, recipients, NotifyInput{
		Type:    notification.TypeUpdate,
		Title:   " Maintenance ",
		Message: "Platform maintenance tonight.",
	})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if result.Sent != 19 || result.Failed != 1 {
		t.Fatalf("unexpected broadcast result: %+v", result)
	}
}

func TestNotificationService_BroadcastStopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	repo := notificationmock.NewRepository(t)
	service := NewNotificationService(repo, &sequenceIDs{prefix: "n"}, 1, nil)

	repo.
		On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).
		Maybe()

	recipients := []string{"user-a", "user-b", "user-c", "user-d"}
	result, err := service.Broadcast(ctx, recipients, NotifyInput{
		Type:    notification.TypeUpdate,
		Title:   "Maintenance",
		Message: "Platform maintenance tonight.",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if result.Sent+result.Failed != len(recipients) {
		t.Fatalf("every recipient must be counted: %+v", result)
	}
	if result.Sent < 1 || result.Failed < 2 {
		t.Fatalf("expected a partial broadcast, got %+v", result)
	}
}

func TestNotificationService_BroadcastEmptyRecipients(t *testing.T) {
	t.Parallel()

	repo := notificationmock.NewRepository(t)
	service := NewNotificationService(repo, &sequenceIDs{prefix: "n"}, 0, nil)

	result, err := service.Broadcast(context.Background(), nil, NotifyInput{Title: "x", Message: "y"})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if result != (BroadcastResult{}) {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestNotificationService_ReadState(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()

	var ids []string
	for i := range 3 {
		item, err := m.notifier.Notify(ctx, NotifyInput{
			UserID:  "stu",
			Type:    notification.TypeMessage,
			Title:   fmt.Sprintf("Hello %d", i),
			Message: "Welcome aboard.",
		})
		if err != nil {
			t.Fatalf("notify %d: %v", i, err)
		}
		ids = append(ids, item.ID)
	}

	if err := m.notifier.MarkRead(ctx, "stu", ids[0]); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := m.notifier.MarkRead(ctx, "someone-else", ids[1]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound marking another user's notification, got %v", err)
	}
	unread, err := m.notifier.UnreadCount(ctx, "stu")
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 2 {
		t.Fatalf("expected 2 unread, got %d", unread)
	}

	updated, err := m.notifier.MarkAllRead(ctx, "stu")
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}
	if err := m.notifier.Delete(ctx, "stu", ids[2]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := m.notifier.List(ctx, "stu")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications after delete, got %d", len(items))
	}

	if _, err := m.notifier.Notify(ctx, NotifyInput{UserID: "stu", Type: notification.TypeMessage, Title: " ", Message: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, item notification.Notification) error {
	data, err := encodeJSONObject(item.Data)
	if err != nil {
		return fmt.Errorf("encode notification data: %w", err)
	}
	query, args, err := qb.InsertModel("notifications", notificationInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		Title:     item.Title,
		Message:   item.Message,
		Type:      string(item.Type),
		Read:      item.Read,
		Data:      data,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create notification query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notification.Notification{
			ID:        row.PublicID,
			UserID:    row.UserID,
			Title:     row.Title,
			Message:   row.Message,
			Type:      notification.Type(row.Type),
			Read:      row.Read,
			Data:      decodeJSONObject(row.Data),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND NOT read`, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	affected, err := r.markRead(ctx, qb.Eq("user_id", userID), qb.Eq("public_id", notificationID))
	return affected > 0, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	affected, err := r.markRead(ctx, qb.Eq("user_id", userID), qb.Expr("NOT read"))
	return int(affected), err
}

func (r *NotificationRepository) markRead(ctx context.Context, conds ...qb.Condition) (int64, error) {
	query, args, err := qb.Update("notifications").
		Set("read", true).
		Where(conds...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark notifications read query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected mark notifications read: %w", err)
	}
	return affected, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, notificationID string) (bool, error) {
	query, args, err := qb.DeleteFrom("notifications").
		Where(qb.Eq("user_id", userID), qb.Eq("public_id", notificationID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete notification query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete notification: %w", err)
	}
	return affected > 0, nil
}

func encodeJSONObject(value map[string]any) (*string, error) {
	if len(value) == 0 {
		return nil, nil
	}
	raw, err := sonic.MarshalString(value)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

func decodeJSONObject(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

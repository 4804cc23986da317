package postgres

import "time"

type notificationTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	Read      bool      `db:"read"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

type notificationInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	Read      bool      `db:"read"`
	Data      *string   `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

package postgres

import (
	"database/sql"
	"time"
)

type userDeviceTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	UserID       string    `db:"user_id"`
	DeviceName   string    `db:"device_name"`
	DeviceType   string    `db:"device_type"`
	IPAddress    string    `db:"ip_address"`
	UserAgent    string    `db:"user_agent"`
	IsActive     bool      `db:"is_active"`
	LastActivity time.Time `db:"last_activity"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type userDeviceOwnerModel struct {
	userDeviceTableModel
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

type userDeviceInsertModel struct {
	PublicID     string    `db:"public_id"`
	UserID       string    `db:"user_id"`
	DeviceName   string    `db:"device_name"`
	DeviceType   string    `db:"device_type"`
	IPAddress    string    `db:"ip_address"`
	UserAgent    string    `db:"user_agent"`
	IsActive     bool      `db:"is_active"`
	LastActivity time.Time `db:"last_activity"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type deviceSessionTableModel struct {
	ID           int64        `db:"id"`
	PublicID     string       `db:"public_id"`
	UserID       string       `db:"user_id"`
	DeviceID     string       `db:"device_id"`
	SessionToken string       `db:"session_token"`
	CreatedAt    time.Time    `db:"created_at"`
	ExpiresAt    time.Time    `db:"expires_at"`
	LoggedOutAt  sql.NullTime `db:"logged_out_at"`
	DeviceActive bool         `db:"device_active"`
}

type deviceSessionInsertModel struct {
	PublicID     string    `db:"public_id"`
	UserID       string    `db:"user_id"`
	DeviceID     string    `db:"device_id"`
	SessionToken string    `db:"session_token"`
	CreatedAt    time.Time `db:"created_at"`
	ExpiresAt    time.Time `db:"expires_at"`
}

type deviceViolationTableModel struct {
	ID            int64        `db:"id"`
	PublicID      string       `db:"public_id"`
	UserID        string       `db:"user_id"`
	ViolationType string       `db:"violation_type"`
	Details       []byte       `db:"details"`
	Status        string       `db:"status"`
	CreatedAt     time.Time    `db:"created_at"`
	ResolvedAt    sql.NullTime `db:"resolved_at"`
	UserName      string       `db:"user_name"`
	UserEmail     string       `db:"user_email"`
}

type deviceViolationInsertModel struct {
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_id"`
	ViolationType string    `db:"violation_type"`
	Details       *string   `db:"details"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

package postgres

import (
	"database/sql"
	"time"
)

type couponTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	Code               string         `db:"code"`
	DiscountPercentage int            `db:"discount_percentage"`
	MaxUses            int            `db:"max_uses"`
	CurrentUses        int            `db:"current_uses"`
	ValidFrom          sql.NullTime   `db:"valid_from"`
	ValidUntil         sql.NullTime   `db:"valid_until"`
	IsActive           bool           `db:"is_active"`
	CourseID           sql.NullString `db:"course_id"`
	CreatedAt          time.Time      `db:"created_at"`
}

type couponInsertModel struct {
	PublicID           string     `db:"public_id"`
	Code               string     `db:"code"`
	DiscountPercentage int        `db:"discount_percentage"`
	MaxUses            int        `db:"max_uses"`
	ValidFrom          *time.Time `db:"valid_from"`
	ValidUntil         *time.Time `db:"valid_until"`
	IsActive           bool       `db:"is_active"`
	CourseID           *string    `db:"course_id"`
	CreatedAt          time.Time  `db:"created_at"`
}

package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	AvatarURL    string         `db:"avatar_url"`
	Role         string         `db:"role"`
	Bio          string         `db:"bio"`
	Phone        string         `db:"phone"`
	UniversityID sql.NullString `db:"university_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	PublicID     string    `db:"public_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	AvatarURL    string    `db:"avatar_url"`
	Role         string    `db:"role"`
	Bio          string    `db:"bio"`
	Phone        string    `db:"phone"`
	UniversityID *string   `db:"university_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type instructorRowModel struct {
	profileTableModel
	PublishedCourses int `db:"published_courses"`
}

type roleCountModel struct {
	Role  string `db:"role"`
	Count int    `db:"count"`
}

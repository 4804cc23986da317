package postgres

import (
	"database/sql"
	"time"
)

type enrollmentTableModel struct {
	ID                 int64        `db:"id"`
	PublicID           string       `db:"public_id"`
	UserID             string       `db:"user_id"`
	CourseID           string       `db:"course_id"`
	ProgressPercentage int          `db:"progress_percentage"`
	CompletedAt        sql.NullTime `db:"completed_at"`
	EnrolledAt         time.Time    `db:"enrolled_at"`
}

type enrollmentListingModel struct {
	enrollmentTableModel
	CourseTitle        string `db:"course_title"`
	CourseSlug         string `db:"course_slug"`
	CourseThumbnailURL string `db:"course_thumbnail_url"`
}

type enrollmentInsertModel struct {
	PublicID   string    `db:"public_id"`
	UserID     string    `db:"user_id"`
	CourseID   string    `db:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

type lessonProgressInsertModel struct {
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_id"`
	LessonID      string    `db:"lesson_id"`
	CourseID      string    `db:"course_id"`
	IsCompleted   bool      `db:"is_completed"`
	CompletedAt   time.Time `db:"completed_at"`
	LastWatchedAt time.Time `db:"last_watched_at"`
}

type progressCountModel struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
}

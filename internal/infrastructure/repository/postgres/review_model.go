package postgres

import "time"

type reviewTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	UserID            string    `db:"user_id"`
	CourseID          string    `db:"course_id"`
	Rating            int       `db:"rating"`
	Comment           string    `db:"comment"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
	ReviewerName      string    `db:"reviewer_name"`
	ReviewerAvatarURL string    `db:"reviewer_avatar_url"`
}

type reviewInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type courseAverageModel struct {
	CourseID string  `db:"course_id"`
	Average  float64 `db:"average"`
}

type wishlistTableModel struct {
	ID                 int64     `db:"id"`
	PublicID           string    `db:"public_id"`
	UserID             string    `db:"user_id"`
	CourseID           string    `db:"course_id"`
	CreatedAt          time.Time `db:"created_at"`
	CourseTitle        string    `db:"course_title"`
	CourseSlug         string    `db:"course_slug"`
	CourseThumbnailURL string    `db:"course_thumbnail_url"`
	CoursePrice        int64     `db:"course_price"`
}

type wishlistInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}

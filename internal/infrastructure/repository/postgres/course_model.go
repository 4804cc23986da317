package postgres

import (
	"database/sql"
	"time"
)

type universityTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	City        string    `db:"city"`
	Country     string    `db:"country"`
	LogoURL     string    `db:"logo_url"`
	CreatedAt   time.Time `db:"created_at"`
}

type universityInsertModel struct {
	PublicID    string `db:"public_id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	City        string `db:"city"`
	Country     string `db:"country"`
	LogoURL     string `db:"logo_url"`
}

type categoryTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	CourseCount int       `db:"course_count"`
}

type categoryInsertModel struct {
	PublicID    string `db:"public_id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
}

type courseTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	Title            string         `db:"title"`
	Slug             string         `db:"slug"`
	Description      string         `db:"description"`
	ShortDescription string         `db:"short_description"`
	ThumbnailURL     string         `db:"thumbnail_url"`
	PreviewVideoURL  string         `db:"preview_video_url"`
	Price            int64          `db:"price"`
	OriginalPrice    int64          `db:"original_price"`
	InstructorID     string         `db:"instructor_id"`
	CategoryID       sql.NullString `db:"category_id"`
	UniversityID     string         `db:"university_id"`
	Level            string         `db:"level"`
	Language         string         `db:"language"`
	DurationHours    int            `db:"duration_hours"`
	IsPublished      bool           `db:"is_published"`
	IsFeatured       bool           `db:"is_featured"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type courseListingModel struct {
	courseTableModel
	InstructorName  string  `db:"instructor_name"`
	CategoryName    string  `db:"category_name"`
	UniversityName  string  `db:"university_name"`
	EnrollmentCount int     `db:"enrollment_count"`
	AverageRating   float64 `db:"average_rating"`
}

type courseInsertModel struct {
	PublicID         string    `db:"public_id"`
	Title            string    `db:"title"`
	Slug             string    `db:"slug"`
	Description      string    `db:"description"`
	ShortDescription string    `db:"short_description"`
	ThumbnailURL     string    `db:"thumbnail_url"`
	PreviewVideoURL  string    `db:"preview_video_url"`
	Price            int64     `db:"price"`
	OriginalPrice    int64     `db:"original_price"`
	InstructorID     string    `db:"instructor_id"`
	CategoryID       *string   `db:"category_id"`
	UniversityID     string    `db:"university_id"`
	Level            string    `db:"level"`
	Language         string    `db:"language"`
	DurationHours    int       `db:"duration_hours"`
	IsPublished      bool      `db:"is_published"`
	IsFeatured       bool      `db:"is_featured"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type lessonTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	CourseID        string    `db:"course_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	ContentType     string    `db:"content_type"`
	VideoURL        string    `db:"video_url"`
	TextContent     string    `db:"text_content"`
	ResourceURL     string    `db:"resource_url"`
	DurationMinutes int       `db:"duration_minutes"`
	Position        int       `db:"position"`
	IsFreePreview   bool      `db:"is_free_preview"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type lessonInsertModel struct {
	PublicID        string    `db:"public_id"`
	CourseID        string    `db:"course_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	ContentType     string    `db:"content_type"`
	VideoURL        string    `db:"video_url"`
	TextContent     string    `db:"text_content"`
	ResourceURL     string    `db:"resource_url"`
	DurationMinutes int       `db:"duration_minutes"`
	Position        int       `db:"position"`
	IsFreePreview   bool      `db:"is_free_preview"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type courseCountsModel struct {
	Total     int `db:"total"`
	Published int `db:"published"`
}

package course

import (
	"fmt"
	"time"
)

type Level string

const (
	Level1st Level = "1st"
	Level2nd Level = "2nd"
	Level3rd Level = "3rd"
	Level4th Level = "4th"
	Level5th Level = "5th"
)

var AllLevels = map[Level]struct{}{
	Level1st: {},
	Level2nd: {},
	Level3rd: {},
	Level4th: {},
	Level5th: {},
}

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentText     ContentType = "text"
	ContentQuiz     ContentType = "quiz"
	ContentResource ContentType = "resource"
	ContentPDF      ContentType = "pdf"
)

var AllContentTypes = map[ContentType]struct{}{
	ContentVideo:    {},
	ContentText:     {},
	ContentQuiz:     {},
	ContentResource: {},
	ContentPDF:      {},
}

type University struct {
	ID          string
	Name        string
	Slug        string
	Description string
	City        string
	Country     string
	LogoURL     string
	CreatedAt   time.Time
}

type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Icon        string
	CourseCount int
	CreatedAt   time.Time
}

// Course is a sellable course. Price fields are integer minor units.
type Course struct {
	ID               string
	Title            string
	Slug             string
	Description      string
	ShortDescription string
	ThumbnailURL     string
	PreviewVideoURL  string
	Price            int64
	OriginalPrice    int64
	InstructorID     string
	CategoryID       string
	UniversityID     string
	Level            Level
	Language         string
	DurationHours    int
	IsPublished      bool
	IsFeatured       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	InstructorName  string
	CategoryName    string
	UniversityName  string
	EnrollmentCount int
	AverageRating   float64
}

func (c Course) IsFree() bool {
	return c.Price == 0
}

func (c Course) ValidateBasic() error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("course title is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("course slug is required")
	}
	if c.InstructorID == "" {
		return fmt.Errorf("instructor id is required")
	}
	if c.UniversityID == "" {
		return fmt.Errorf("university id is required")
	}
	if _, ok := AllLevels[c.Level]; !ok {
		return fmt.Errorf("invalid course level %q", c.Level)
	}
	if c.Price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	if c.OriginalPrice < 0 {
		return fmt.Errorf("original price must be >= 0")
	}
	if c.DurationHours < 0 {
		return fmt.Errorf("duration hours must be >= 0")
	}

	return nil
}

type Lesson struct {
	ID              string
	CourseID        string
	Title           string
	Description     string
	ContentType     ContentType
	VideoURL        string
	TextContent     string
	ResourceURL     string
	DurationMinutes int
	Position        int
	IsFreePreview   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (l Lesson) ValidateBasic() error {
	if l.ID == "" {
		return fmt.Errorf("lesson id is required")
	}
	if l.CourseID == "" {
		return fmt.Errorf("course id is required")
	}
	if l.Title == "" {
		return fmt.Errorf("lesson title is required")
	}
	if _, ok := AllContentTypes[l.ContentType]; !ok {
		return fmt.Errorf("invalid content type %q", l.ContentType)
	}
	if l.DurationMinutes < 0 {
		return fmt.Errorf("duration minutes must be >= 0")
	}
	if l.Position < 1 {
		return fmt.Errorf("position must be >= 1")
	}

	return nil
}

// Redacted strips the lesson's gated content, keeping its outline fields.
func (l Lesson) Redacted() Lesson {
	l.VideoURL = ""
	l.TextContent = ""
	l.ResourceURL = ""
	return l
}

type ListFilter struct {
	UniversityID       string
	CategoryID         string
	InstructorID       string
	Level              Level
	Search             string
	FeaturedOnly       bool
	IncludeUnpublished bool
	Limit              int
	Offset             int
}

const (
	DefaultListLimit  = 20
	MaxListLimit      = 100
	AutocompleteLimit = 8
)

// NormalizeLimit clamps a requested page size to [1, MaxListLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Counts holds catalog-wide course totals.
type Counts struct {
	Total     int
	Published int
}

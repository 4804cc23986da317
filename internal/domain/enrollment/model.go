package enrollment

import (
	"math"
	"time"
)

// Enrollment links a student to a course and tracks completion.
type Enrollment struct {
	ID                 string
	UserID             string
	CourseID           string
	ProgressPercentage int
	CompletedAt        *time.Time
	EnrolledAt         time.Time

	CourseTitle        string
	CourseSlug         string
	CourseThumbnailURL string
}

func (e Enrollment) IsCompleted() bool {
	return e.CompletedAt != nil
}

type LessonProgress struct {
	ID              string
	UserID          string
	LessonID        string
	CourseID        string
	IsCompleted     bool
	ProgressSeconds int
	CompletedAt     *time.Time
	LastWatchedAt   time.Time
}

// Percentage returns round(completed/total*100), clamped to [0, 100].
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// LessonChange is one completion toggle for a lesson of a course.
type LessonChange struct {
	ProgressID string
	UserID     string
	CourseID   string
	LessonID   string
	At         time.Time
}

// ProgressResult is the enrollment state after a lesson toggle.
type ProgressResult struct {
	Enrollment       Enrollment
	CompletedLessons int
	TotalLessons     int
	JustCompleted    bool
}

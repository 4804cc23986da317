package review

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string
	UserID    string
	CourseID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time

	ReviewerName      string
	ReviewerAvatarURL string
}

func (r Review) ValidateBasic() error {
	if r.UserID == "" || r.CourseID == "" {
		return fmt.Errorf("user id and course id are required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}

	return nil
}

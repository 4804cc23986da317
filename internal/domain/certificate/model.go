package certificate

import (
	"fmt"
	"strings"
	"time"
)

type Certificate struct {
	ID       string
	UserID   string
	CourseID string
	Number   string
	IssuedAt time.Time

	CourseTitle   string
	RecipientName string
}

// NewNumber formats CERT-<unix millis>-<first 8 chars of userID, uppercased>.
func NewNumber(issuedAt time.Time, userID string) string {
	prefix := strings.ReplaceAll(userID, "-", "")
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("CERT-%d-%s", issuedAt.UnixMilli(), strings.ToUpper(prefix))
}

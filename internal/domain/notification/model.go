package notification

import (
	"fmt"
	"time"
)

const DefaultListLimit = 50

type Type string

const (
	TypeEnrollment Type = "enrollment"
	TypeCompletion Type = "completion"
	TypeMessage    Type = "message"
	TypeUpdate     Type = "update"
	TypeWarning    Type = "warning"
)

func (t Type) Valid() bool {
	switch t {
	case TypeEnrollment, TypeCompletion, TypeMessage, TypeUpdate, TypeWarning:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      Type
	Read      bool
	Data      map[string]any
	CreatedAt time.Time
}

func (n Notification) ValidateBasic() error {
	if n.ID == "" || n.UserID == "" {
		return fmt.Errorf("notification and user ids are required")
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}
	if !n.Type.Valid() {
		return fmt.Errorf("invalid notification type %q", n.Type)
	}

	return nil
}

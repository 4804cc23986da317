package token

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	m, err := NewManager("secret", "course-marketplace")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	raw, err := m.Issue(user.Principal{
		UserID:    "u-1",
		Role:      user.RoleInstructor,
		SessionID: "s-1",
		DeviceID:  "d-1",
	}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	principal, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.UserID != "u-1" || principal.Role != user.RoleInstructor || principal.SessionID != "s-1" || principal.DeviceID != "d-1" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	t.Parallel()

	m, _ := NewManager("secret", "course-marketplace")
	expired, err := m.Issue(user.Principal{UserID: "u-1", SessionID: "s-1"}, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(expired); !crerr.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for expired jwt, got %v", err)
	}

	other, _ := NewManager("other-secret", "course-marketplace")
	foreign, err := other.Issue(user.Principal{UserID: "u-1", SessionID: "s-1"}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue foreign: %v", err)
	}
	if _, err := m.Parse(foreign); !crerr.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for foreign signature, got %v", err)
	}

	if _, err := NewManager(" ", ""); !crerr.Is(err, ErrMissingKey) {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

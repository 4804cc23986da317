package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches any unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert profile: %w", &pq.Error{Code: "23505", Constraint: "profiles_email_key"})
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("matches named constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "courses_slug_key"}
		if !isUniqueViolation(err, "courses_slug_key") {
			t.Fatalf("expected true for named constraint")
		}
		if isUniqueViolation(err, "profiles_email_key") {
			t.Fatalf("expected false for a different constraint")
		}
	})

	t.Run("ignores other errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}, "") {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(sql.ErrNoRows, "") {
			t.Fatalf("expected false for no rows")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get course: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
}

func TestNullHelpers(t *testing.T) {
	if nullableString("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if got := nullableString("x"); got == nil || *got != "x" {
		t.Fatalf("unexpected nullable string: %v", got)
	}
	if nullStringValue(sql.NullString{}) != "" {
		t.Fatalf("expected empty string for null")
	}
	if nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil time for null")
	}
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.FixedZone("EET", 2*3600))
	got := nullTimePtr(sql.NullTime{Time: now, Valid: true})
	if got == nil || got.Location() != time.UTC || !got.Equal(now) {
		t.Fatalf("expected utc time, got %v", got)
	}
}

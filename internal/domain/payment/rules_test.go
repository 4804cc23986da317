package payment

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{from: StatusPending, to: StatusCompleted, want: true},
		{from: StatusPending, to: StatusFailed, want: true},
		{from: StatusProcessing, to: StatusCompleted, want: true},
		{from: StatusCompleted, to: StatusRefunded, want: true},
		{from: StatusPending, to: StatusRefunded, want: false},
		{from: StatusFailed, to: StatusCompleted, want: false},
		{from: StatusRefunded, to: StatusCompleted, want: false},
		{from: StatusCompleted, to: StatusFailed, want: false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s)=%v want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSourcesFor(t *testing.T) {
	got := SourcesFor(StatusCompleted)
	if len(got) != 2 || got[0] != StatusPending || got[1] != StatusProcessing {
		t.Fatalf("unexpected sources for completed: %v", got)
	}
	if got := SourcesFor(StatusRefunded); len(got) != 1 || got[0] != StatusCompleted {
		t.Fatalf("unexpected sources for refunded: %v", got)
	}
}

func TestApplyDiscount(t *testing.T) {
	if got := ApplyDiscount(999, 10); got != 900 {
		t.Fatalf("expected 900, got %d", got)
	}
	if got := ApplyDiscount(1000, 0); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
	if got := ApplyDiscount(1000, 100); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestValidateCard(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	valid := Card{HolderName: " Mona Adel ", Number: "4111 1111 1111 1234", Expiry: "10/26", CVV: "123"}

	meta, err := ValidateCard(valid, now)
	if err != nil {
		t.Fatalf("expected valid card, got %v", err)
	}
	if meta.Last4 != "1234" || meta.CardholderName != "Mona Adel" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	tests := []struct {
		name   string
		mutate func(*Card)
	}{
		{name: "short number", mutate: func(c *Card) { c.Number = "4111" }},
		{name: "letters in number", mutate: func(c *Card) { c.Number = "4111x11111111234" }},
		{name: "bad cvv", mutate: func(c *Card) { c.CVV = "12" }},
		{name: "expired", mutate: func(c *Card) { c.Expiry = "09/26" }},
		{name: "bad month", mutate: func(c *Card) { c.Expiry = "13/27" }},
		{name: "bad format", mutate: func(c *Card) { c.Expiry = "1027" }},
		{name: "missing holder", mutate: func(c *Card) { c.HolderName = "  " }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			card := valid
			tc.mutate(&card)
			if _, err := ValidateCard(card, now); !errors.Is(err, ErrInvalidCard) {
				t.Fatalf("expected ErrInvalidCard, got %v", err)
			}
		})
	}
}

package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid payment status transition")
	ErrInvalidCard       = errors.New("invalid card details")
	ErrMissingProof      = errors.New("payment proof is required")
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRefunded},
}

// CanTransition reports whether a payment may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesFor lists the statuses that may transition into to.
func SourcesFor(to Status) []Status {
	out := make([]Status, 0, 2)
	for _, from := range []Status{StatusPending, StatusProcessing, StatusCompleted} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// ApplyDiscount returns price minus floor(price*pct/100).
func ApplyDiscount(price int64, pct int) int64 {
	if pct <= 0 {
		return price
	}
	if pct >= 100 {
		return 0
	}
	return price - price*int64(pct)/100
}

// Card is raw card input; only Last4 and the cardholder survive validation.
type Card struct {
	HolderName string
	Number     string
	Expiry     string
	CVV        string
}

// ValidateCard checks a 16-digit number, an MM/YY expiry not in the past and a 3-digit CVV.
func ValidateCard(card Card, now time.Time) (CardMetadata, error) {
	holder := strings.TrimSpace(card.HolderName)
	if holder == "" {
		return CardMetadata{}, fmt.Errorf("%w: cardholder name is required", ErrInvalidCard)
	}

	number := strings.NewReplacer(" ", "", "-", "").Replace(card.Number)
	if len(number) != 16 || !allDigits(number) {
		return CardMetadata{}, fmt.Errorf("%w: card number must be 16 digits", ErrInvalidCard)
	}

	cvv := strings.TrimSpace(card.CVV)
	if len(cvv) != 3 || !allDigits(cvv) {
		return CardMetadata{}, fmt.Errorf("%w: cvv must be 3 digits", ErrInvalidCard)
	}

	month, year, err := parseExpiry(card.Expiry)
	if err != nil {
		return CardMetadata{}, err
	}
	// valid through the last day of the expiry month
	expiresAt := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(expiresAt) {
		return CardMetadata{}, fmt.Errorf("%w: card is expired", ErrInvalidCard)
	}

	return CardMetadata{CardholderName: holder, Last4: number[12:]}, nil
}

func parseExpiry(raw string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: expiry must be MM/YY", ErrInvalidCard)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: invalid expiry month", ErrInvalidCard)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid expiry year", ErrInvalidCard)
	}
	return month, year, nil
}

func allDigits(v string) bool {
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return v != ""
}

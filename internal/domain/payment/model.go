package payment

import (
	"time"
)

type Method string

const (
	MethodVodafoneCash Method = "vodafone_cash"
	MethodInstapay     Method = "instapay"
	MethodCard         Method = "card"
)

func (m Method) Valid() bool {
	switch m {
	case MethodVodafoneCash, MethodInstapay, MethodCard:
		return true
	default:
		return false
	}
}

// RequiresProof reports whether the method is a wallet transfer needing a screenshot.
func (m Method) RequiresProof() bool {
	return m == MethodVodafoneCash || m == MethodInstapay
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

type CardMetadata struct {
	CardholderName string `json:"cardholder_name"`
	Last4          string `json:"card_last4"`
}

type Payment struct {
	ID            string
	UserID        string
	CourseID      string
	Amount        int64
	Method        Method
	Status        Status
	TransactionID string
	ScreenshotURL string
	PhoneNumber   string
	Notes         string
	CouponCode    string
	Card          *CardMetadata
	CreatedAt     time.Time
	UpdatedAt     time.Time

	CourseTitle string
	UserName    string
	UserEmail   string
}

// Redemption ties a coupon use to the payment that consumed it.
type Redemption struct {
	ID       string
	CouponID string
}

type CreateParams struct {
	Payment    Payment
	Redemption *Redemption
}

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

// Totals summarizes payments for the admin ledger.
type Totals struct {
	CompletedAmount int64
	PendingAmount   int64
	CountByStatus   map[Status]int
}

// ApproveParams completes a payment and enrolls its buyer.
type ApproveParams struct {
	PaymentID    string
	EnrollmentID string
	At           time.Time
}

package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
)

type paymentTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_id"`
	CourseID      string    `db:"course_id"`
	Amount        int64     `db:"amount"`
	PaymentMethod string    `db:"payment_method"`
	Status        string    `db:"status"`
	TransactionID string    `db:"transaction_id"`
	ScreenshotURL string    `db:"screenshot_url"`
	PhoneNumber   string    `db:"phone_number"`
	Notes         string    `db:"notes"`
	CouponCode    string    `db:"coupon_code"`
	Metadata      []byte    `db:"metadata"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type paymentListingModel struct {
	paymentTableModel
	CourseTitle string `db:"course_title"`
	UserName    string `db:"user_name"`
	UserEmail   string `db:"user_email"`
}

type paymentInsertModel struct {
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_id"`
	CourseID      string    `db:"course_id"`
	Amount        int64     `db:"amount"`
	PaymentMethod string    `db:"payment_method"`
	Status        string    `db:"status"`
	TransactionID string    `db:"transaction_id"`
	ScreenshotURL string    `db:"screenshot_url"`
	PhoneNumber   string    `db:"phone_number"`
	Notes         string    `db:"notes"`
	CouponCode    string    `db:"coupon_code"`
	Metadata      *string   `db:"metadata"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type couponRedemptionInsertModel struct {
	PublicID  string    `db:"public_id"`
	CouponID  string    `db:"coupon_id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	PaymentID string    `db:"payment_id"`
	CreatedAt time.Time `db:"created_at"`
}

type paymentStatusTotalModel struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
	Amount int64  `db:"amount"`
}

type courseRevenueModel struct {
	CourseID string `db:"course_id"`
	Amount   int64  `db:"amount"`
}

func encodeCardMetadata(card *payment.CardMetadata) (*string, error) {
	if card == nil {
		return nil, nil
	}
	raw, err := sonic.MarshalString(card)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

func decodeCardMetadata(raw []byte) *payment.CardMetadata {
	if len(raw) == 0 {
		return nil
	}
	var card payment.CardMetadata
	if err := sonic.Unmarshal(raw, &card); err != nil || card.Last4 == "" {
		return nil
	}
	return &card
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

type CheckoutInput struct {
	UserID        string
	CourseID      string
	Method        string
	TransactionID string
	PhoneNumber   string
	Screenshot    *UploadFile
	Card          payment.Card
	CouponCode    string
}

// PaymentLedger is the admin payments view.
type PaymentLedger struct {
	Payments []payment.Payment
	Totals   payment.Totals
}

type PaymentService struct {
	repo        payment.Repository
	courses     course.Repository
	enrollments enrollment.Repository
	users       user.Repository
	coupons     *CouponService
	uploads     *UploadService
	notifier    *NotificationService
	ids         id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewPaymentService(
	repo payment.Repository,
	courses course.Repository,
	enrollments enrollment.Repository,
	users user.Repository,
	coupons *CouponService,
	uploads *UploadService,
	notifier *NotificationService,
	ids id.Generator,
	logger *logging.Logger,
) *PaymentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PaymentService{
		repo:        repo,
		courses:     courses,
		enrollments: enrollments,
		users:       users,
		coupons:     coupons,
		uploads:     uploads,
		notifier:    notifier,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

// Checkout records a pending payment for manual review. Wallet methods need a
// transaction id and a screenshot; cards are validated and only last4 kept.
func (s *PaymentService) Checkout(ctx context.Context, input CheckoutInput) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Checkout", courseAttr(input.CourseID))
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.TransactionID = strings.TrimSpace(input.TransactionID)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	method := payment.Method(strings.TrimSpace(input.Method))
	if !method.Valid() {
		return payment.Payment{}, fmt.Errorf("%w: invalid payment method %q", ErrInvalidInput, input.Method)
	}

	item, err := publishedCourse(ctx, s.courses, input.CourseID)
	if err != nil {
		return payment.Payment{}, err
	}
	if _, enrolled, err := s.enrollments.Get(ctx, input.UserID, item.ID); err != nil {
		return payment.Payment{}, fmt.Errorf("get enrollment: %w", err)
	} else if enrolled {
		return payment.Payment{}, fmt.Errorf("%w: already enrolled in course", ErrConflict)
	}

	now := s.now().UTC()
	paymentID, err := s.ids.NewID()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("generate payment id: %w", err)
	}
	record := payment.Payment{
		ID:          paymentID,
		UserID:      input.UserID,
		CourseID:    item.ID,
		Amount:      item.Price,
		Method:      method,
		Status:      payment.StatusPending,
		PhoneNumber: input.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
		CourseTitle: item.Title,
	}

	var redemption *payment.Redemption
	if strings.TrimSpace(input.CouponCode) != "" {
		quote, err := s.coupons.quote(ctx, input.UserID, input.CouponCode, item)
		if err != nil {
			return payment.Payment{}, err
		}
		redemptionID, err := s.ids.NewID()
		if err != nil {
			return payment.Payment{}, fmt.Errorf("generate redemption id: %w", err)
		}
		record.Amount = quote.DiscountedPrice
		record.CouponCode = quote.Coupon.Code
		redemption = &payment.Redemption{ID: redemptionID, CouponID: quote.Coupon.ID}
	}

	if method.RequiresProof() {
		if input.TransactionID == "" {
			return payment.Payment{}, fmt.Errorf("%w: transaction_id is required", ErrInvalidInput)
		}
		if input.Screenshot == nil {
			return payment.Payment{}, fmt.Errorf("%w: payment screenshot is required", ErrInvalidInput)
		}
		stored, err := s.uploads.UploadPaymentScreenshot(ctx, string(method), input.UserID, *input.Screenshot)
		if err != nil {
			return payment.Payment{}, fmt.Errorf("upload payment screenshot: %w", err)
		}
		record.TransactionID = input.TransactionID
		record.ScreenshotURL = stored.URL
	} else {
		card, err := payment.ValidateCard(input.Card, now)
		if err != nil {
			return payment.Payment{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		record.Card = &card
		record.TransactionID = fmt.Sprintf("visa-%d", now.UnixMilli())
	}

	if err := s.repo.Create(ctx, payment.CreateParams{Payment: record, Redemption: redemption}); err != nil {
		if errors.Is(err, coupon.ErrExhausted) || errors.Is(err, coupon.ErrAlreadyRedeemed) {
			return payment.Payment{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return payment.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	s.logger.InfoContext(ctx, "payment submitted",
		"payment_id", record.ID,
		"user_id", record.UserID,
		"course_id", record.CourseID,
		"method", string(record.Method),
		"amount", record.Amount,
	)
	s.notifyAdmins(ctx, record)

	return record, nil
}

func (s *PaymentService) notifyAdmins(ctx context.Context, record payment.Payment) {
	adminIDs, err := s.users.ListIDsByRole(ctx, user.RoleAdmin)
	if err != nil {
		s.logger.WarnContext(ctx, "list admins for payment notification failed", "error", err)
		return
	}
	if _, err := s.notifier.Broadcast(ctx, adminIDs, NotifyInput{
		Type:    notification.TypeMessage,
		Title:   "New payment awaiting review",
		Message: fmt.Sprintf("A %s payment for %s needs verification.", record.Method, record.CourseTitle),
		Data:    map[string]any{"payment_id": record.ID, "course_id": record.CourseID},
	}); err != nil {
		s.logger.WarnContext(ctx, "broadcast payment notification failed", "error", err)
	}
}

func (s *PaymentService) ListMine(ctx context.Context, userID string) ([]payment.Payment, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return items, nil
}

func (s *PaymentService) List(ctx context.Context, status string, limit, offset int) (PaymentLedger, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.List")
	defer span.End()

	filter := payment.ListFilter{
		Status: payment.Status(strings.TrimSpace(status)),
		Limit:  course.NormalizeLimit(limit),
		Offset: offset,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return PaymentLedger{}, fmt.Errorf("%w: invalid payment status %q", ErrInvalidInput, status)
	}
	if filter.Offset < 0 {
		return PaymentLedger{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return PaymentLedger{}, fmt.Errorf("list payments: %w", err)
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return PaymentLedger{}, fmt.Errorf("payment totals: %w", err)
	}
	return PaymentLedger{Payments: items, Totals: totals}, nil
}

// Approve completes a pending or processing payment and enrolls the buyer in
// one transaction.
func (s *PaymentService) Approve(ctx context.Context, paymentID string) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Approve", paymentAttr(paymentID))
	defer span.End()

	if _, err := s.transitionable(ctx, paymentID, payment.StatusCompleted); err != nil {
		return payment.Payment{}, err
	}
	enrollmentID, err := s.ids.NewID()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("generate enrollment id: %w", err)
	}

	approved, err := s.repo.Approve(ctx, payment.ApproveParams{
		PaymentID:    strings.TrimSpace(paymentID),
		EnrollmentID: enrollmentID,
		At:           s.now().UTC(),
	})
	if err != nil {
		return payment.Payment{}, mapTransitionErr("approve payment", err)
	}

	s.logger.InfoContext(ctx, "payment approved", "payment_id", approved.ID, "user_id", approved.UserID)
	s.notifier.notifyQuietly(ctx, NotifyInput{
		UserID:  approved.UserID,
		Type:    notification.TypeEnrollment,
		Title:   "Payment approved",
		Message: "Your payment was verified and you are now enrolled.",
		Data:    map[string]any{"payment_id": approved.ID, "course_id": approved.CourseID},
	})
	return approved, nil
}

func (s *PaymentService) Reject(ctx context.Context, paymentID, notes string) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Reject", paymentAttr(paymentID))
	defer span.End()

	rejected, err := s.transition(ctx, paymentID, payment.StatusFailed, notes)
	if err != nil {
		return payment.Payment{}, err
	}
	s.notifier.notifyQuietly(ctx, NotifyInput{
		UserID:  rejected.UserID,
		Type:    notification.TypeWarning,
		Title:   "Payment rejected",
		Message: rejectionMessage(notes),
		Data:    map[string]any{"payment_id": rejected.ID, "course_id": rejected.CourseID},
	})
	return rejected, nil
}

func (s *PaymentService) Refund(ctx context.Context, paymentID, notes string) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Refund", paymentAttr(paymentID))
	defer span.End()

	refunded, err := s.transition(ctx, paymentID, payment.StatusRefunded, notes)
	if err != nil {
		return payment.Payment{}, err
	}
	s.notifier.notifyQuietly(ctx, NotifyInput{
		UserID:  refunded.UserID,
		Type:    notification.TypeUpdate,
		Title:   "Payment refunded",
		Message: "Your payment has been refunded.",
		Data:    map[string]any{"payment_id": refunded.ID, "course_id": refunded.CourseID},
	})
	return refunded, nil
}

func (s *PaymentService) transition(ctx context.Context, paymentID string, to payment.Status, notes string) (payment.Payment, error) {
	if _, err := s.transitionable(ctx, paymentID, to); err != nil {
		return payment.Payment{}, err
	}

	updated, err := s.repo.Transition(ctx, strings.TrimSpace(paymentID), payment.SourcesFor(to), to, strings.TrimSpace(notes))
	if err != nil {
		return payment.Payment{}, mapTransitionErr("transition payment", err)
	}
	s.logger.InfoContext(ctx, "payment status changed", "payment_id", updated.ID, "status", string(to))
	return updated, nil
}

func (s *PaymentService) transitionable(ctx context.Context, paymentID string, to payment.Status) (payment.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return payment.Payment{}, fmt.Errorf("%w: payment_id is required", ErrInvalidInput)
	}
	current, exists, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	if !exists {
		return payment.Payment{}, fmt.Errorf("%w: payment not found", ErrNotFound)
	}
	if !payment.CanTransition(current.Status, to) {
		return payment.Payment{}, fmt.Errorf("%w: cannot move payment from %s to %s", ErrFailedPrecondition, current.Status, to)
	}
	return current, nil
}

func mapTransitionErr(op string, err error) error {
	if errors.Is(err, payment.ErrInvalidTransition) {
		return fmt.Errorf("%w: %w", ErrFailedPrecondition, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rejectionMessage(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "Your payment could not be verified."
	}
	return "Your payment could not be verified: " + notes
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

var paymentListingColumns = []string{
	"pay.*",
	"COALESCE(c.title, '') AS course_title",
	"COALESCE(p.full_name, '') AS user_name",
	"COALESCE(p.email, '') AS user_email",
}

const paymentListingFrom = "payments pay " +
	"LEFT JOIN courses c ON c.public_id = pay.course_id " +
	"LEFT JOIN profiles p ON p.public_id = pay.user_id"

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, params payment.CreateParams) error {
	record := params.Payment
	metadata, err := encodeCardMetadata(record.Card)
	if err != nil {
		return fmt.Errorf("encode payment metadata: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create payment: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if params.Redemption != nil {
		useQuery, useArgs, err := qb.Update("coupons").
			SetExpr("current_uses", "current_uses + 1").
			Where(
				qb.Eq("public_id", params.Redemption.CouponID),
				qb.Expr("current_uses < max_uses"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build consume coupon query: %w", err)
		}
		result, err := tx.ExecContext(ctx, useQuery, useArgs...)
		if err != nil {
			return fmt.Errorf("consume coupon: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected consume coupon: %w", err)
		}
		if affected == 0 {
			return coupon.ErrExhausted
		}
	}

	insertQuery, insertArgs, err := qb.InsertModel("payments", paymentInsertModel{
		PublicID:      record.ID,
		UserID:        record.UserID,
		CourseID:      record.CourseID,
		Amount:        record.Amount,
		PaymentMethod: string(record.Method),
		Status:        string(record.Status),
		TransactionID: record.TransactionID,
		ScreenshotURL: record.ScreenshotURL,
		PhoneNumber:   record.PhoneNumber,
		Notes:         record.Notes,
		CouponCode:    record.CouponCode,
		Metadata:      metadata,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create payment query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	if params.Redemption != nil {
		redemptionQuery, redemptionArgs, err := qb.InsertModel("coupon_redemptions", couponRedemptionInsertModel{
			PublicID:  params.Redemption.ID,
			CouponID:  params.Redemption.CouponID,
			UserID:    record.UserID,
			CourseID:  record.CourseID,
			PaymentID: record.ID,
			CreatedAt: record.CreatedAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build create coupon redemption query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, redemptionQuery, redemptionArgs...); err != nil {
			if isUniqueViolation(err, "coupon_redemptions_coupon_id_user_id_course_id_key") {
				return coupon.ErrAlreadyRedeemed
			}
			return fmt.Errorf("create coupon redemption: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create payment tx: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (payment.Payment, bool, error) {
	query, args, err := qb.Select(paymentListingColumns...).From(paymentListingFrom).
		Where(qb.Eq("pay.public_id", paymentID)).
		ToSQL()
	if err != nil {
		return payment.Payment{}, false, fmt.Errorf("build get payment query: %w", err)
	}

	var row paymentListingModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, false, nil
		}
		return payment.Payment{}, false, fmt.Errorf("get payment: %w", err)
	}
	return paymentFromRow(row), true, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]payment.Payment, error) {
	return r.list(ctx, "user", 0, 0, qb.Eq("pay.user_id", userID))
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.ListFilter) ([]payment.Payment, error) {
	conds := make([]qb.Condition, 0, 1)
	if filter.Status != "" {
		conds = append(conds, qb.Eq("pay.status", string(filter.Status)))
	}
	return r.list(ctx, "filter", filter.Limit, filter.Offset, conds...)
}

func (r *PaymentRepository) list(ctx context.Context, by string, limit, offset int, conds ...qb.Condition) ([]payment.Payment, error) {
	query, args, err := qb.Select(paymentListingColumns...).From(paymentListingFrom).
		Where(conds...).
		OrderBy("pay.created_at DESC", "pay.id DESC").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payments by %s query: %w", by, err)
	}

	var rows []paymentListingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list payments by %s: %w", by, err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}
	return out, nil
}

func (r *PaymentRepository) Totals(ctx context.Context) (payment.Totals, error) {
	query, args, err := qb.Select("status", "COUNT(1) AS count", "COALESCE(SUM(amount), 0) AS amount").
		From("payments").
		GroupBy("status").
		ToSQL()
	if err != nil {
		return payment.Totals{}, fmt.Errorf("build payment totals query: %w", err)
	}

	var rows []paymentStatusTotalModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return payment.Totals{}, fmt.Errorf("payment totals: %w", err)
	}

	out := payment.Totals{CountByStatus: make(map[payment.Status]int, len(rows))}
	for _, row := range rows {
		status := payment.Status(row.Status)
		out.CountByStatus[status] = row.Count
		switch status {
		case payment.StatusCompleted:
			out.CompletedAmount = row.Amount
		case payment.StatusPending:
			out.PendingAmount = row.Amount
		}
	}
	return out, nil
}

func (r *PaymentRepository) Transition(ctx context.Context, paymentID string, from []payment.Status, to payment.Status, notes string) (payment.Payment, error) {
	sources := make([]any, 0, len(from))
	for _, status := range from {
		sources = append(sources, string(status))
	}
	builder := qb.Update("payments").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()")
	if notes != "" {
		builder = builder.Set("notes", notes)
	}
	query, args, err := builder.
		Where(qb.Eq("public_id", paymentID), qb.In("status", sources)).
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build transition payment query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("transition payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("rows affected transition payment: %w", err)
	}

	stored, ok, err := r.GetByID(ctx, paymentID)
	if err != nil {
		return payment.Payment{}, err
	}
	if !ok {
		return payment.Payment{}, fmt.Errorf("payment %s not found", paymentID)
	}
	if affected == 0 {
		return payment.Payment{}, payment.ErrInvalidTransition
	}
	return stored, nil
}

func (r *PaymentRepository) Approve(ctx context.Context, params payment.ApproveParams) (payment.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("begin tx approve payment: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("payments").
		Where(qb.Eq("public_id", params.PaymentID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build lock payment query: %w", err)
	}
	var current paymentTableModel
	if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, fmt.Errorf("payment %s not found", params.PaymentID)
		}
		return payment.Payment{}, fmt.Errorf("lock payment: %w", err)
	}
	if !payment.CanTransition(payment.Status(current.Status), payment.StatusCompleted) {
		return payment.Payment{}, payment.ErrInvalidTransition
	}

	updateQuery, updateArgs, err := qb.Update("payments").
		Set("status", string(payment.StatusCompleted)).
		Set("updated_at", params.At).
		Where(qb.Eq("public_id", params.PaymentID)).
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build approve payment query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return payment.Payment{}, fmt.Errorf("approve payment: %w", err)
	}

	if _, err := insertEnrollment(ctx, tx, enrollment.Enrollment{
		ID:         params.EnrollmentID,
		UserID:     current.UserID,
		CourseID:   current.CourseID,
		EnrolledAt: params.At,
	}); err != nil {
		return payment.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return payment.Payment{}, fmt.Errorf("commit approve payment tx: %w", err)
	}

	stored, ok, err := r.GetByID(ctx, params.PaymentID)
	if err != nil {
		return payment.Payment{}, err
	}
	if !ok {
		return payment.Payment{}, fmt.Errorf("payment %s not found", params.PaymentID)
	}
	return stored, nil
}

func (r *PaymentRepository) RevenueByCourse(ctx context.Context, courseIDs []string, status payment.Status) (map[string]int64, error) {
	out := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("course_id", "COALESCE(SUM(amount), 0) AS amount").
		From("payments").
		Where(
			qb.In("course_id", anySlice(courseIDs)),
			qb.Eq("status", string(status)),
		).
		GroupBy("course_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build revenue by course query: %w", err)
	}

	var rows []courseRevenueModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("revenue by course: %w", err)
	}
	for _, row := range rows {
		out[row.CourseID] = row.Amount
	}
	return out, nil
}

func paymentFromRow(row paymentListingModel) payment.Payment {
	return payment.Payment{
		ID:            row.PublicID,
		UserID:        row.UserID,
		CourseID:      row.CourseID,
		Amount:        row.Amount,
		Method:        payment.Method(row.PaymentMethod),
		Status:        payment.Status(row.Status),
		TransactionID: row.TransactionID,
		ScreenshotURL: row.ScreenshotURL,
		PhoneNumber:   row.PhoneNumber,
		Notes:         row.Notes,
		CouponCode:    row.CouponCode,
		Card:          decodeCardMetadata(row.Metadata),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
		CourseTitle:   row.CourseTitle,
		UserName:      row.UserName,
		UserEmail:     row.UserEmail,
	}
}

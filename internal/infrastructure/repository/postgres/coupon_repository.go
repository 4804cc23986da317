package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type CouponRepository struct {
	db *sqlx.DB
}

func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, item coupon.Coupon) error {
	query, args, err := qb.InsertModel("coupons", couponInsertModel{
		PublicID:           item.ID,
		Code:               item.Code,
		DiscountPercentage: item.DiscountPercentage,
		MaxUses:            item.MaxUses,
		ValidFrom:          item.ValidFrom,
		ValidUntil:         item.ValidUntil,
		IsActive:           item.IsActive,
		CourseID:           nullableString(item.CourseID),
		CreatedAt:          item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create coupon query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "coupons_code_key") {
			return coupon.ErrCodeTaken
		}
		return fmt.Errorf("create coupon: %w", err)
	}
	return nil
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (coupon.Coupon, bool, error) {
	query, args, err := qb.Select("*").From("coupons").Where(qb.Eq("code", code)).ToSQL()
	if err != nil {
		return coupon.Coupon{}, false, fmt.Errorf("build get coupon by code query: %w", err)
	}

	var row couponTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return coupon.Coupon{}, false, nil
		}
		return coupon.Coupon{}, false, fmt.Errorf("get coupon by code: %w", err)
	}
	return couponFromRow(row), true, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]coupon.Coupon, error) {
	query, args, err := qb.Select("*").From("coupons").OrderBy("created_at DESC", "id DESC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list coupons query: %w", err)
	}

	var rows []couponTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}

	out := make([]coupon.Coupon, 0, len(rows))
	for _, row := range rows {
		out = append(out, couponFromRow(row))
	}
	return out, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, couponID string) (bool, error) {
	query, args, err := qb.Update("coupons").
		Set("is_active", false).
		Where(qb.Eq("public_id", couponID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build deactivate coupon query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("deactivate coupon: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected deactivate coupon: %w", err)
	}
	return affected > 0, nil
}

func (r *CouponRepository) HasRedeemed(ctx context.Context, couponID, userID, courseID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS (
	SELECT 1 FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2 AND course_id = $3
)`, couponID, userID, courseID); err != nil {
		return false, fmt.Errorf("check coupon redemption: %w", err)
	}
	return exists, nil
}

func couponFromRow(row couponTableModel) coupon.Coupon {
	return coupon.Coupon{
		ID:                 row.PublicID,
		Code:               row.Code,
		DiscountPercentage: row.DiscountPercentage,
		MaxUses:            row.MaxUses,
		CurrentUses:        row.CurrentUses,
		ValidFrom:          nullTimePtr(row.ValidFrom),
		ValidUntil:         nullTimePtr(row.ValidUntil),
		IsActive:           row.IsActive,
		CourseID:           nullStringValue(row.CourseID),
		CreatedAt:          row.CreatedAt.UTC(),
	}
}

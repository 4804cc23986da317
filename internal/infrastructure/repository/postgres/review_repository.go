package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/review"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

var reviewColumns = []string{
	"rv.*",
	"COALESCE(p.full_name, '') AS reviewer_name",
	"COALESCE(p.avatar_url, '') AS reviewer_avatar_url",
}

const reviewFrom = "reviews rv LEFT JOIN profiles p ON p.public_id = rv.user_id"

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Upsert(ctx context.Context, item review.Review) (review.Review, error) {
	query, args, err := qb.InsertModel("reviews", reviewInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		CourseID:  item.CourseID,
		Rating:    item.Rating,
		Comment:   item.Comment,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, qb.OnConflictUpdate([]string{"user_id", "course_id"}, "rating", "comment", "updated_at"))
	if err != nil {
		return review.Review{}, fmt.Errorf("build upsert review query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return review.Review{}, fmt.Errorf("upsert review: %w", err)
	}

	selectQuery, selectArgs, err := qb.Select(reviewColumns...).From(reviewFrom).
		Where(qb.Eq("rv.user_id", item.UserID), qb.Eq("rv.course_id", item.CourseID)).
		ToSQL()
	if err != nil {
		return review.Review{}, fmt.Errorf("build get review query: %w", err)
	}
	var row reviewTableModel
	if err := r.db.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		return review.Review{}, fmt.Errorf("get review: %w", err)
	}
	return reviewFromRow(row), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, userID, courseID string) (bool, error) {
	query, args, err := qb.DeleteFrom("reviews").
		Where(qb.Eq("user_id", userID), qb.Eq("course_id", courseID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete review query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete review: %w", err)
	}
	return affected > 0, nil
}

func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID string) ([]review.Review, error) {
	query, args, err := qb.Select(reviewColumns...).From(reviewFrom).
		Where(qb.Eq("rv.course_id", courseID)).
		OrderBy("rv.created_at DESC", "rv.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query: %w", err)
	}

	var rows []reviewTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	out := make([]review.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, reviewFromRow(row))
	}
	return out, nil
}

func (r *ReviewRepository) AverageByCourse(ctx context.Context, courseIDs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("course_id", "AVG(rating)::float8 AS average").From("reviews").
		Where(qb.In("course_id", anySlice(courseIDs))).
		GroupBy("course_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build average rating query: %w", err)
	}

	var rows []courseAverageModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	for _, row := range rows {
		out[row.CourseID] = row.Average
	}
	return out, nil
}

func reviewFromRow(row reviewTableModel) review.Review {
	return review.Review{
		ID:                row.PublicID,
		UserID:            row.UserID,
		CourseID:          row.CourseID,
		Rating:            row.Rating,
		Comment:           row.Comment,
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
		ReviewerName:      row.ReviewerName,
		ReviewerAvatarURL: row.ReviewerAvatarURL,
	}
}

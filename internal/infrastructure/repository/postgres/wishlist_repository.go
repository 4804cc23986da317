package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type WishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepository(db *sqlx.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, item wishlist.Item) error {
	query, args, err := qb.InsertModel("wishlists", wishlistInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		CourseID:  item.CourseID,
		CreatedAt: item.CreatedAt,
	}, qb.OnConflictDoNothing("user_id", "course_id"))
	if err != nil {
		return fmt.Errorf("build add wishlist item query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, courseID string) (bool, error) {
	query, args, err := qb.DeleteFrom("wishlists").
		Where(qb.Eq("user_id", userID), qb.Eq("course_id", courseID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build remove wishlist item query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("remove wishlist item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected remove wishlist item: %w", err)
	}
	return affected > 0, nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID, courseID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = $1 AND course_id = $2)`, userID, courseID); err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}
	return exists, nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]wishlist.Item, error) {
	query, args, err := qb.Select(
		"w.*",
		"COALESCE(c.title, '') AS course_title",
		"COALESCE(c.slug, '') AS course_slug",
		"COALESCE(c.thumbnail_url, '') AS course_thumbnail_url",
		"COALESCE(c.price, 0) AS course_price",
	).
		From("wishlists w LEFT JOIN courses c ON c.public_id = w.course_id").
		Where(qb.Eq("w.user_id", userID)).
		OrderBy("w.created_at DESC", "w.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list wishlist query: %w", err)
	}

	var rows []wishlistTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	out := make([]wishlist.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, wishlist.Item{
			ID:                 row.PublicID,
			UserID:             row.UserID,
			CourseID:           row.CourseID,
			CreatedAt:          row.CreatedAt.UTC(),
			CourseTitle:        row.CourseTitle,
			CourseSlug:         row.CourseSlug,
			CourseThumbnailURL: row.CourseThumbnailURL,
			CoursePrice:        row.CoursePrice,
		})
	}
	return out, nil
}

func (r *WishlistRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM wishlists WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("count wishlist: %w", err)
	}
	return count, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the reference universities and categories once.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM universities`); err != nil {
		return fmt.Errorf("count universities for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUniversities() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO universities (public_id, name, slug, description, city, country, logo_url)
VALUES (:public_id, :name, :slug, :description, :city, :country, :logo_url)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   u.ID,
			"name":        u.Name,
			"slug":        u.Slug,
			"description": u.Description,
			"city":        u.City,
			"country":     u.Country,
			"logo_url":    u.LogoURL,
		})
		if err != nil {
			return fmt.Errorf("bind seed university %s query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed university %s: %w", u.ID, err)
		}
	}

	for _, c := range memory.SeedCategories() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO categories (public_id, name, slug, description, icon)
VALUES (:public_id, :name, :slug, :description, :icon)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   c.ID,
			"name":        c.Name,
			"slug":        c.Slug,
			"description": c.Description,
			"icon":        c.Icon,
		})
		if err != nil {
			return fmt.Errorf("bind seed category %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

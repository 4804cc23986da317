package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/course-marketplace/internal/platform/cache"
)

type countingCourseRepository struct {
	course.Repository
	categoryLists int
}

func (r *countingCourseRepository) ListCategories(ctx context.Context) ([]course.Category, error) {
	r.categoryLists++
	return r.Repository.ListCategories(ctx)
}

func TestCourseRepository_CategoriesCachedUntilWrite(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.Seed()
	next := &countingCourseRepository{Repository: memory.NewCourseRepository(store)}
	repo := NewCourseRepository(next, basecache.NewStore(time.Minute))
	ctx := t.Context()

	first, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if _, err := repo.ListCategories(ctx); err != nil {
		t.Fatalf("list categories again: %v", err)
	}
	if next.categoryLists != 1 {
		t.Fatalf("expected one load, got %d", next.categoryLists)
	}

	if err := repo.CreateCategory(ctx, course.Category{ID: "cat-new", Name: "Law", Slug: "law"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	second, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories after create: %v", err)
	}
	if next.categoryLists != 2 {
		t.Fatalf("expected reload after create, got %d loads", next.categoryLists)
	}
	if len(second) != len(first)+1 {
		t.Fatalf("expected %d categories, got %d", len(first)+1, len(second))
	}
}

func TestCourseRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.Seed()
	repo := NewCourseRepository(memory.NewCourseRepository(store), basecache.NewStore(time.Minute))

	items, err := repo.ListUniversities(t.Context())
	if err != nil {
		t.Fatalf("list universities: %v", err)
	}
	items[0].Name = "mutated"

	again, err := repo.ListUniversities(t.Context())
	if err != nil {
		t.Fatalf("list universities again: %v", err)
	}
	if again[0].Name == "mutated" {
		t.Fatalf("cached slice was mutated by caller")
	}
}

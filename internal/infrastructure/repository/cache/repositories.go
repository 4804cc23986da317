package cache

import (
	"context"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	basecache "github.com/riskibarqy/course-marketplace/internal/platform/cache"
)

const (
	universitiesKey    = "catalog:universities"
	categoriesKey      = "catalog:categories"
	categoryByIDPrefix = "catalog:category:id:"
)

// CourseRepository caches the reference lists of the catalog. Course reads
// pass through to next.
type CourseRepository struct {
	course.Repository
	cache *basecache.Store
}

func NewCourseRepository(next course.Repository, cache *basecache.Store) *CourseRepository {
	return &CourseRepository{Repository: next, cache: cache}
}

func (r *CourseRepository) ListUniversities(ctx context.Context) ([]course.University, error) {
	items, err := basecache.Load(ctx, r.cache, universitiesKey, r.Repository.ListUniversities)
	if err != nil {
		return nil, err
	}
	return append([]course.University(nil), items...), nil
}

func (r *CourseRepository) CreateUniversity(ctx context.Context, university course.University) error {
	if err := r.Repository.CreateUniversity(ctx, university); err != nil {
		return err
	}

	r.cache.Invalidate(ctx, universitiesKey)
	return nil
}

func (r *CourseRepository) ListCategories(ctx context.Context) ([]course.Category, error) {
	items, err := basecache.Load(ctx, r.cache, categoriesKey, r.Repository.ListCategories)
	if err != nil {
		return nil, err
	}
	return append([]course.Category(nil), items...), nil
}

func (r *CourseRepository) GetCategoryByID(ctx context.Context, categoryID string) (course.Category, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, categoryByIDPrefix+categoryID, func(ctx context.Context) (cachedCategoryByID, error) {
		item, exists, err := r.Repository.GetCategoryByID(ctx, categoryID)
		return cachedCategoryByID{value: item, exists: exists}, err
	})
	if err != nil {
		return course.Category{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedCategoryByID struct {
	value  course.Category
	exists bool
}

func (r *CourseRepository) CreateCategory(ctx context.Context, category course.Category) error {
	if err := r.Repository.CreateCategory(ctx, category); err != nil {
		return err
	}

	r.invalidateCategories(ctx)
	return nil
}

func (r *CourseRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := r.Repository.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}

	r.invalidateCategories(ctx)
	return nil
}

// Course writes change the per-category course counts.

func (r *CourseRepository) Create(ctx context.Context, item course.Course) error {
	if err := r.Repository.Create(ctx, item); err != nil {
		return err
	}

	r.invalidateCategories(ctx)
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, item course.Course) error {
	if err := r.Repository.Update(ctx, item); err != nil {
		return err
	}

	r.invalidateCategories(ctx)
	return nil
}

func (r *CourseRepository) SoftDelete(ctx context.Context, courseID string) error {
	if err := r.Repository.SoftDelete(ctx, courseID); err != nil {
		return err
	}

	r.invalidateCategories(ctx)
	return nil
}

func (r *CourseRepository) invalidateCategories(ctx context.Context) {
	r.cache.Invalidate(ctx, categoriesKey)
	r.cache.InvalidatePrefix(ctx, categoryByIDPrefix)
}

package course

import (
	"context"
	"errors"
)

var (
	ErrCategoryInUse = errors.New("category still has courses")
	ErrSlugTaken     = errors.New("slug already taken")
)

// Repository describes catalog persistence needs from use cases.
type Repository interface {
	ListUniversities(ctx context.Context) ([]University, error)
	CreateUniversity(ctx context.Context, university University) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (Category, bool, error)
	CreateCategory(ctx context.Context, category Category) error
	DeleteCategory(ctx context.Context, categoryID string) error

	List(ctx context.Context, filter ListFilter) ([]Course, error)
	Search(ctx context.Context, query, universityID string, limit int) ([]Course, error)
	GetByID(ctx context.Context, courseID string) (Course, bool, error)
	GetBySlug(ctx context.Context, slug string) (Course, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, course Course) error
	Update(ctx context.Context, course Course) error
	SoftDelete(ctx context.Context, courseID string) error
	SetPublished(ctx context.Context, courseID string, published bool) error
	SetFeatured(ctx context.Context, courseID string, featured bool) error
	Counts(ctx context.Context) (Counts, error)
}

// LessonRepository describes lesson persistence needs from use cases.
type LessonRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]Lesson, error)
	GetByID(ctx context.Context, lessonID string) (Lesson, bool, error)
	Create(ctx context.Context, lesson Lesson) error
	Update(ctx context.Context, lesson Lesson) error
	Delete(ctx context.Context, lessonID string) error
	NextPosition(ctx context.Context, courseID string) (int, error)
	Reorder(ctx context.Context, courseID string, orderedIDs []string) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

var courseListingColumns = []string{
	"c.*",
	"COALESCE(p.full_name, '') AS instructor_name",
	"COALESCE(cat.name, '') AS category_name",
	"COALESCE(u.name, '') AS university_name",
	"(SELECT COUNT(1) FROM enrollments e WHERE e.course_id = c.public_id) AS enrollment_count",
	"COALESCE((SELECT AVG(rv.rating)::float8 FROM reviews rv WHERE rv.course_id = c.public_id), 0) AS average_rating",
}

const courseListingFrom = "courses c " +
	"LEFT JOIN profiles p ON p.public_id = c.instructor_id " +
	"LEFT JOIN categories cat ON cat.public_id = c.category_id " +
	"LEFT JOIN universities u ON u.public_id = c.university_id"

type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) ListUniversities(ctx context.Context) ([]course.University, error) {
	query, args, err := qb.Select("*").From("universities").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select universities query: %w", err)
	}

	var rows []universityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select universities: %w", err)
	}

	out := make([]course.University, 0, len(rows))
	for _, row := range rows {
		out = append(out, course.University{
			ID:          row.PublicID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			City:        row.City,
			Country:     row.Country,
			LogoURL:     row.LogoURL,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *CourseRepository) CreateUniversity(ctx context.Context, university course.University) error {
	query, args, err := qb.InsertModel("universities", universityInsertModel{
		PublicID:    university.ID,
		Name:        university.Name,
		Slug:        university.Slug,
		Description: university.Description,
		City:        university.City,
		Country:     university.Country,
		LogoURL:     university.LogoURL,
	}, "")
	if err != nil {
		return fmt.Errorf("build create university query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "universities_slug_key") {
			return course.ErrSlugTaken
		}
		return fmt.Errorf("create university: %w", err)
	}
	return nil
}

func (r *CourseRepository) ListCategories(ctx context.Context) ([]course.Category, error) {
	query, args, err := qb.Select(
		"cat.*",
		"(SELECT COUNT(1) FROM courses c WHERE c.category_id = cat.public_id AND c.deleted_at IS NULL) AS course_count",
	).
		From("categories cat").
		OrderBy("cat.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	out := make([]course.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromRow(row))
	}
	return out, nil
}

func (r *CourseRepository) GetCategoryByID(ctx context.Context, categoryID string) (course.Category, bool, error) {
	query, args, err := qb.Select("cat.*", "0 AS course_count").From("categories cat").
		Where(qb.Eq("cat.public_id", categoryID)).
		ToSQL()
	if err != nil {
		return course.Category{}, false, fmt.Errorf("build get category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Category{}, false, nil
		}
		return course.Category{}, false, fmt.Errorf("get category: %w", err)
	}
	return categoryFromRow(row), true, nil
}

func (r *CourseRepository) CreateCategory(ctx context.Context, category course.Category) error {
	query, args, err := qb.InsertModel("categories", categoryInsertModel{
		PublicID:    category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
	}, "")
	if err != nil {
		return fmt.Errorf("build create category query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "categories_slug_key") {
			return course.ErrSlugTaken
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CourseRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	query, args, err := qb.DeleteFrom("categories").
		Where(
			qb.Eq("public_id", categoryID),
			qb.Expr("NOT EXISTS (SELECT 1 FROM courses c WHERE c.category_id = ? AND c.deleted_at IS NULL)", categoryID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete category query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete category: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, exists, err := r.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if exists {
		return course.ErrCategoryInUse
	}
	return nil
}

func (r *CourseRepository) List(ctx context.Context, filter course.ListFilter) ([]course.Course, error) {
	conds := []qb.Condition{qb.IsNull("c.deleted_at")}
	if !filter.IncludeUnpublished {
		conds = append(conds, qb.Expr("c.is_published"))
	}
	if filter.UniversityID != "" {
		conds = append(conds, qb.Eq("c.university_id", filter.UniversityID))
	}
	if filter.CategoryID != "" {
		conds = append(conds, qb.Eq("c.category_id", filter.CategoryID))
	}
	if filter.InstructorID != "" {
		conds = append(conds, qb.Eq("c.instructor_id", filter.InstructorID))
	}
	if filter.Level != "" {
		conds = append(conds, qb.Eq("c.level", string(filter.Level)))
	}
	if filter.FeaturedOnly {
		conds = append(conds, qb.Expr("c.is_featured"))
	}
	if filter.Search != "" {
		conds = append(conds, qb.ILike(filter.Search, "c.title"))
	}

	query, args, err := qb.Select(courseListingColumns...).From(courseListingFrom).
		Where(conds...).
		OrderBy("c.is_featured DESC", "c.created_at DESC", "c.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list courses query: %w", err)
	}

	var rows []courseListingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	out := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		out = append(out, courseFromRow(row))
	}
	return out, nil
}

func (r *CourseRepository) Search(ctx context.Context, query, universityID string, limit int) ([]course.Course, error) {
	return r.List(ctx, course.ListFilter{UniversityID: universityID, Search: query, Limit: limit})
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (course.Course, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("c.public_id", courseID))
}

func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (course.Course, bool, error) {
	return r.getOne(ctx, "slug", qb.Eq("c.slug", slug))
}

func (r *CourseRepository) getOne(ctx context.Context, by string, cond qb.Condition) (course.Course, bool, error) {
	query, args, err := qb.Select(courseListingColumns...).From(courseListingFrom).
		Where(cond, qb.IsNull("c.deleted_at")).
		ToSQL()
	if err != nil {
		return course.Course{}, false, fmt.Errorf("build get course by %s query: %w", by, err)
	}

	var row courseListingModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Course{}, false, nil
		}
		return course.Course{}, false, fmt.Errorf("get course by %s: %w", by, err)
	}
	return courseFromRow(row), true, nil
}

// SlugExists also sees soft-deleted rows since the unique index covers them.
func (r *CourseRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM courses WHERE slug = $1)`, slug); err != nil {
		return false, fmt.Errorf("check course slug: %w", err)
	}
	return exists, nil
}

func (r *CourseRepository) Create(ctx context.Context, item course.Course) error {
	query, args, err := qb.InsertModel("courses", courseInsertModel{
		PublicID:         item.ID,
		Title:            item.Title,
		Slug:             item.Slug,
		Description:      item.Description,
		ShortDescription: item.ShortDescription,
		ThumbnailURL:     item.ThumbnailURL,
		PreviewVideoURL:  item.PreviewVideoURL,
		Price:            item.Price,
		OriginalPrice:    item.OriginalPrice,
		InstructorID:     item.InstructorID,
		CategoryID:       nullableString(item.CategoryID),
		UniversityID:     item.UniversityID,
		Level:            string(item.Level),
		Language:         item.Language,
		DurationHours:    item.DurationHours,
		IsPublished:      item.IsPublished,
		IsFeatured:       item.IsFeatured,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create course query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "courses_slug_key") {
			return course.ErrSlugTaken
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, item course.Course) error {
	query, args, err := qb.Update("courses").
		Set("title", item.Title).
		Set("description", item.Description).
		Set("short_description", item.ShortDescription).
		Set("thumbnail_url", item.ThumbnailURL).
		Set("preview_video_url", item.PreviewVideoURL).
		Set("price", item.Price).
		Set("original_price", item.OriginalPrice).
		Set("category_id", nullableString(item.CategoryID)).
		Set("university_id", item.UniversityID).
		Set("level", string(item.Level)).
		Set("language", item.Language).
		Set("duration_hours", item.DurationHours).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update course query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

func (r *CourseRepository) SoftDelete(ctx context.Context, courseID string) error {
	query, args, err := qb.Update("courses").
		SetExpr("deleted_at", "NOW()").
		Set("is_published", false).
		Where(qb.Eq("public_id", courseID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete course query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("soft delete course: %w", err)
	}
	return nil
}

func (r *CourseRepository) SetPublished(ctx context.Context, courseID string, published bool) error {
	return r.setFlag(ctx, "is_published", courseID, published)
}

func (r *CourseRepository) SetFeatured(ctx context.Context, courseID string, featured bool) error {
	return r.setFlag(ctx, "is_featured", courseID, featured)
}

func (r *CourseRepository) setFlag(ctx context.Context, column, courseID string, value bool) error {
	query, args, err := qb.Update("courses").
		Set(column, value).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", courseID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update course %s query: %w", column, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update course %s: %w", column, err)
	}
	return nil
}

func (r *CourseRepository) Counts(ctx context.Context) (course.Counts, error) {
	query, args, err := qb.Select(
		"COUNT(1) AS total",
		"COUNT(1) FILTER (WHERE is_published) AS published",
	).
		From("courses").
		Where(qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return course.Counts{}, fmt.Errorf("build count courses query: %w", err)
	}

	var row courseCountsModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return course.Counts{}, fmt.Errorf("count courses: %w", err)
	}
	return course.Counts{Total: row.Total, Published: row.Published}, nil
}

func categoryFromRow(row categoryTableModel) course.Category {
	return course.Category{
		ID:          row.PublicID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Icon:        row.Icon,
		CourseCount: row.CourseCount,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func courseFromRow(row courseListingModel) course.Course {
	return course.Course{
		ID:               row.PublicID,
		Title:            row.Title,
		Slug:             row.Slug,
		Description:      row.Description,
		ShortDescription: row.ShortDescription,
		ThumbnailURL:     row.ThumbnailURL,
		PreviewVideoURL:  row.PreviewVideoURL,
		Price:            row.Price,
		OriginalPrice:    row.OriginalPrice,
		InstructorID:     row.InstructorID,
		CategoryID:       nullStringValue(row.CategoryID),
		UniversityID:     row.UniversityID,
		Level:            course.Level(row.Level),
		Language:         row.Language,
		DurationHours:    row.DurationHours,
		IsPublished:      row.IsPublished,
		IsFeatured:       row.IsFeatured,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
		InstructorName:   row.InstructorName,
		CategoryName:     row.CategoryName,
		UniversityName:   row.UniversityName,
		EnrollmentCount:  row.EnrollmentCount,
		AverageRating:    row.AverageRating,
	}
}

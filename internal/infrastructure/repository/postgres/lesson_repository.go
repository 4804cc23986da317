package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type LessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func (r *LessonRepository) ListByCourse(ctx context.Context, courseID string) ([]course.Lesson, error) {
	query, args, err := qb.Select("*").From("lessons").
		Where(qb.Eq("course_id", courseID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lessons query: %w", err)
	}

	var rows []lessonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	out := make([]course.Lesson, 0, len(rows))
	for _, row := range rows {
		out = append(out, lessonFromRow(row))
	}
	return out, nil
}

func (r *LessonRepository) GetByID(ctx context.Context, lessonID string) (course.Lesson, bool, error) {
	query, args, err := qb.Select("*").From("lessons").
		Where(qb.Eq("public_id", lessonID)).
		ToSQL()
	if err != nil {
		return course.Lesson{}, false, fmt.Errorf("build get lesson query: %w", err)
	}

	var row lessonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Lesson{}, false, nil
		}
		return course.Lesson{}, false, fmt.Errorf("get lesson: %w", err)
	}
	return lessonFromRow(row), true, nil
}

func (r *LessonRepository) Create(ctx context.Context, lesson course.Lesson) error {
	query, args, err := qb.InsertModel("lessons", lessonInsertModel{
		PublicID:        lesson.ID,
		CourseID:        lesson.CourseID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		ContentType:     string(lesson.ContentType),
		VideoURL:        lesson.VideoURL,
		TextContent:     lesson.TextContent,
		ResourceURL:     lesson.ResourceURL,
		DurationMinutes: lesson.DurationMinutes,
		Position:        lesson.Position,
		IsFreePreview:   lesson.IsFreePreview,
		CreatedAt:       lesson.CreatedAt,
		UpdatedAt:       lesson.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create lesson query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

func (r *LessonRepository) Update(ctx context.Context, lesson course.Lesson) error {
	query, args, err := qb.Update("lessons").
		Set("title", lesson.Title).
		Set("description", lesson.Description).
		Set("content_type", string(lesson.ContentType)).
		Set("video_url", lesson.VideoURL).
		Set("text_content", lesson.TextContent).
		Set("resource_url", lesson.ResourceURL).
		Set("duration_minutes", lesson.DurationMinutes).
		Set("is_free_preview", lesson.IsFreePreview).
		Set("updated_at", lesson.UpdatedAt).
		Where(qb.Eq("public_id", lesson.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update lesson query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

// Delete removes the lesson; its progress rows go with it through the foreign key cascade.
func (r *LessonRepository) Delete(ctx context.Context, lessonID string) error {
	query, args, err := qb.DeleteFrom("lessons").Where(qb.Eq("public_id", lessonID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lesson query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}

func (r *LessonRepository) NextPosition(ctx context.Context, courseID string) (int, error) {
	var next int
	if err := r.db.GetContext(ctx, &next, `SELECT COALESCE(MAX(position), 0) + 1 FROM lessons WHERE course_id = $1`, courseID); err != nil {
		return 0, fmt.Errorf("next lesson position: %w", err)
	}
	return next, nil
}

// Reorder moves positions out of the way first so the (course, position) index holds at every step.
func (r *LessonRepository) Reorder(ctx context.Context, courseID string, orderedIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx reorder lessons: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	parkQuery, parkArgs, err := qb.Update("lessons").
		SetExpr("position", "-position").
		Where(qb.Eq("course_id", courseID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build park lesson positions query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, parkQuery, parkArgs...); err != nil {
		return fmt.Errorf("park lesson positions: %w", err)
	}

	for i, lessonID := range orderedIDs {
		query, args, err := qb.Update("lessons").
			Set("position", i+1).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", lessonID), qb.Eq("course_id", courseID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build reorder lesson query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reorder lesson %s: %w", lessonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder lessons tx: %w", err)
	}
	return nil
}

func lessonFromRow(row lessonTableModel) course.Lesson {
	return course.Lesson{
		ID:              row.PublicID,
		CourseID:        row.CourseID,
		Title:           row.Title,
		Description:     row.Description,
		ContentType:     course.ContentType(row.ContentType),
		VideoURL:        row.VideoURL,
		TextContent:     row.TextContent,
		ResourceURL:     row.ResourceURL,
		DurationMinutes: row.DurationMinutes,
		Position:        row.Position,
		IsFreePreview:   row.IsFreePreview,
		CreatedAt:       row.CreatedAt.UTC(),
		UpdatedAt:       row.UpdatedAt.UTC(),
	}
}

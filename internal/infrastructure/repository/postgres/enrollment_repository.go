package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

var enrollmentListingColumns = []string{
	"e.*",
	"COALESCE(c.title, '') AS course_title",
	"COALESCE(c.slug, '') AS course_slug",
	"COALESCE(c.thumbnail_url, '') AS course_thumbnail_url",
}

const enrollmentListingFrom = "enrollments e LEFT JOIN courses c ON c.public_id = e.course_id"

type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, item enrollment.Enrollment) (enrollment.Enrollment, bool, error) {
	created, err := insertEnrollment(ctx, r.db, item)
	if err != nil {
		return enrollment.Enrollment{}, false, err
	}

	stored, ok, err := r.Get(ctx, item.UserID, item.CourseID)
	if err != nil {
		return enrollment.Enrollment{}, false, err
	}
	if !ok {
		return enrollment.Enrollment{}, false, fmt.Errorf("enrollment for user %s course %s vanished after insert", item.UserID, item.CourseID)
	}
	return stored, created, nil
}

// insertEnrollment is shared with payment approval so both run on the caller's transaction.
func insertEnrollment(ctx context.Context, db sqlx.ExtContext, item enrollment.Enrollment) (bool, error) {
	query, args, err := qb.InsertModel("enrollments", enrollmentInsertModel{
		PublicID:   item.ID,
		UserID:     item.UserID,
		CourseID:   item.CourseID,
		EnrolledAt: item.EnrolledAt,
	}, qb.OnConflictDoNothing("user_id", "course_id"))
	if err != nil {
		return false, fmt.Errorf("build create enrollment query: %w", err)
	}
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create enrollment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected create enrollment: %w", err)
	}
	return affected > 0, nil
}

func (r *EnrollmentRepository) Get(ctx context.Context, userID, courseID string) (enrollment.Enrollment, bool, error) {
	query, args, err := qb.Select(enrollmentListingColumns...).From(enrollmentListingFrom).
		Where(qb.Eq("e.user_id", userID), qb.Eq("e.course_id", courseID)).
		ToSQL()
	if err != nil {
		return enrollment.Enrollment{}, false, fmt.Errorf("build get enrollment query: %w", err)
	}

	var row enrollmentListingModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return enrollment.Enrollment{}, false, nil
		}
		return enrollment.Enrollment{}, false, fmt.Errorf("get enrollment: %w", err)
	}
	return enrollmentFromRow(row), true, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	query, args, err := qb.Select(enrollmentListingColumns...).From(enrollmentListingFrom).
		Where(qb.Eq("e.user_id", userID)).
		OrderBy("e.enrolled_at DESC", "e.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list enrollments by user query: %w", err)
	}

	var rows []enrollmentListingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments by user: %w", err)
	}

	out := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		out = append(out, enrollmentFromRow(row))
	}
	return out, nil
}

func (r *EnrollmentRepository) ListByCourses(ctx context.Context, courseIDs []string) ([]enrollment.Enrollment, error) {
	if len(courseIDs) == 0 {
		return []enrollment.Enrollment{}, nil
	}

	query, args, err := qb.Select(enrollmentListingColumns...).From(enrollmentListingFrom).
		Where(qb.In("e.course_id", anySlice(courseIDs))).
		OrderBy("e.enrolled_at", "e.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list enrollments by courses query: %w", err)
	}

	var rows []enrollmentListingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments by courses: %w", err)
	}

	out := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		out = append(out, enrollmentFromRow(row))
	}
	return out, nil
}

func (r *EnrollmentRepository) ListUserIDsByCourse(ctx context.Context, courseID string) ([]string, error) {
	query, args, err := qb.Select("user_id").From("enrollments").
		Where(qb.Eq("course_id", courseID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list enrolled users query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list enrolled users: %w", err)
	}
	return out, nil
}

func (r *EnrollmentRepository) ListCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error) {
	query, args, err := qb.Select("lp.lesson_id").
		From("lesson_progress lp JOIN lessons l ON l.public_id = lp.lesson_id").
		Where(
			qb.Eq("lp.user_id", userID),
			qb.Eq("lp.course_id", courseID),
			qb.Expr("lp.is_completed"),
		).
		OrderBy("l.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completed lessons query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	return out, nil
}

func (r *EnrollmentRepository) CompleteLesson(ctx context.Context, change enrollment.LessonChange) (enrollment.ProgressResult, error) {
	return r.applyChange(ctx, change, func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("lesson_progress", lessonProgressInsertModel{
			PublicID:      change.ProgressID,
			UserID:        change.UserID,
			LessonID:      change.LessonID,
			CourseID:      change.CourseID,
			IsCompleted:   true,
			CompletedAt:   change.At,
			LastWatchedAt: change.At,
		}, `ON CONFLICT (user_id, lesson_id) DO UPDATE SET
			is_completed = TRUE,
			completed_at = COALESCE(lesson_progress.completed_at, EXCLUDED.completed_at),
			last_watched_at = EXCLUDED.last_watched_at`)
		if err != nil {
			return fmt.Errorf("build upsert lesson progress query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert lesson progress: %w", err)
		}
		return nil
	})
}

func (r *EnrollmentRepository) UncompleteLesson(ctx context.Context, change enrollment.LessonChange) (enrollment.ProgressResult, error) {
	return r.applyChange(ctx, change, func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("lesson_progress").
			Where(qb.Eq("user_id", change.UserID), qb.Eq("lesson_id", change.LessonID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete lesson progress query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete lesson progress: %w", err)
		}
		return nil
	})
}

// applyChange locks the enrollment row, applies the progress write and recomputes the percentage.
func (r *EnrollmentRepository) applyChange(ctx context.Context, change enrollment.LessonChange, write func(tx *sqlx.Tx) error) (enrollment.ProgressResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("begin tx lesson progress: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("enrollments").
		Where(qb.Eq("user_id", change.UserID), qb.Eq("course_id", change.CourseID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("build lock enrollment query: %w", err)
	}
	var current enrollmentTableModel
	if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return enrollment.ProgressResult{}, fmt.Errorf("enrollment for user %s course %s not found", change.UserID, change.CourseID)
		}
		return enrollment.ProgressResult{}, fmt.Errorf("lock enrollment: %w", err)
	}

	if err := write(tx); err != nil {
		return enrollment.ProgressResult{}, err
	}

	var counts progressCountModel
	if err := tx.GetContext(ctx, &counts, `
SELECT COUNT(l.id) AS total, COUNT(lp.id) FILTER (WHERE lp.is_completed) AS completed
FROM lessons l
LEFT JOIN lesson_progress lp ON lp.lesson_id = l.public_id AND lp.user_id = $1
WHERE l.course_id = $2`, change.UserID, change.CourseID); err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("count lesson progress: %w", err)
	}

	wasCompleted := current.CompletedAt.Valid
	percentage := enrollment.Percentage(counts.Completed, counts.Total)
	var completedAt *time.Time
	switch {
	case percentage == 100 && wasCompleted:
		completedAt = nullTimePtr(current.CompletedAt)
	case percentage == 100:
		at := change.At
		completedAt = &at
	}

	updateQuery, updateArgs, err := qb.Update("enrollments").
		Set("progress_percentage", percentage).
		Set("completed_at", completedAt).
		Where(qb.Eq("public_id", current.PublicID)).
		ToSQL()
	if err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("build update enrollment progress query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("update enrollment progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return enrollment.ProgressResult{}, fmt.Errorf("commit lesson progress tx: %w", err)
	}

	stored, ok, err := r.Get(ctx, change.UserID, change.CourseID)
	if err != nil {
		return enrollment.ProgressResult{}, err
	}
	if !ok {
		return enrollment.ProgressResult{}, fmt.Errorf("enrollment for user %s course %s not found", change.UserID, change.CourseID)
	}
	return enrollment.ProgressResult{
		Enrollment:       stored,
		CompletedLessons: counts.Completed,
		TotalLessons:     counts.Total,
		JustCompleted:    !wasCompleted && completedAt != nil,
	}, nil
}

func (r *EnrollmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM enrollments`); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

func enrollmentFromRow(row enrollmentListingModel) enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:                 row.PublicID,
		UserID:             row.UserID,
		CourseID:           row.CourseID,
		ProgressPercentage: row.ProgressPercentage,
		CompletedAt:        nullTimePtr(row.CompletedAt),
		EnrolledAt:         row.EnrolledAt.UTC(),
		CourseTitle:        row.CourseTitle,
		CourseSlug:         row.CourseSlug,
		CourseThumbnailURL: row.CourseThumbnailURL,
	}
}

package enrollment

import "context"

// Repository describes enrollment and lesson progress persistence.
type Repository interface {
	// Create inserts the enrollment unless one exists for the same user and
	// course; it returns the stored row and whether it was newly created.
	Create(ctx context.Context, item Enrollment) (Enrollment, bool, error)
	Get(ctx context.Context, userID, courseID string) (Enrollment, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Enrollment, error)
	ListUserIDsByCourse(ctx context.Context, courseID string) ([]string, error)
	// ListByCourses returns every enrollment in the given courses, oldest first.
	ListByCourses(ctx context.Context, courseIDs []string) ([]Enrollment, error)
	ListCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error)
	// CompleteLesson and UncompleteLesson update the progress row and the
	// enrollment percentage in one transaction.
	CompleteLesson(ctx context.Context, change LessonChange) (ProgressResult, error)
	UncompleteLesson(ctx context.Context, change LessonChange) (ProgressResult, error)
	Count(ctx context.Context) (int, error)
}

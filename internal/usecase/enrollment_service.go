package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

// CourseProgress is the caller's enrollment plus the lessons already completed.
type CourseProgress struct {
	Enrollment         enrollment.Enrollment
	CompletedLessonIDs []string
}

// LessonProgressResult is the outcome of a lesson toggle.
type LessonProgressResult struct {
	Progress    enrollment.ProgressResult
	Certificate *certificate.Certificate
}

type EnrollmentService struct {
	courses      course.Repository
	lessons      course.LessonRepository
	enrollments  enrollment.Repository
	certificates *CertificateService
	notifier     *NotificationService
	ids          id.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewEnrollmentService(
	courses course.Repository,
	lessons course.LessonRepository,
	enrollments enrollment.Repository,
	certificates *CertificateService,
	notifier *NotificationService,
	ids id.Generator,
	logger *logging.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EnrollmentService{
		courses:      courses,
		lessons:      lessons,
		enrollments:  enrollments,
		certificates: certificates,
		notifier:     notifier,
		ids:          ids,
		logger:       logger,
		now:          time.Now,
	}
}

// Enroll joins a free published course. Paid courses go through checkout.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (enrollment.Enrollment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.Enroll", courseAttr(courseID))
	defer span.End()

	item, err := publishedCourse(ctx, s.courses, courseID)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	if !item.IsFree() {
		return enrollment.Enrollment{}, fmt.Errorf("%w: checkout required for paid course", ErrPaymentRequired)
	}

	if existing, exists, err := s.enrollments.Get(ctx, userID, item.ID); err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	} else if exists {
		return existing, nil
	}

	enrollmentID, err := s.ids.NewID()
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("generate enrollment id: %w", err)
	}
	stored, created, err := s.enrollments.Create(ctx, enrollment.Enrollment{
		ID:         enrollmentID,
		UserID:     userID,
		CourseID:   item.ID,
		EnrolledAt: s.now().UTC(),
	})
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("create enrollment: %w", err)
	}

	if created {
		s.notifier.notifyQuietly(ctx, NotifyInput{
			UserID:  userID,
			Type:    notification.TypeEnrollment,
			Title:   "Enrollment confirmed",
			Message: fmt.Sprintf("You are now enrolled in %s.", item.Title),
			Data:    map[string]any{"course_id": item.ID, "course_slug": item.Slug},
		})
	}
	return stored, nil
}

func (s *EnrollmentService) ListMine(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	items, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return items, nil
}

func (s *EnrollmentService) GetCourseProgress(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	courseID = strings.TrimSpace(courseID)
	item, exists, err := s.enrollments.Get(ctx, userID, courseID)
	if err != nil {
		return CourseProgress{}, fmt.Errorf("get enrollment: %w", err)
	}
	if !exists {
		return CourseProgress{}, fmt.Errorf("%w: not enrolled in course", ErrNotFound)
	}

	completed, err := s.enrollments.ListCompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return CourseProgress{}, fmt.Errorf("list completed lessons: %w", err)
	}
	return CourseProgress{Enrollment: item, CompletedLessonIDs: completed}, nil
}

// MarkLessonComplete records the lesson as done and recomputes progress. A
// completed course gets its certificate, which is issued idempotently so a
// retried call repairs a missing one.
func (s *EnrollmentService) MarkLessonComplete(ctx context.Context, userID, lessonID string) (LessonProgressResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.MarkLessonComplete")
	defer span.End()

	change, lesson, err := s.lessonChange(ctx, userID, lessonID)
	if err != nil {
		return LessonProgressResult{}, err
	}

	progress, err := s.enrollments.CompleteLesson(ctx, change)
	if err != nil {
		return LessonProgressResult{}, fmt.Errorf("complete lesson: %w", err)
	}

	result := LessonProgressResult{Progress: progress}
	if !progress.Enrollment.IsCompleted() {
		return result, nil
	}

	issued, err := s.certificates.Issue(ctx, userID, lesson.CourseID)
	if err != nil {
		return LessonProgressResult{}, fmt.Errorf("issue certificate: %w", err)
	}
	result.Certificate = &issued

	if progress.JustCompleted {
		s.logger.InfoContext(ctx, "course completed", "user_id", userID, "course_id", lesson.CourseID)
		s.notifier.notifyQuietly(ctx, NotifyInput{
			UserID:  userID,
			Type:    notification.TypeCompletion,
			Title:   "Course completed",
			Message: "Congratulations! Your certificate is ready.",
			Data: map[string]any{
				"course_id":          lesson.CourseID,
				"certificate_number": issued.Number,
			},
		})
	}
	return result, nil
}

// UnmarkLessonComplete removes the lesson's completion. Certificates already
// issued are kept.
func (s *EnrollmentService) UnmarkLessonComplete(ctx context.Context, userID, lessonID string) (LessonProgressResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.UnmarkLessonComplete")
	defer span.End()

	change, _, err := s.lessonChange(ctx, userID, lessonID)
	if err != nil {
		return LessonProgressResult{}, err
	}

	progress, err := s.enrollments.UncompleteLesson(ctx, change)
	if err != nil {
		return LessonProgressResult{}, fmt.Errorf("uncomplete lesson: %w", err)
	}
	return LessonProgressResult{Progress: progress}, nil
}

func (s *EnrollmentService) lessonChange(ctx context.Context, userID, lessonID string) (enrollment.LessonChange, course.Lesson, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("%w: lesson_id is required", ErrInvalidInput)
	}

	lesson, exists, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}
	if !exists {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("%w: lesson not found", ErrNotFound)
	}

	if _, enrolled, err := s.enrollments.Get(ctx, userID, lesson.CourseID); err != nil {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("get enrollment: %w", err)
	} else if !enrolled {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("%w: not enrolled in course", ErrForbidden)
	}

	progressID, err := s.ids.NewID()
	if err != nil {
		return enrollment.LessonChange{}, course.Lesson{}, fmt.Errorf("generate progress id: %w", err)
	}

	return enrollment.LessonChange{
		ProgressID: progressID,
		UserID:     userID,
		CourseID:   lesson.CourseID,
		LessonID:   lesson.ID,
		At:         s.now().UTC(),
	}, lesson, nil
}

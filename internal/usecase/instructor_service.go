package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

type CourseInput struct {
	Title            string
	Description      string
	ShortDescription string
	ThumbnailURL     string
	PreviewVideoURL  string
	Price            int64
	OriginalPrice    int64
	CategoryID       string
	UniversityID     string
	Level            string
	Language         string
	DurationHours    int
}

type LessonInput struct {
	Title           string
	Description     string
	ContentType     string
	VideoURL        string
	TextContent     string
	ResourceURL     string
	DurationMinutes int
	IsFreePreview   bool
}

type InstructorCourseStats struct {
	Course          course.Course
	EnrollmentCount int
	AverageRating   float64
	Revenue         int64
	PendingRevenue  int64
}

type InstructorDashboard struct {
	Courses          []InstructorCourseStats
	TotalCourses     int
	PublishedCourses int
	TotalEnrollments int
	TotalRevenue     int64
	PendingRevenue   int64
	AverageRating    float64
}

// InstructorStudent is a learner enrolled in at least one of the
// instructor's courses.
type InstructorStudent struct {
	Profile         user.Profile
	CourseIDs       []string
	FirstEnrolledAt time.Time
}

type InstructorService struct {
	courses     course.Repository
	lessons     course.LessonRepository
	enrollments enrollment.Repository
	payments    payment.Repository
	users       user.Repository
	notifier    *NotificationService
	ids         id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewInstructorService(
	courses course.Repository,
	lessons course.LessonRepository,
	enrollments enrollment.Repository,
	payments payment.Repository,
	users user.Repository,
	notifier *NotificationService,
	ids id.Generator,
	logger *logging.Logger,
) *InstructorService {
	if logger == nil {
		logger = logging.Default()
	}

	return &InstructorService{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		payments:    payments,
		users:       users,
		notifier:    notifier,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *InstructorService) ListMyCourses(ctx context.Context, principal user.Principal) ([]course.Course, error) {
	items, err := s.courses.List(ctx, course.ListFilter{
		InstructorID:       principal.UserID,
		IncludeUnpublished: true,
		Limit:              course.MaxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return items, nil
}

// CreateCourse stores an unpublished course with a unique slug derived from its title.
func (s *InstructorService) CreateCourse(ctx context.Context, principal user.Principal, input CourseInput) (course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.CreateCourse")
	defer span.End()

	courseID, err := s.ids.NewID()
	if err != nil {
		return course.Course{}, fmt.Errorf("generate course id: %w", err)
	}
	slug, err := course.UniqueSlug(course.Slugify(input.Title), func(candidate string) (bool, error) {
		return s.courses.SlugExists(ctx, candidate)
	})
	if err != nil {
		return course.Course{}, fmt.Errorf("resolve course slug: %w", err)
	}

	now := s.now().UTC()
	item := applyCourseInput(course.Course{
		ID:           courseID,
		Slug:         slug,
		InstructorID: principal.UserID,
		CreatedAt:    now,
	}, input)
	item.UpdatedAt = now
	if err := item.ValidateBasic(); err != nil {
		return course.Course{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.courses.Create(ctx, item); err != nil {
		if errors.Is(err, course.ErrSlugTaken) {
			return course.Course{}, fmt.Errorf("%w: slug %s already taken", ErrConflict, slug)
		}
		return course.Course{}, fmt.Errorf("create course: %w", err)
	}

	s.logger.InfoContext(ctx, "course created", "course_id", item.ID, "instructor_id", principal.UserID)
	return item, nil
}

// UpdateCourse replaces the editable fields. The slug stays stable.
func (s *InstructorService) UpdateCourse(ctx context.Context, principal user.Principal, courseID string, input CourseInput) (course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.UpdateCourse", courseAttr(courseID))
	defer span.End()

	current, err := ownedCourse(ctx, s.courses, principal, courseID)
	if err != nil {
		return course.Course{}, err
	}
	item := applyCourseInput(current, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.ValidateBasic(); err != nil {
		return course.Course{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.courses.Update(ctx, item); err != nil {
		return course.Course{}, fmt.Errorf("update course: %w", err)
	}
	return item, nil
}

func (s *InstructorService) DeleteCourse(ctx context.Context, principal user.Principal, courseID string) error {
	item, err := ownedCourse(ctx, s.courses, principal, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SoftDelete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	s.logger.InfoContext(ctx, "course deleted", "course_id", item.ID, "by", principal.UserID)
	return nil
}

func (s *InstructorService) SetPublished(ctx context.Context, principal user.Principal, courseID string, published bool) error {
	item, err := ownedCourse(ctx, s.courses, principal, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, item.ID, published); err != nil {
		return fmt.Errorf("set course published: %w", err)
	}
	return nil
}

// AddLesson appends a lesson and tells enrolled students when the course is live.
func (s *InstructorService) AddLesson(ctx context.Context, principal user.Principal, courseID string, input LessonInput) (course.Lesson, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.AddLesson", courseAttr(courseID))
	defer span.End()

	owner, err := ownedCourse(ctx, s.courses, principal, courseID)
	if err != nil {
		return course.Lesson{}, err
	}
	position, err := s.lessons.NextPosition(ctx, owner.ID)
	if err != nil {
		return course.Lesson{}, fmt.Errorf("next lesson position: %w", err)
	}
	lessonID, err := s.ids.NewID()
	if err != nil {
		return course.Lesson{}, fmt.Errorf("generate lesson id: %w", err)
	}

	now := s.now().UTC()
	lesson := applyLessonInput(course.Lesson{
		ID:        lessonID,
		CourseID:  owner.ID,
		Position:  position,
		CreatedAt: now,
	}, input)
	lesson.UpdatedAt = now
	if err := lesson.ValidateBasic(); err != nil {
		return course.Lesson{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return course.Lesson{}, fmt.Errorf("create lesson: %w", err)
	}

	if owner.IsPublished {
		s.announceLesson(ctx, owner, lesson)
	}
	return lesson, nil
}

func (s *InstructorService) announceLesson(ctx context.Context, owner course.Course, lesson course.Lesson) {
	userIDs, err := s.enrollments.ListUserIDsByCourse(ctx, owner.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "list enrolled students failed", "course_id", owner.ID, "error", err)
		return
	}
	result, err := s.notifier.Broadcast(ctx, userIDs, NotifyInput{
		Type:    notification.TypeUpdate,
		Title:   "New lesson available",
		Message: fmt.Sprintf("%s has a new lesson: %s", owner.Title, lesson.Title),
		Data:    map[string]any{"course_id": owner.ID, "lesson_id": lesson.ID},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "broadcast new lesson failed", "course_id", owner.ID, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "new lesson announced",
		"course_id", owner.ID,
		"sent", result.Sent,
		"failed", result.Failed,
	)
}

func (s *InstructorService) UpdateLesson(ctx context.Context, principal user.Principal, lessonID string, input LessonInput) (course.Lesson, error) {
	current, err := s.ownedLesson(ctx, principal, lessonID)
	if err != nil {
		return course.Lesson{}, err
	}
	lesson := applyLessonInput(current, input)
	lesson.UpdatedAt = s.now().UTC()
	if err := lesson.ValidateBasic(); err != nil {
		return course.Lesson{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.lessons.Update(ctx, lesson); err != nil {
		return course.Lesson{}, fmt.Errorf("update lesson: %w", err)
	}
	return lesson, nil
}

func (s *InstructorService) DeleteLesson(ctx context.Context, principal user.Principal, lessonID string) error {
	lesson, err := s.ownedLesson(ctx, principal, lessonID)
	if err != nil {
		return err
	}
	if err := s.lessons.Delete(ctx, lesson.ID); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}

// ReorderLessons sets lesson positions to the given order, which must list
// every lesson of the course exactly once.
func (s *InstructorService) ReorderLessons(ctx context.Context, principal user.Principal, courseID string, orderedIDs []string) ([]course.Lesson, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.ReorderLessons", courseAttr(courseID))
	defer span.End()

	owner, err := ownedCourse(ctx, s.courses, principal, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListByCourse(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	ids := make([]string, len(orderedIDs))
	for i, lessonID := range orderedIDs {
		ids[i] = strings.TrimSpace(lessonID)
	}
	if !course.ValidOrder(lessons, ids) {
		return nil, fmt.Errorf("%w: lesson order must list every lesson of the course once", ErrInvalidInput)
	}

	if err := s.lessons.Reorder(ctx, owner.ID, ids); err != nil {
		return nil, fmt.Errorf("reorder lessons: %w", err)
	}
	reordered, err := s.lessons.ListByCourse(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return reordered, nil
}

// Dashboard summarizes enrollments, ratings, completed and pending revenue
// per own course.
func (s *InstructorService) Dashboard(ctx context.Context, principal user.Principal) (InstructorDashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.Dashboard")
	defer span.End()

	courses, err := s.ListMyCourses(ctx, principal)
	if err != nil {
		return InstructorDashboard{}, err
	}
	courseIDs := make([]string, 0, len(courses))
	for _, item := range courses {
		courseIDs = append(courseIDs, item.ID)
	}
	revenue, err := s.payments.RevenueByCourse(ctx, courseIDs, payment.StatusCompleted)
	if err != nil {
		return InstructorDashboard{}, fmt.Errorf("revenue by course: %w", err)
	}
	pending, err := s.payments.RevenueByCourse(ctx, courseIDs, payment.StatusPending)
	if err != nil {
		return InstructorDashboard{}, fmt.Errorf("pending revenue by course: %w", err)
	}

	out := InstructorDashboard{
		Courses:      make([]InstructorCourseStats, 0, len(courses)),
		TotalCourses: len(courses),
	}
	ratingSum := 0.0
	rated := 0
	for _, item := range courses {
		stats := InstructorCourseStats{
			Course:          item,
			EnrollmentCount: item.EnrollmentCount,
			AverageRating:   item.AverageRating,
			Revenue:         revenue[item.ID],
			PendingRevenue:  pending[item.ID],
		}
		out.Courses = append(out.Courses, stats)
		out.TotalEnrollments += stats.EnrollmentCount
		out.TotalRevenue += stats.Revenue
		out.PendingRevenue += stats.PendingRevenue
		if item.IsPublished {
			out.PublishedCourses++
		}
		if stats.AverageRating > 0 {
			ratingSum += stats.AverageRating
			rated++
		}
	}
	if rated > 0 {
		out.AverageRating = ratingSum / float64(rated)
	}
	return out, nil
}

// ListStudents returns the distinct learners enrolled in the caller's
// courses, ordered by name. search matches name or email case-insensitively.
func (s *InstructorService) ListStudents(ctx context.Context, principal user.Principal, search string) ([]InstructorStudent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InstructorService.ListStudents")
	defer span.End()

	courses, err := s.ListMyCourses(ctx, principal)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]string, 0, len(courses))
	for _, item := range courses {
		courseIDs = append(courseIDs, item.ID)
	}
	enrollments, err := s.enrollments.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}

	byUser := make(map[string]*InstructorStudent)
	order := make([]string, 0)
	for _, item := range enrollments {
		student, ok := byUser[item.UserID]
		if !ok {
			student = &InstructorStudent{FirstEnrolledAt: item.EnrolledAt}
			byUser[item.UserID] = student
			order = append(order, item.UserID)
		}
		student.CourseIDs = append(student.CourseIDs, item.CourseID)
		if item.EnrolledAt.Before(student.FirstEnrolledAt) {
			student.FirstEnrolledAt = item.EnrolledAt
		}
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]InstructorStudent, 0, len(order))
	for _, userID := range order {
		profile, exists, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get student profile: %w", err)
		}
		if !exists {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(profile.FullName), needle) &&
			!strings.Contains(strings.ToLower(profile.Email), needle) {
			continue
		}
		student := byUser[userID]
		student.Profile = profile
		out = append(out, *student)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Profile.FullName) < strings.ToLower(out[j].Profile.FullName)
	})
	return out, nil
}

func (s *InstructorService) ownedLesson(ctx context.Context, principal user.Principal, lessonID string) (course.Lesson, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return course.Lesson{}, fmt.Errorf("%w: lesson_id is required", ErrInvalidInput)
	}
	lesson, exists, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return course.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}
	if !exists {
		return course.Lesson{}, fmt.Errorf("%w: lesson not found", ErrNotFound)
	}
	if _, err := ownedCourse(ctx, s.courses, principal, lesson.CourseID); err != nil {
		return course.Lesson{}, err
	}
	return lesson, nil
}

// ownedCourse loads a course the principal may edit: their own, or any for admins.
func ownedCourse(ctx context.Context, courses course.Repository, principal user.Principal, courseID string) (course.Course, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return course.Course{}, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}
	item, exists, err := courses.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return course.Course{}, fmt.Errorf("%w: course not found", ErrNotFound)
	}
	if !canManageCourse(principal, item) {
		return course.Course{}, fmt.Errorf("%w: not the course instructor", ErrForbidden)
	}
	return item, nil
}

func applyCourseInput(item course.Course, input CourseInput) course.Course {
	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.ShortDescription = strings.TrimSpace(input.ShortDescription)
	item.ThumbnailURL = strings.TrimSpace(input.ThumbnailURL)
	item.PreviewVideoURL = strings.TrimSpace(input.PreviewVideoURL)
	item.Price = input.Price
	item.OriginalPrice = input.OriginalPrice
	item.CategoryID = strings.TrimSpace(input.CategoryID)
	item.UniversityID = strings.TrimSpace(input.UniversityID)
	item.Level = course.Level(strings.TrimSpace(input.Level))
	item.Language = strings.TrimSpace(input.Language)
	item.DurationHours = input.DurationHours
	return item
}

func applyLessonInput(lesson course.Lesson, input LessonInput) course.Lesson {
	lesson.Title = strings.TrimSpace(input.Title)
	lesson.Description = strings.TrimSpace(input.Description)
	lesson.ContentType = course.ContentType(strings.TrimSpace(input.ContentType))
	lesson.VideoURL = strings.TrimSpace(input.VideoURL)
	lesson.TextContent = input.TextContent
	lesson.ResourceURL = strings.TrimSpace(input.ResourceURL)
	lesson.DurationMinutes = input.DurationMinutes
	lesson.IsFreePreview = input.IsFreePreview
	return lesson
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/review"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

type ListCoursesInput struct {
	UniversityID string
	CategoryID   string
	Level        string
	Search       string
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// CourseDetail is a course page: the course, its ordered lessons and whether
// the viewer has full access to lesson content.
type CourseDetail struct {
	Course     course.Course
	Lessons    []course.Lesson
	Enrolled   bool
	FullAccess bool
}

// InstructorProfile is the public page of one instructor.
type InstructorProfile struct {
	Profile       user.Profile
	Courses       []course.Course
	TotalCourses  int
	TotalStudents int
	AverageRating float64
}

type CatalogService struct {
	courses     course.Repository
	lessons     course.LessonRepository
	enrollments enrollment.Repository
	users       user.Repository
	reviews     review.Repository
}

func NewCatalogService(
	courses course.Repository,
	lessons course.LessonRepository,
	enrollments enrollment.Repository,
	users user.Repository,
	reviews review.Repository,
) *CatalogService {
	return &CatalogService{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		users:       users,
		reviews:     reviews,
	}
}

func (s *CatalogService) ListUniversities(ctx context.Context) ([]course.University, error) {
	items, err := s.courses.ListUniversities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]course.Category, error) {
	items, err := s.courses.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListCourses(ctx context.Context, input ListCoursesInput) ([]course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCourses")
	defer span.End()

	level := course.Level(strings.TrimSpace(input.Level))
	if level != "" {
		if _, ok := course.AllLevels[level]; !ok {
			return nil, fmt.Errorf("%w: invalid level %q", ErrInvalidInput, input.Level)
		}
	}
	if input.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	items, err := s.courses.List(ctx, course.ListFilter{
		UniversityID: strings.TrimSpace(input.UniversityID),
		CategoryID:   strings.TrimSpace(input.CategoryID),
		Level:        level,
		Search:       strings.TrimSpace(input.Search),
		FeaturedOnly: input.FeaturedOnly,
		Limit:        course.NormalizeLimit(input.Limit),
		Offset:       input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return items, nil
}

// GetCourse loads a course page by slug. Unpublished courses are visible only
// to their instructor and admins; gated lesson content is stripped unless the
// viewer is enrolled or manages the course. viewer is nil for anonymous calls.
func (s *CatalogService) GetCourse(ctx context.Context, slug string, viewer *user.Principal) (CourseDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetCourse")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return CourseDetail{}, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	item, exists, err := s.courses.GetBySlug(ctx, slug)
	if err != nil {
		return CourseDetail{}, fmt.Errorf("get course by slug: %w", err)
	}
	manages := viewer != nil && canManageCourse(*viewer, item)
	if !exists || (!item.IsPublished && !manages) {
		return CourseDetail{}, fmt.Errorf("%w: course not found", ErrNotFound)
	}

	lessons, err := s.lessons.ListByCourse(ctx, item.ID)
	if err != nil {
		return CourseDetail{}, fmt.Errorf("list lessons: %w", err)
	}

	enrolled := false
	if viewer != nil {
		_, enrolled, err = s.enrollments.Get(ctx, viewer.UserID, item.ID)
		if err != nil {
			return CourseDetail{}, fmt.Errorf("get enrollment: %w", err)
		}
	}

	fullAccess := enrolled || manages
	if !fullAccess {
		for i, lesson := range lessons {
			if !lesson.IsFreePreview {
				lessons[i] = lesson.Redacted()
			}
		}
	}

	return CourseDetail{
		Course:     item,
		Lessons:    lessons,
		Enrolled:   enrolled,
		FullAccess: fullAccess,
	}, nil
}

// SearchAutocomplete returns up to course.AutocompleteLimit title matches.
func (s *CatalogService) SearchAutocomplete(ctx context.Context, query, universityID string) ([]course.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []course.Course{}, nil
	}

	items, err := s.courses.Search(ctx, query, strings.TrimSpace(universityID), course.AutocompleteLimit)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListInstructors(ctx context.Context) ([]user.InstructorSummary, error) {
	items, err := s.users.ListInstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return items, nil
}

// GetInstructor returns an instructor with their published courses, newest
// first. Profiles without the instructor role are reported as not found.
func (s *CatalogService) GetInstructor(ctx context.Context, instructorID string) (InstructorProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetInstructor")
	defer span.End()

	instructorID = strings.TrimSpace(instructorID)
	if instructorID == "" {
		return InstructorProfile{}, fmt.Errorf("%w: instructor_id is required", ErrInvalidInput)
	}
	profile, exists, err := s.users.GetByID(ctx, instructorID)
	if err != nil {
		return InstructorProfile{}, fmt.Errorf("get instructor: %w", err)
	}
	if !exists || profile.Role != user.RoleInstructor {
		return InstructorProfile{}, fmt.Errorf("%w: instructor not found", ErrNotFound)
	}

	courses, err := s.courses.List(ctx, course.ListFilter{InstructorID: instructorID, Limit: course.MaxListLimit})
	if err != nil {
		return InstructorProfile{}, fmt.Errorf("list instructor courses: %w", err)
	}
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].CreatedAt.After(courses[j].CreatedAt) })

	out := InstructorProfile{Profile: profile, Courses: courses, TotalCourses: len(courses)}
	ratingSum := 0.0
	rated := 0
	for _, item := range courses {
		out.TotalStudents += item.EnrollmentCount
		if item.AverageRating > 0 {
			ratingSum += item.AverageRating
			rated++
		}
	}
	if rated > 0 {
		out.AverageRating = ratingSum / float64(rated)
	}
	return out, nil
}

func (s *CatalogService) ListReviews(ctx context.Context, courseID string) ([]review.Review, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}

	items, err := s.reviews.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return items, nil
}

// canManageCourse reports whether the principal is the course's instructor or an admin.
func canManageCourse(principal user.Principal, item course.Course) bool {
	if principal.Role.IsAdmin() {
		return true
	}
	return principal.Role.CanInstruct() && item.InstructorID == principal.UserID
}

// publishedCourse loads a course that students can buy or enroll in.
func publishedCourse(ctx context.Context, courses course.Repository, courseID string) (course.Course, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return course.Course{}, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}
	item, exists, err := courses.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, fmt.Errorf("get course: %w", err)
	}
	if !exists || !item.IsPublished {
		return course.Course{}, fmt.Errorf("%w: course not found", ErrNotFound)
	}
	return item, nil
}

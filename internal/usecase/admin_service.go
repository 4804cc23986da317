package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type Analytics struct {
	TotalUsers       int
	Students         int
	Instructors      int
	Admins           int
	TotalCourses     int
	PublishedCourses int
	Enrollments      int
	CompletedRevenue int64
	PendingPayments  int
}

type ListUsersInput struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}

type UniversityInput struct {
	Name        string
	Description string
	City        string
	Country     string
	LogoURL     string
}

type AdminService struct {
	users       user.Repository
	courses     course.Repository
	enrollments enrollment.Repository
	payments    payment.Repository
	ids         id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewAdminService(
	users user.Repository,
	courses course.Repository,
	enrollments enrollment.Repository,
	payments payment.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AdminService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		payments:    payments,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

// Analytics runs the platform-wide counts concurrently; the first failure
// cancels the rest.
func (s *AdminService) Analytics(ctx context.Context) (Analytics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Analytics")
	defer span.End()

	var (
		roles   user.RoleCounts
		counts  course.Counts
		enrolls int
		totals  payment.Totals
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		if roles, err = s.users.CountByRole(ctx); err != nil {
			return fmt.Errorf("count users by role: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if counts, err = s.courses.Counts(ctx); err != nil {
			return fmt.Errorf("count courses: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if enrolls, err = s.enrollments.Count(ctx); err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if totals, err = s.payments.Totals(ctx); err != nil {
			return fmt.Errorf("payment totals: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Analytics{}, err
	}

	return Analytics{
		TotalUsers:       roles.Total(),
		Students:         roles[user.RoleStudent],
		Instructors:      roles[user.RoleInstructor],
		Admins:           roles[user.RoleAdmin],
		TotalCourses:     counts.Total,
		PublishedCourses: counts.Published,
		Enrollments:      enrolls,
		CompletedRevenue: totals.CompletedAmount,
		PendingPayments:  totals.CountByStatus[payment.StatusPending],
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, input ListUsersInput) ([]user.Profile, error) {
	role := user.Role(strings.TrimSpace(input.Role))
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, input.Role)
	}
	if input.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	items, err := s.users.List(ctx, user.ListFilter{
		Role:   role,
		Search: strings.TrimSpace(input.Search),
		Limit:  course.NormalizeLimit(input.Limit),
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, actor user.Principal, userID, role string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdateUserRole")
	defer span.End()

	next := user.Role(strings.TrimSpace(role))
	if !next.Valid() {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}
	userID = strings.TrimSpace(userID)
	if userID == actor.UserID && next != user.RoleAdmin {
		return fmt.Errorf("%w: admins cannot demote themselves", ErrFailedPrecondition)
	}

	ok, err := s.users.UpdateRole(ctx, userID, next)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	s.logger.InfoContext(ctx, "user role updated", "user_id", userID, "role", string(next), "by", actor.UserID)
	return nil
}

func (s *AdminService) ListAllCourses(ctx context.Context, limit, offset int) ([]course.Course, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	items, err := s.courses.List(ctx, course.ListFilter{
		IncludeUnpublished: true,
		Limit:              course.NormalizeLimit(limit),
		Offset:             offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return items, nil
}

func (s *AdminService) SetFeatured(ctx context.Context, courseID string, featured bool) error {
	item, err := s.existingCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SetFeatured(ctx, item.ID, featured); err != nil {
		return fmt.Errorf("set course featured: %w", err)
	}
	return nil
}

func (s *AdminService) SetPublished(ctx context.Context, courseID string, published bool) error {
	item, err := s.existingCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, item.ID, published); err != nil {
		return fmt.Errorf("set course published: %w", err)
	}
	return nil
}

func (s *AdminService) ListCategoriesWithCounts(ctx context.Context) ([]course.Category, error) {
	items, err := s.courses.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *AdminService) CreateCategory(ctx context.Context, input CategoryInput) (course.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return course.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	categoryID, err := s.ids.NewID()
	if err != nil {
		return course.Category{}, fmt.Errorf("generate category id: %w", err)
	}

	item := course.Category{
		ID:          categoryID,
		Name:        name,
		Slug:        course.Slugify(name),
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.courses.CreateCategory(ctx, item); err != nil {
		if errors.Is(err, course.ErrSlugTaken) {
			return course.Category{}, fmt.Errorf("%w: category %s already exists", ErrConflict, item.Slug)
		}
		return course.Category{}, fmt.Errorf("create category: %w", err)
	}
	return item, nil
}

// DeleteCategory removes a category that no course references.
func (s *AdminService) DeleteCategory(ctx context.Context, categoryID string) error {
	categoryID = strings.TrimSpace(categoryID)
	if _, exists, err := s.courses.GetCategoryByID(ctx, categoryID); err != nil {
		return fmt.Errorf("get category: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: category not found", ErrNotFound)
	}

	if err := s.courses.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, course.ErrCategoryInUse) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *AdminService) CreateUniversity(ctx context.Context, input UniversityInput) (course.University, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return course.University{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	universityID, err := s.ids.NewID()
	if err != nil {
		return course.University{}, fmt.Errorf("generate university id: %w", err)
	}

	item := course.University{
		ID:          universityID,
		Name:        name,
		Slug:        course.Slugify(name),
		Description: strings.TrimSpace(input.Description),
		City:        strings.TrimSpace(input.City),
		Country:     strings.TrimSpace(input.Country),
		LogoURL:     strings.TrimSpace(input.LogoURL),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.courses.CreateUniversity(ctx, item); err != nil {
		if errors.Is(err, course.ErrSlugTaken) {
			return course.University{}, fmt.Errorf("%w: university %s already exists", ErrConflict, item.Slug)
		}
		return course.University{}, fmt.Errorf("create university: %w", err)
	}
	return item, nil
}

func (s *AdminService) existingCourse(ctx context.Context, courseID string) (course.Course, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return course.Course{}, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}
	item, exists, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return course.Course{}, fmt.Errorf("%w: course not found", ErrNotFound)
	}
	return item, nil
}

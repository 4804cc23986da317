package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
)

type CourseRepository struct {
	s *Store
}

func NewCourseRepository(s *Store) *CourseRepository {
	return &CourseRepository{s: s}
}

func (r *CourseRepository) ListUniversities(_ context.Context) ([]course.University, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]course.University, 0, len(r.s.universities))
	for _, item := range r.s.universities {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CourseRepository) CreateUniversity(_ context.Context, university course.University) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.universities {
		if existing.Slug == university.Slug {
			return course.ErrSlugTaken
		}
	}
	r.s.universities[university.ID] = university
	return nil
}

func (r *CourseRepository) ListCategories(_ context.Context) ([]course.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, item := range r.s.courses {
		counts[item.CategoryID]++
	}
	out := make([]course.Category, 0, len(r.s.categories))
	for _, item := range r.s.categories {
		item.CourseCount = counts[item.ID]
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CourseRepository) GetCategoryByID(_ context.Context, categoryID string) (course.Category, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.categories[categoryID]
	return item, ok, nil
}

func (r *CourseRepository) CreateCategory(_ context.Context, category course.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Slug == category.Slug {
			return course.ErrSlugTaken
		}
	}
	r.s.categories[category.ID] = category
	return nil
}

func (r *CourseRepository) DeleteCategory(_ context.Context, categoryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range r.s.courses {
		if item.CategoryID == categoryID {
			return course.ErrCategoryInUse
		}
	}
	delete(r.s.categories, categoryID)
	return nil
}

func (r *CourseRepository) List(_ context.Context, filter course.ListFilter) ([]course.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]course.Course, 0)
	for _, item := range r.s.courses {
		if !filter.IncludeUnpublished && !item.IsPublished {
			continue
		}
		if filter.UniversityID != "" && item.UniversityID != filter.UniversityID {
			continue
		}
		if filter.CategoryID != "" && item.CategoryID != filter.CategoryID {
			continue
		}
		if filter.InstructorID != "" && item.InstructorID != filter.InstructorID {
			continue
		}
		if filter.Level != "" && item.Level != filter.Level {
			continue
		}
		if filter.FeaturedOnly && !item.IsFeatured {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Title), search) {
			continue
		}
		out = append(out, r.decorate(item))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFeatured != out[j].IsFeatured {
			return out[i].IsFeatured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *CourseRepository) Search(ctx context.Context, query, universityID string, limit int) ([]course.Course, error) {
	return r.List(ctx, course.ListFilter{UniversityID: universityID, Search: query, Limit: limit})
}

func (r *CourseRepository) GetByID(_ context.Context, courseID string) (course.Course, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.courses[courseID]
	if !ok {
		return course.Course{}, false, nil
	}
	return r.decorate(item), true, nil
}

func (r *CourseRepository) GetBySlug(_ context.Context, slug string) (course.Course, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.courses {
		if item.Slug == slug {
			return r.decorate(item), true, nil
		}
	}
	return course.Course{}, false, nil
}

func (r *CourseRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.courses {
		if item.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *CourseRepository) Create(_ context.Context, item course.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.courses {
		if existing.Slug == item.Slug {
			return course.ErrSlugTaken
		}
	}
	r.s.courses[item.ID] = item
	return nil
}

func (r *CourseRepository) Update(_ context.Context, item course.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.courses[item.ID]
	if !ok {
		return nil
	}
	item.IsPublished = current.IsPublished
	item.IsFeatured = current.IsFeatured
	r.s.courses[item.ID] = item
	return nil
}

func (r *CourseRepository) SoftDelete(_ context.Context, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.courses, courseID)
	return nil
}

func (r *CourseRepository) SetPublished(_ context.Context, courseID string, published bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item, ok := r.s.courses[courseID]; ok {
		item.IsPublished = published
		r.s.courses[courseID] = item
	}
	return nil
}

func (r *CourseRepository) SetFeatured(_ context.Context, courseID string, featured bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item, ok := r.s.courses[courseID]; ok {
		item.IsFeatured = featured
		r.s.courses[courseID] = item
	}
	return nil
}

func (r *CourseRepository) Counts(_ context.Context) (course.Counts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := course.Counts{Total: len(r.s.courses)}
	for _, item := range r.s.courses {
		if item.IsPublished {
			out.Published++
		}
	}
	return out, nil
}

// decorate fills the listing aggregates; the caller holds the lock.
func (r *CourseRepository) decorate(item course.Course) course.Course {
	item.InstructorName = r.s.profiles[item.InstructorID].FullName
	item.CategoryName = r.s.categories[item.CategoryID].Name
	item.UniversityName = r.s.universities[item.UniversityID].Name

	item.EnrollmentCount = 0
	for _, e := range r.s.enrollments {
		if e.CourseID == item.ID {
			item.EnrollmentCount++
		}
	}

	sum, n := 0, 0
	for _, rv := range r.s.reviews {
		if rv.CourseID == item.ID {
			sum += rv.Rating
			n++
		}
	}
	item.AverageRating = 0
	if n > 0 {
		item.AverageRating = float64(sum) / float64(n)
	}
	return item
}

type LessonRepository struct {
	s *Store
}

func NewLessonRepository(s *Store) *LessonRepository {
	return &LessonRepository{s: s}
}

func (r *LessonRepository) ListByCourse(_ context.Context, courseID string) ([]course.Lesson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.lessonsOf(courseID), nil
}

func (r *LessonRepository) GetByID(_ context.Context, lessonID string) (course.Lesson, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.lessons[lessonID]
	return item, ok, nil
}

func (r *LessonRepository) Create(_ context.Context, lesson course.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lessons[lesson.ID] = lesson
	return nil
}

func (r *LessonRepository) Update(_ context.Context, lesson course.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lessons[lesson.ID]; ok {
		r.s.lessons[lesson.ID] = lesson
	}
	return nil
}

func (r *LessonRepository) Delete(_ context.Context, lessonID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.lessons, lessonID)
	for key, p := range r.s.progress {
		if p.LessonID == lessonID {
			delete(r.s.progress, key)
		}
	}
	return nil
}

func (r *LessonRepository) NextPosition(_ context.Context, courseID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	maxPosition := 0
	for _, item := range r.s.lessons {
		if item.CourseID == courseID && item.Position > maxPosition {
			maxPosition = item.Position
		}
	}
	return maxPosition + 1, nil
}

func (r *LessonRepository) Reorder(_ context.Context, courseID string, orderedIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, lessonID := range orderedIDs {
		item, ok := r.s.lessons[lessonID]
		if !ok || item.CourseID != courseID {
			continue
		}
		item.Position = i + 1
		r.s.lessons[lessonID] = item
	}
	return nil
}

// lessonsOf returns a course's lessons by position; the caller holds the lock.
func (s *Store) lessonsOf(courseID string) []course.Lesson {
	out := make([]course.Lesson, 0)
	for _, item := range s.lessons {
		if item.CourseID == courseID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

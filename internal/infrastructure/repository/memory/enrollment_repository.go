package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
)

type EnrollmentRepository struct {
	s *Store
}

func NewEnrollmentRepository(s *Store) *EnrollmentRepository {
	return &EnrollmentRepository{s: s}
}

func (r *EnrollmentRepository) Create(_ context.Context, item enrollment.Enrollment) (enrollment.Enrollment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, created := r.s.enroll(item)
	return r.s.decorateEnrollment(stored), created, nil
}

func (r *EnrollmentRepository) Get(_ context.Context, userID, courseID string) (enrollment.Enrollment, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.enrollments[pairKey(userID, courseID)]
	if !ok {
		return enrollment.Enrollment{}, false, nil
	}
	return r.s.decorateEnrollment(item), true, nil
}

func (r *EnrollmentRepository) ListByUser(_ context.Context, userID string) ([]enrollment.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, item := range r.s.enrollments {
		if item.UserID == userID {
			out = append(out, r.s.decorateEnrollment(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrolledAt.After(out[j].EnrolledAt) })
	return out, nil
}

func (r *EnrollmentRepository) ListByCourses(_ context.Context, courseIDs []string) ([]enrollment.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, item := range r.s.enrollments {
		if slices.Contains(courseIDs, item.CourseID) {
			out = append(out, r.s.decorateEnrollment(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrolledAt.Before(out[j].EnrolledAt) })
	return out, nil
}

func (r *EnrollmentRepository) ListUserIDsByCourse(_ context.Context, courseID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]string, 0)
	for _, item := range r.s.enrollments {
		if item.CourseID == courseID {
			out = append(out, item.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *EnrollmentRepository) ListCompletedLessonIDs(_ context.Context, userID, courseID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]string, 0)
	for _, lesson := range r.s.lessonsOf(courseID) {
		if p, ok := r.s.progress[pairKey(userID, lesson.ID)]; ok && p.IsCompleted {
			out = append(out, lesson.ID)
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) CompleteLesson(_ context.Context, change enrollment.LessonChange) (enrollment.ProgressResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(change.UserID, change.LessonID)
	row, ok := r.s.progress[key]
	if !ok {
		row = enrollment.LessonProgress{
			ID:       change.ProgressID,
			UserID:   change.UserID,
			LessonID: change.LessonID,
			CourseID: change.CourseID,
		}
	}
	at := change.At
	row.IsCompleted = true
	row.CompletedAt = &at
	row.LastWatchedAt = at
	r.s.progress[key] = row

	return r.s.recompute(change)
}

func (r *EnrollmentRepository) UncompleteLesson(_ context.Context, change enrollment.LessonChange) (enrollment.ProgressResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.progress, pairKey(change.UserID, change.LessonID))
	return r.s.recompute(change)
}

func (r *EnrollmentRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.enrollments), nil
}

// enroll inserts unless the pair exists; the caller holds the write lock.
func (s *Store) enroll(item enrollment.Enrollment) (enrollment.Enrollment, bool) {
	key := pairKey(item.UserID, item.CourseID)
	if existing, ok := s.enrollments[key]; ok {
		return existing, false
	}
	s.enrollments[key] = item
	return item, true
}

func (s *Store) recompute(change enrollment.LessonChange) (enrollment.ProgressResult, error) {
	key := pairKey(change.UserID, change.CourseID)
	item, ok := s.enrollments[key]
	if !ok {
		return enrollment.ProgressResult{}, fmt.Errorf("enrollment for user %s course %s not found", change.UserID, change.CourseID)
	}

	lessons := s.lessonsOf(change.CourseID)
	completed := 0
	for _, lesson := range lessons {
		if p, ok := s.progress[pairKey(change.UserID, lesson.ID)]; ok && p.IsCompleted {
			completed++
		}
	}

	wasCompleted := item.IsCompleted()
	item.ProgressPercentage = enrollment.Percentage(completed, len(lessons))
	switch {
	case item.ProgressPercentage == 100 && !wasCompleted:
		at := change.At
		item.CompletedAt = &at
	case item.ProgressPercentage < 100:
		item.CompletedAt = nil
	}
	s.enrollments[key] = item

	return enrollment.ProgressResult{
		Enrollment:       s.decorateEnrollment(item),
		CompletedLessons: completed,
		TotalLessons:     len(lessons),
		JustCompleted:    !wasCompleted && item.IsCompleted(),
	}, nil
}

func (s *Store) decorateEnrollment(item enrollment.Enrollment) enrollment.Enrollment {
	c := s.courses[item.CourseID]
	item.CourseTitle = c.Title
	item.CourseSlug = c.Slug
	item.CourseThumbnailURL = c.ThumbnailURL
	return item
}

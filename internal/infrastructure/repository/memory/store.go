package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
	"github.com/riskibarqy/course-marketplace/internal/domain/review"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
)

// Store holds every aggregate behind one lock so multi-aggregate writes
// (payment approval, checkout with a coupon, device registration) are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	profiles      map[string]user.Profile
	universities  map[string]course.University
	categories    map[string]course.Category
	courses       map[string]course.Course
	lessons       map[string]course.Lesson
	enrollments   map[string]enrollment.Enrollment
	progress      map[string]enrollment.LessonProgress
	certificates  map[string]certificate.Certificate
	payments      map[string]payment.Payment
	coupons       map[string]coupon.Coupon
	redemptions   map[string]coupon.Redemption
	reviews       map[string]review.Review
	wishlist      map[string]wishlist.Item
	quizzes       map[string]quiz.Quiz
	questions     map[string]quiz.Question
	attempts      map[string]quiz.Attempt
	notifications map[string]notification.Notification
	devices       map[string]device.Device
	sessions      map[string]device.Session
	violations    map[string]device.Violation
}

func NewStore() *Store {
	return &Store{
		now:           time.Now,
		profiles:      make(map[string]user.Profile),
		universities:  make(map[string]course.University),
		categories:    make(map[string]course.Category),
		courses:       make(map[string]course.Course),
		lessons:       make(map[string]course.Lesson),
		enrollments:   make(map[string]enrollment.Enrollment),
		progress:      make(map[string]enrollment.LessonProgress),
		certificates:  make(map[string]certificate.Certificate),
		payments:      make(map[string]payment.Payment),
		coupons:       make(map[string]coupon.Coupon),
		redemptions:   make(map[string]coupon.Redemption),
		reviews:       make(map[string]review.Review),
		wishlist:      make(map[string]wishlist.Item),
		quizzes:       make(map[string]quiz.Quiz),
		questions:     make(map[string]quiz.Question),
		attempts:      make(map[string]quiz.Attempt),
		notifications: make(map[string]notification.Notification),
		devices:       make(map[string]device.Device),
		sessions:      make(map[string]device.Session),
		violations:    make(map[string]device.Violation),
	}
}

func pairKey(a, b string) string {
	return a + "::" + b
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// SetClock replaces the clock used for timestamps the store assigns itself.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

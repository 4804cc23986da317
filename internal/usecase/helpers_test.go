package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
)

var (
	fixedNow       = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	seedUniversity = memory.SeedUniversities()[0].ID
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type sequenceIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1)), nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// pipeTokens encodes the principal in the token itself.
type pipeTokens struct{}

func (pipeTokens) Issue(principal user.Principal, _ time.Time) (string, error) {
	return strings.Join([]string{principal.UserID, principal.SessionID, principal.DeviceID}, "|"), nil
}

func (pipeTokens) Parse(token string) (user.Principal, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return user.Principal{}, errors.New("malformed token")
	}
	return user.Principal{UserID: parts[0], SessionID: parts[1], DeviceID: parts[2]}, nil
}

type recordingStorage struct {
	mu      sync.Mutex
	uploads []ObjectUpload
	err     error
}

func (s *recordingStorage) Upload(_ context.Context, object ObjectUpload) (StoredObject, error) {
	if s.err != nil {
		return StoredObject{}, s.err
	}
	body, err := io.ReadAll(object.Body)
	if err != nil {
		return StoredObject{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	object.Body = bytes.NewReader(body)
	s.uploads = append(s.uploads, object)
	return StoredObject{
		URL:         "https://cdn.test/" + object.Bucket + "/" + object.Key,
		Path:        object.Key,
		Size:        int64(len(body)),
		ContentType: object.ContentType,
	}, nil
}

// marketplace wires every service over one seeded in-memory store.
type marketplace struct {
	store   *memory.Store
	storage *recordingStorage

	users         *memory.UserRepository
	courses       *memory.CourseRepository
	lessons       *memory.LessonRepository
	enrollments   *memory.EnrollmentRepository
	certificates  *memory.CertificateRepository
	payments      *memory.PaymentRepository
	coupons       *memory.CouponRepository
	notifications *memory.NotificationRepository
	devices       *memory.DeviceRepository
	quizzes       *memory.QuizRepository
	wishlist      *memory.WishlistRepository

	notifier     *NotificationService
	deviceSvc    *DeviceService
	auth         *AuthService
	certSvc      *CertificateService
	enrollSvc    *EnrollmentService
	couponSvc    *CouponService
	uploadSvc    *UploadService
	paymentSvc   *PaymentService
	quizSvc      *QuizService
	adminSvc     *AdminService
	dashboardSvc *DashboardService
}

func newMarketplace(t *testing.T) *marketplace {
	t.Helper()

	store := memory.NewStore()
	store.Seed()
	store.SetClock(func() time.Time { return fixedNow })

	ids := &sequenceIDs{prefix: "id"}
	m := &marketplace{
		store:         store,
		storage:       &recordingStorage{},
		users:         memory.NewUserRepository(store),
		courses:       memory.NewCourseRepository(store),
		lessons:       memory.NewLessonRepository(store),
		enrollments:   memory.NewEnrollmentRepository(store),
		certificates:  memory.NewCertificateRepository(store),
		payments:      memory.NewPaymentRepository(store),
		coupons:       memory.NewCouponRepository(store),
		notifications: memory.NewNotificationRepository(store),
		devices:       memory.NewDeviceRepository(store),
		quizzes:       memory.NewQuizRepository(store),
		wishlist:      memory.NewWishlistRepository(store),
	}
	clock := func() time.Time { return fixedNow }

	m.notifier = NewNotificationService(m.notifications, ids, 4, nil)
	m.notifier.now = clock
	m.deviceSvc = NewDeviceService(m.devices, device.DefaultPolicy(), ids, &sequenceIDs{prefix: "tok"}, nil)
	m.deviceSvc.now = clock
	m.auth = NewAuthService(m.users, m.deviceSvc, plainHasher{}, pipeTokens{}, ids, time.Hour, nil)
	m.auth.now = clock
	m.certSvc = NewCertificateService(m.certificates, m.enrollments, ids)
	m.certSvc.now = clock
	m.enrollSvc = NewEnrollmentService(m.courses, m.lessons, m.enrollments, m.certSvc, m.notifier, ids, nil)
	m.enrollSvc.now = clock
	m.couponSvc = NewCouponService(m.coupons, m.courses, ids)
	m.couponSvc.now = clock
	m.uploadSvc = NewUploadService(m.storage, UploadConfig{
		VideoBucket:        "course-videos",
		PDFBucket:          "course-pdfs",
		ScreenshotBucket:   "payment-screenshots",
		MaxVideoBytes:      1 << 20,
		MaxPDFBytes:        1 << 20,
		MaxScreenshotBytes: 1 << 10,
	})
	m.uploadSvc.now = clock
	m.paymentSvc = NewPaymentService(m.payments, m.courses, m.enrollments, m.users, m.couponSvc, m.uploadSvc, m.notifier, ids, nil)
	m.paymentSvc.now = clock
	m.quizSvc = NewQuizService(m.quizzes, m.courses, m.lessons, m.enrollments, ids)
	m.quizSvc.now = clock
	m.adminSvc = NewAdminService(m.users, m.courses, m.enrollments, m.payments, ids, nil)
	m.adminSvc.now = clock
	m.dashboardSvc = NewDashboardService(m.enrollments, m.certificates, m.notifications, m.wishlist)
	return m
}

func (m *marketplace) addProfile(t *testing.T, id string, role user.Role) user.Profile {
	t.Helper()

	profile := user.Profile{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "hashed:secret-password",
		FullName:     "User " + id,
		Role:         role,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
	if err := m.users.Create(t.Context(), profile); err != nil {
		t.Fatalf("create profile %s: %v", id, err)
	}
	return profile
}

// addCourse stores a published course with the given number of video lessons.
func (m *marketplace) addCourse(t *testing.T, id, instructorID string, price int64, lessonCount int) (course.Course, []course.Lesson) {
	t.Helper()

	item := course.Course{
		ID:           id,
		Title:        "Course " + id,
		Slug:         course.Slugify("Course " + id),
		Price:        price,
		InstructorID: instructorID,
		UniversityID: seedUniversity,
		Level:        course.Level1st,
		Language:     "English",
		IsPublished:  true,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
	if err := m.courses.Create(t.Context(), item); err != nil {
		t.Fatalf("create course %s: %v", id, err)
	}

	lessons := make([]course.Lesson, 0, lessonCount)
	for i := 1; i <= lessonCount; i++ {
		lesson := course.Lesson{
			ID:          fmt.Sprintf("%s-lesson-%d", id, i),
			CourseID:    id,
			Title:       fmt.Sprintf("Lesson %d", i),
			ContentType: course.ContentVideo,
			Position:    i,
			CreatedAt:   fixedNow,
			UpdatedAt:   fixedNow,
		}
		if err := m.lessons.Create(t.Context(), lesson); err != nil {
			t.Fatalf("create lesson %s: %v", lesson.ID, err)
		}
		lessons = append(lessons, lesson)
	}
	return item, lessons
}

func student(id string) user.Principal {
	return user.Principal{UserID: id, Role: user.RoleStudent}
}

func instructor(id string) user.Principal {
	return user.Principal{UserID: id, Role: user.RoleInstructor}
}

func admin(id string) user.Principal {
	return user.Principal{UserID: id, Role: user.RoleAdmin}
}

package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/auth/password"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/auth/token"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Error      *googleErrorBody `json:"error"`

	raw []byte
}

func decodeData[T any](t *testing.T, body envelope) T {
	t.Helper()

	var out struct {
		Data T `json:"data"`
	}
	if err := sonic.Unmarshal(body.raw, &out); err != nil {
		t.Fatalf("decode data %q: %v", body.raw, err)
	}
	return out.Data
}

type discardStorage struct{}

func (discardStorage) Upload(_ context.Context, object usecase.ObjectUpload) (usecase.StoredObject, error) {
	n, err := io.Copy(io.Discard, object.Body)
	if err != nil {
		return usecase.StoredObject{}, err
	}
	return usecase.StoredObject{
		URL:         "https://cdn.test/" + object.Bucket + "/" + object.Key,
		Path:        object.Key,
		Size:        n,
		ContentType: object.ContentType,
	}, nil
}

type testAPI struct {
	server  *httptest.Server
	users   *memory.UserRepository
	courses *memory.CourseRepository
	lessons *memory.LessonRepository
	hasher  *password.Hasher
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	store.Seed()
	logger := logging.NewNop()
	ids := id.NewUUIDGenerator()

	users := memory.NewUserRepository(store)
	courses := memory.NewCourseRepository(store)
	lessons := memory.NewLessonRepository(store)
	enrollments := memory.NewEnrollmentRepository(store)
	payments := memory.NewPaymentRepository(store)
	hasher := password.NewHasher(4)
	tokens, err := token.NewManager("test-secret", "course-marketplace-test")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	notifier := usecase.NewNotificationService(memory.NewNotificationRepository(store), ids, 2, logger)
	devices := usecase.NewDeviceService(memory.NewDeviceRepository(store), device.DefaultPolicy(), ids, id.NewTokenGenerator(), logger)
	auth := usecase.NewAuthService(users, devices, hasher, tokens, ids, time.Hour, logger)
	certificates := usecase.NewCertificateService(memory.NewCertificateRepository(store), enrollments, ids)
	coupons := usecase.NewCouponService(memory.NewCouponRepository(store), courses, ids)
	uploads := usecase.NewUploadService(discardStorage{}, usecase.UploadConfig{
		VideoBucket:        "lesson-videos",
		PDFBucket:          "lesson-pdfs",
		ScreenshotBucket:   "payment-screenshots",
		MaxVideoBytes:      1 << 20,
		MaxPDFBytes:        1 << 20,
		MaxScreenshotBytes: 1 << 20,
	})
	reviews := memory.NewReviewRepository(store)

	handler := NewHandler(Services{
		Auth:          auth,
		Profile:       usecase.NewProfileService(users),
		Catalog:       usecase.NewCatalogService(courses, lessons, enrollments, users, reviews),
		Enrollment:    usecase.NewEnrollmentService(courses, lessons, enrollments, certificates, notifier, ids, logger),
		Certificates:  certificates,
		Payments:      usecase.NewPaymentService(payments, courses, enrollments, users, coupons, uploads, notifier, ids, logger),
		Coupons:       coupons,
		Quizzes:       usecase.NewQuizService(memory.NewQuizRepository(store), courses, lessons, enrollments, ids),
		Reviews:       usecase.NewReviewService(reviews, enrollments, ids),
		Wishlist:      usecase.NewWishlistService(memory.NewWishlistRepository(store), courses, ids),
		Notifications: notifier,
		Devices:       devices,
		Instructor:    usecase.NewInstructorService(courses, lessons, enrollments, payments, users, notifier, ids, logger),
		Uploads:       uploads,
		Admin:         usecase.NewAdminService(users, courses, enrollments, payments, ids, logger),
		Dashboard:     usecase.NewDashboardService(enrollments, memory.NewCertificateRepository(store), memory.NewNotificationRepository(store), memory.NewWishlistRepository(store)),
	}, logger)

	server := httptest.NewServer(NewRouter(handler, auth, logger, true, []string{"*"}))
	t.Cleanup(server.Close)

	return &testAPI{server: server, users: users, courses: courses, lessons: lessons, hasher: hasher}
}

func (a *testAPI) addUser(t *testing.T, id string, role user.Role) {
	t.Helper()

	hash, err := a.hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	if err := a.users.Create(t.Context(), user.Profile{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: hash,
		FullName:     "User " + id,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
}

func (a *testAPI) addCourse(t *testing.T, id, instructorID string, price int64) course.Course {
	t.Helper()

	now := time.Now().UTC()
	item := course.Course{
		ID:           id,
		Title:        "Course " + id,
		Slug:         course.Slugify("Course " + id),
		Price:        price,
		InstructorID: instructorID,
		UniversityID: memory.SeedUniversities()[0].ID,
		Level:        course.Level1st,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.courses.Create(t.Context(), item); err != nil {
		t.Fatalf("create course: %v", err)
	}
	for i, preview := range []bool{true, false} {
		lesson := course.Lesson{
			ID:            fmt.Sprintf("%s-lesson-%d", id, i+1),
			CourseID:      id,
			Title:         "Lesson",
			ContentType:   course.ContentVideo,
			VideoURL:      "https://cdn.test/video.mp4",
			Position:      i + 1,
			IsFreePreview: preview,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := a.lessons.Create(t.Context(), lesson); err != nil {
			t.Fatalf("create lesson: %v", err)
		}
	}
	return item
}

func (a *testAPI) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, a.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := envelope{raw: raw}
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s body %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, out
}

func (a *testAPI) doJSON(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return a.do(t, method, path, token, reader, "application/json")
}

func (a *testAPI) login(t *testing.T, email, deviceName string) string {
	t.Helper()

	status, body := a.doJSON(t, http.MethodPost, "/v1/auth/login", "",
		`{"email":"`+email+`","password":"secret-password","device_name":"`+deviceName+`","device_type":"web"}`)
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d error %+v", email, status, body.Error)
	}
	return decodeData[loginDTO](t, body).AccessToken
}

func TestRouter_RegisterLoginAndProfile(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	status, body := api.doJSON(t, http.MethodPost, "/v1/auth/register", "",
		`{"email":"Nour@Example.com","password":"secret-password","full_name":"Nour Hassan"}`)
	if status != http.StatusCreated {
		t.Fatalf("register: status %d error %+v", status, body.Error)
	}

	status, body = api.doJSON(t, http.MethodPost, "/v1/auth/register", "",
		`{"email":"nour@example.com","password":"secret-password","full_name":"Again"}`)
	if status != http.StatusConflict || body.Error.Status != "ALREADY_EXISTS" {
		t.Fatalf("expected 409 ALREADY_EXISTS for duplicate email, got %d %+v", status, body.Error)
	}

	if status, _ := api.doJSON(t, http.MethodGet, "/v1/me", "", ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	accessToken := api.login(t, "nour@example.com", "laptop")
	status, body = api.doJSON(t, http.MethodGet, "/v1/me", accessToken, "")
	if status != http.StatusOK {
		t.Fatalf("get me: status %d error %+v", status, body.Error)
	}
	me := decodeData[profileDTO](t, body)
	if me.Email != "nour@example.com" || me.Role != "student" {
		t.Fatalf("unexpected profile: %+v", me)
	}

	if status, _ := api.doJSON(t, http.MethodPost, "/v1/auth/logout", accessToken, ""); status != http.StatusOK {
		t.Fatalf("logout: status %d", status)
	}
	if status, _ := api.doJSON(t, http.MethodGet, "/v1/me", accessToken, ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}

func TestRouter_RoleGating(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.addUser(t, "stu", user.RoleStudent)
	api.addUser(t, "ins", user.RoleInstructor)
	api.addUser(t, "boss", user.RoleAdmin)

	studentToken := api.login(t, "stu@example.com", "phone")
	instructorToken := api.login(t, "ins@example.com", "phone")
	adminToken := api.login(t, "boss@example.com", "phone")

	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{name: "anonymous admin", path: "/v1/admin/analytics", status: http.StatusUnauthorized},
		{name: "student admin", path: "/v1/admin/analytics", token: studentToken, status: http.StatusForbidden},
		{name: "instructor admin", path: "/v1/admin/analytics", token: instructorToken, status: http.StatusForbidden},
		{name: "admin admin", path: "/v1/admin/analytics", token: adminToken, status: http.StatusOK},
		{name: "student instructor", path: "/v1/instructor/courses", token: studentToken, status: http.StatusForbidden},
		{name: "instructor instructor", path: "/v1/instructor/courses", token: instructorToken, status: http.StatusOK},
		{name: "admin instructor", path: "/v1/instructor/courses", token: adminToken, status: http.StatusOK},
	}
	for _, tc := range cases {
		status, body := api.doJSON(t, http.MethodGet, tc.path, tc.token, "")
		if status != tc.status {
			t.Fatalf("%s: expected %d, got %d (%+v)", tc.name, tc.status, status, body.Error)
		}
	}
}

func TestRouter_EnrollAndCourseVisibility(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.addUser(t, "ins", user.RoleInstructor)
	api.addUser(t, "stu", user.RoleStudent)
	free := api.addCourse(t, "free", "ins", 0)
	paid := api.addCourse(t, "paid", "ins", 15000)
	studentToken := api.login(t, "stu@example.com", "laptop")

	status, body := api.doJSON(t, http.MethodPost, "/v1/courses/"+paid.ID+"/enroll", studentToken, "")
	if status != http.StatusPaymentRequired || body.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("expected 402 FAILED_PRECONDITION for paid course, got %d %+v", status, body.Error)
	}

	visibleVideos := func(token string) int {
		t.Helper()
		status, body := api.doJSON(t, http.MethodGet, "/v1/courses/"+free.Slug, token, "")
		if status != http.StatusOK {
			t.Fatalf("get course: status %d error %+v", status, body.Error)
		}
		detail := decodeData[courseDetailDTO](t, body)
		n := 0
		for _, lesson := range detail.Lessons {
			if lesson.VideoURL != "" {
				n++
			}
		}
		return n
	}

	if got := visibleVideos(""); got != 1 {
		t.Fatalf("anonymous viewer should see only the preview lesson, saw %d", got)
	}
	if got := visibleVideos("not-a-token"); got != 1 {
		t.Fatalf("invalid token should fall back to anonymous view, saw %d", got)
	}

	if status, body := api.doJSON(t, http.MethodPost, "/v1/courses/"+free.ID+"/enroll", studentToken, ""); status != http.StatusOK {
		t.Fatalf("enroll free course: status %d error %+v", status, body.Error)
	}
	if got := visibleVideos(studentToken); got != 2 {
		t.Fatalf("enrolled viewer should see every lesson, saw %d", got)
	}
}

func TestRouter_CardCheckout(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.addUser(t, "ins", user.RoleInstructor)
	api.addUser(t, "stu", user.RoleStudent)
	paid := api.addCourse(t, "paid", "ins", 15000)
	studentToken := api.login(t, "stu@example.com", "laptop")

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	fields := map[string]string{
		"payment_method":  "card",
		"cardholder_name": "Nour Hassan",
		"card_number":     "4242424242424242",
		"card_expiry":     "12/35",
		"card_cvv":        "123",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	status, body := api.do(t, http.MethodPost, "/v1/courses/"+paid.ID+"/checkout", studentToken, &form, writer.FormDataContentType())
	if status != http.StatusCreated {
		t.Fatalf("checkout: status %d error %+v", status, body.Error)
	}
	record := decodeData[paymentDTO](t, body)
	if record.Status != "pending" || record.CardLast4 != "4242" || record.Amount != 15000 {
		t.Fatalf("unexpected payment: %+v", record)
	}
	if !strings.HasPrefix(record.TransactionID, "visa-") {
		t.Fatalf("unexpected transaction id: %s", record.TransactionID)
	}

	status, body = api.do(t, http.MethodPost, "/v1/courses/"+paid.ID+"/checkout", studentToken,
		strings.NewReader("payment_method=instapay"), "application/x-www-form-urlencoded")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-multipart checkout, got %d %+v", status, body.Error)
	}
}

func TestRouter_RejectsUnknownJSONFields(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	status, body := api.doJSON(t, http.MethodPost, "/v1/auth/register", "",
		`{"email":"a@example.com","password":"secret-password","full_name":"A","role":"admin"}`)
	if status != http.StatusBadRequest || body.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected 400 for unknown field, got %d %+v", status, body.Error)
	}

	status, _ = api.doJSON(t, http.MethodPost, "/v1/auth/register", "", "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", status)
	}
}

func TestRouter_HealthAndDocs(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	if status, _ := api.doJSON(t, http.MethodGet, "/healthz", "", ""); status != http.StatusOK {
		t.Fatalf("healthz: status %d", status)
	}

	resp, err := api.server.Client().Get(api.server.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("get openapi: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("openapi: status %d", resp.StatusCode)
	}
}

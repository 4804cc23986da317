package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
)

func newInstructorService(m *marketplace) *InstructorService {
	svc := NewInstructorService(m.courses, m.lessons, m.enrollments, m.payments, m.users, m.notifier, &sequenceIDs{prefix: "ins"}, nil)
	svc.now = m.enrollSvc.now
	return svc
}

func newCatalogService(m *marketplace) *CatalogService {
	return NewCatalogService(m.courses, m.lessons, m.enrollments, m.users, memory.NewReviewRepository(m.store))
}

func TestInstructorService_CourseAuthoring(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "rival", user.RoleInstructor)
	svc := newInstructorService(m)

	input := CourseInput{
		Title:        "Data Structures 101",
		Price:        15000,
		UniversityID: seedUniversity,
		Level:        "2nd",
		Language:     "Arabic",
	}
	first, err := svc.CreateCourse(ctx, instructor("ins"), input)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if first.Slug != "data-structures-101" || first.IsPublished {
		t.Fatalf("unexpected course: slug=%s published=%v", first.Slug, first.IsPublished)
	}
	second, err := svc.CreateCourse(ctx, instructor("ins"), input)
	if err != nil {
		t.Fatalf("create duplicate title: %v", err)
	}
	if second.Slug != "data-structures-101-2" {
		t.Fatalf("expected suffixed slug, got %s", second.Slug)
	}

	bad := input
	bad.Level = "9th"
	if _, err := svc.CreateCourse(ctx, instructor("ins"), bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad level, got %v", err)
	}

	input.Title = "Data Structures Revised"
	updated, err := svc.UpdateCourse(ctx, instructor("ins"), first.ID, input)
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if updated.Slug != first.Slug {
		t.Fatalf("slug changed on update: %s", updated.Slug)
	}
	if _, err := svc.UpdateCourse(ctx, instructor("rival"), first.ID, input); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign instructor, got %v", err)
	}
	if _, err := svc.UpdateCourse(ctx, admin("root"), first.ID, input); err != nil {
		t.Fatalf("admin update: %v", err)
	}

	mine, err := svc.ListMyCourses(ctx, instructor("ins"))
	if err != nil {
		t.Fatalf("list my courses: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 own courses including drafts, got %d", len(mine))
	}

	if err := svc.DeleteCourse(ctx, instructor("ins"), second.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	if err := svc.DeleteCourse(ctx, instructor("ins"), second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestInstructorService_LessonsAndAnnouncements(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	svc := newInstructorService(m)
	item, existing := m.addCourse(t, "algo", "ins", 0, 2)
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	added, err := svc.AddLesson(ctx, instructor("ins"), item.ID, LessonInput{Title: "Heaps", ContentType: "text", TextContent: "..."})
	if err != nil {
		t.Fatalf("add lesson: %v", err)
	}
	if added.Position != 3 {
		t.Fatalf("expected appended position 3, got %d", added.Position)
	}
	if _, err := svc.AddLesson(ctx, instructor("ins"), item.ID, LessonInput{Title: "Bad", ContentType: "hologram"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for content type, got %v", err)
	}

	unread, err := m.notifier.UnreadCount(ctx, "stu")
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	// enrollment confirmation plus the new lesson announcement
	if unread != 2 {
		t.Fatalf("expected 2 notifications for enrolled student, got %d", unread)
	}

	order := []string{added.ID, existing[1].ID, existing[0].ID}
	reordered, err := svc.ReorderLessons(ctx, instructor("ins"), item.ID, order)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for i, lesson := range reordered {
		if lesson.ID != order[i] || lesson.Position != i+1 {
			t.Fatalf("position %d: got %s@%d", i, lesson.ID, lesson.Position)
		}
	}
	if _, err := svc.ReorderLessons(ctx, instructor("ins"), item.ID, order[:2]); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for partial order, got %v", err)
	}
	if _, err := svc.ReorderLessons(ctx, instructor("ins"), item.ID, []string{added.ID, added.ID, existing[0].ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}

	if err := svc.DeleteLesson(ctx, instructor("ins"), added.ID); err != nil {
		t.Fatalf("delete lesson: %v", err)
	}
}

func TestInstructorService_Dashboard(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	svc := newInstructorService(m)
	paid, _ := m.addCourse(t, "paid", "ins", 20000, 1)
	m.addCourse(t, "free", "ins", 0, 1)

	record, err := m.paymentSvc.Checkout(ctx, CheckoutInput{UserID: "stu", CourseID: paid.ID, Method: "card", Card: validCard()})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := m.paymentSvc.Approve(ctx, record.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	m.addProfile(t, "waiting", user.RoleStudent)
	if _, err := m.paymentSvc.Checkout(ctx, CheckoutInput{UserID: "waiting", CourseID: paid.ID, Method: "card", Card: validCard()}); err != nil {
		t.Fatalf("pending checkout: %v", err)
	}

	got, err := svc.Dashboard(ctx, instructor("ins"))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got.TotalCourses != 2 || got.PublishedCourses != 2 {
		t.Fatalf("unexpected course counts: %+v", got)
	}
	if got.TotalEnrollments != 1 || got.TotalRevenue != 20000 {
		t.Fatalf("unexpected totals: enrollments=%d revenue=%d", got.TotalEnrollments, got.TotalRevenue)
	}
	if got.PendingRevenue != 20000 || got.Courses[0].PendingRevenue+got.Courses[1].PendingRevenue != 20000 {
		t.Fatalf("expected pending revenue 20000, got %+v", got)
	}
}

func TestInstructorService_ListStudents(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "rival", user.RoleInstructor)
	for _, id := range []string{"stu1", "stu2", "stu3"} {
		m.addProfile(t, id, user.RoleStudent)
	}
	algebra, _ := m.addCourse(t, "algebra", "ins", 0, 1)
	physics, _ := m.addCourse(t, "physics", "ins", 0, 1)
	chemistry, _ := m.addCourse(t, "chemistry", "rival", 0, 1)

	enrollments := []struct{ userID, courseID string }{
		{"stu1", algebra.ID},
		{"stu1", physics.ID},
		{"stu2", algebra.ID},
		{"stu3", chemistry.ID},
	}
	for _, e := range enrollments {
		if _, err := m.enrollSvc.Enroll(ctx, e.userID, e.courseID); err != nil {
			t.Fatalf("enroll %s in %s: %v", e.userID, e.courseID, err)
		}
	}
	svc := newInstructorService(m)

	students, err := svc.ListStudents(ctx, instructor("ins"), "")
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 2 || students[0].Profile.ID != "stu1" || students[1].Profile.ID != "stu2" {
		t.Fatalf("expected stu1 and stu2 only, got %+v", students)
	}
	if len(students[0].CourseIDs) != 2 || !students[0].FirstEnrolledAt.Equal(fixedNow) {
		t.Fatalf("expected stu1 in both courses since %s, got %+v", fixedNow, students[0])
	}

	filtered, err := svc.ListStudents(ctx, instructor("ins"), "  STU2@example ")
	if err != nil {
		t.Fatalf("search students: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Profile.ID != "stu2" {
		t.Fatalf("expected search to match stu2 by email, got %+v", filtered)
	}

	none, err := svc.ListStudents(ctx, instructor("stu3"), "")
	if err != nil {
		t.Fatalf("list students without courses: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no students, got %+v", none)
	}
}

func TestCatalogService_GetInstructor(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	live, _ := m.addCourse(t, "live", "ins", 0, 1)
	draft := course.Course{
		ID:           "draft",
		Title:        "Draft course",
		Slug:         "draft-course",
		InstructorID: "ins",
		UniversityID: seedUniversity,
		Level:        course.Level1st,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
	if err := m.courses.Create(ctx, draft); err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", live.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	svc := newCatalogService(m)

	got, err := svc.GetInstructor(ctx, "ins")
	if err != nil {
		t.Fatalf("get instructor: %v", err)
	}
	if got.Profile.ID != "ins" || got.TotalCourses != 1 || len(got.Courses) != 1 || got.Courses[0].ID != live.ID {
		t.Fatalf("expected only the published course, got %+v", got)
	}
	if got.TotalStudents != 1 {
		t.Fatalf("expected one student, got %d", got.TotalStudents)
	}

	for _, id := range []string{"stu", "missing"} {
		if _, err := svc.GetInstructor(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %s, got %v", id, err)
		}
	}
}

func TestCatalogService_GetCourseGatesContent(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	catalog := newCatalogService(m)
	item, lessons := m.addCourse(t, "gated", "ins", 0, 2)

	for i, lesson := range lessons {
		lesson.VideoURL = "https://cdn.test/" + lesson.ID + ".mp4"
		lesson.IsFreePreview = i == 0
		if err := m.lessons.Update(ctx, lesson); err != nil {
			t.Fatalf("update lesson: %v", err)
		}
	}

	anonymous, err := catalog.GetCourse(ctx, item.Slug, nil)
	if err != nil {
		t.Fatalf("get course anonymously: %v", err)
	}
	if anonymous.FullAccess || anonymous.Lessons[0].VideoURL == "" || anonymous.Lessons[1].VideoURL != "" {
		t.Fatalf("unexpected anonymous view: %+v", anonymous.Lessons)
	}

	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	viewer := student("stu")
	enrolled, err := catalog.GetCourse(ctx, item.Slug, &viewer)
	if err != nil {
		t.Fatalf("get course enrolled: %v", err)
	}
	if !enrolled.FullAccess || enrolled.Lessons[1].VideoURL == "" {
		t.Fatalf("expected full access for enrolled student")
	}

	if err := m.courses.SetPublished(ctx, item.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := catalog.GetCourse(ctx, item.Slug, &viewer); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpublished course, got %v", err)
	}
	owner := instructor("ins")
	if _, err := catalog.GetCourse(ctx, item.Slug, &owner); err != nil {
		t.Fatalf("owner should see draft: %v", err)
	}
}

func TestCatalogService_ListCoursesValidation(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	catalog := newCatalogService(m)
	if _, err := catalog.ListCourses(t.Context(), ListCoursesInput{Level: "graduate"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown level, got %v", err)
	}
	got, err := catalog.SearchAutocomplete(t.Context(), "   ", "")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty autocomplete for blank query, got %v %v", got, err)
	}
}

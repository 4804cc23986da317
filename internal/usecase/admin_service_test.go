package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestAdminService_Analytics(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "boss", user.RoleAdmin)
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "s1", user.RoleStudent)
	m.addProfile(t, "s2", user.RoleStudent)
	free, _ := m.addCourse(t, "free", "ins", 0, 1)
	paid, _ := m.addCourse(t, "paid", "ins", 25000, 1)
	draft, _ := m.addCourse(t, "draft", "ins", 0, 1)
	if err := m.adminSvc.SetPublished(ctx, draft.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	if _, err := m.enrollSvc.Enroll(ctx, "s1", free.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	approved, err := m.paymentSvc.Checkout(ctx, CheckoutInput{UserID: "s1", CourseID: paid.ID, Method: "card", Card: validCard()})
	if err != nil {
		t.Fatalf("checkout s1: %v", err)
	}
	if _, err := m.paymentSvc.Approve(ctx, approved.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := m.paymentSvc.Checkout(ctx, CheckoutInput{UserID: "s2", CourseID: paid.ID, Method: "card", Card: validCard()}); err != nil {
		t.Fatalf("checkout s2: %v", err)
	}

	got, err := m.adminSvc.Analytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	want := Analytics{
		TotalUsers:       4,
		Students:         2,
		Instructors:      1,
		Admins:           1,
		TotalCourses:     3,
		PublishedCourses: 2,
		Enrollments:      2,
		CompletedRevenue: 25000,
		PendingPayments:  1,
	}
	if got != want {
		t.Fatalf("unexpected analytics:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "boss", user.RoleAdmin)
	m.addProfile(t, "stu", user.RoleStudent)

	if err := m.adminSvc.UpdateUserRole(ctx, admin("boss"), "boss", "student"); !errors.Is(err, ErrFailedPrecondition) {
		t.Fatalf("expected ErrFailedPrecondition for self demotion, got %v", err)
	}
	if err := m.adminSvc.UpdateUserRole(ctx, admin("boss"), "stu", "overlord"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
	if err := m.adminSvc.UpdateUserRole(ctx, admin("boss"), "ghost", "instructor"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
	if err := m.adminSvc.UpdateUserRole(ctx, admin("boss"), "stu", "instructor"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	instructors, err := m.adminSvc.ListUsers(ctx, ListUsersInput{Role: "instructor"})
	if err != nil {
		t.Fatalf("list instructors: %v", err)
	}
	if len(instructors) != 1 || instructors[0].ID != "stu" {
		t.Fatalf("unexpected instructors: %+v", instructors)
	}
}

func TestAdminService_CategoryLifecycle(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)

	created, err := m.adminSvc.CreateCategory(ctx, CategoryInput{Name: "Data Science", Icon: "chart"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.Slug != "data-science" {
		t.Fatalf("unexpected slug: %s", created.Slug)
	}
	if _, err := m.adminSvc.CreateCategory(ctx, CategoryInput{Name: "data science"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate slug, got %v", err)
	}

	item, _ := m.addCourse(t, "ml", "ins", 0, 1)
	item.CategoryID = created.ID
	if err := m.courses.Update(ctx, item); err != nil {
		t.Fatalf("assign category: %v", err)
	}
	if err := m.adminSvc.DeleteCategory(ctx, created.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for category in use, got %v", err)
	}
	if err := m.adminSvc.DeleteCategory(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	university, err := m.adminSvc.CreateUniversity(ctx, UniversityInput{Name: "Helwan University", City: "Cairo"})
	if err != nil {
		t.Fatalf("create university: %v", err)
	}
	if university.Slug != "helwan-university" {
		t.Fatalf("unexpected university slug: %s", university.Slug)
	}
}

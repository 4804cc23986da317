package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestEnrollmentService_EnrollFreeCourse(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)
	m.addProfile(t, "ins", user.RoleInstructor)
	free, _ := m.addCourse(t, "free", "ins", 0, 2)

	first, err := m.enrollSvc.Enroll(ctx, "stu", free.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	second, err := m.enrollSvc.Enroll(ctx, "stu", free.ID)
	if err != nil {
		t.Fatalf("enroll again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected idempotent enrollment, got %s and %s", first.ID, second.ID)
	}

	items, err := m.notifications.ListByUser(ctx, "stu", 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(items) != 1 || items[0].Type != notification.TypeEnrollment {
		t.Fatalf("expected one enrollment notification, got %+v", items)
	}
}

func TestEnrollmentService_EnrollRejectsPaidAndUnpublished(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	paid, _ := m.addCourse(t, "paid", "ins", 49900, 1)
	draft, _ := m.addCourse(t, "draft", "ins", 0, 1)
	if err := m.courses.SetPublished(ctx, draft.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	if _, err := m.enrollSvc.Enroll(ctx, "stu", paid.ID); !errors.Is(err, ErrPaymentRequired) {
		t.Fatalf("expected ErrPaymentRequired, got %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", draft.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpublished course, got %v", err)
	}
}

func TestEnrollmentService_ProgressAndCertificate(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)
	m.addProfile(t, "ins", user.RoleInstructor)
	item, lessons := m.addCourse(t, "algo", "ins", 0, 3)

	if _, err := m.enrollSvc.MarkLessonComplete(ctx, "stu", lessons[0].ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden before enrolling, got %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	wantProgress := []int{33, 67, 100}
	var certificateNumber string
	for i, lesson := range lessons {
		result, err := m.enrollSvc.MarkLessonComplete(ctx, "stu", lesson.ID)
		if err != nil {
			t.Fatalf("complete lesson %d: %v", i, err)
		}
		if got := result.Progress.Enrollment.ProgressPercentage; got != wantProgress[i] {
			t.Fatalf("lesson %d: progress got=%d want=%d", i, got, wantProgress[i])
		}
		if i < len(lessons)-1 && result.Certificate != nil {
			t.Fatalf("certificate issued before completion")
		}
		if i == len(lessons)-1 {
			if result.Certificate == nil {
				t.Fatalf("expected certificate on completion")
			}
			certificateNumber = result.Certificate.Number
		}
	}

	// marking the last lesson again keeps the single certificate
	again, err := m.enrollSvc.MarkLessonComplete(ctx, "stu", lessons[2].ID)
	if err != nil {
		t.Fatalf("complete lesson again: %v", err)
	}
	if again.Certificate == nil || again.Certificate.Number != certificateNumber {
		t.Fatalf("expected the same certificate, got %+v", again.Certificate)
	}
	certs, err := m.certSvc.ListMine(ctx, "stu")
	if err != nil {
		t.Fatalf("list certificates: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("expected exactly one certificate, got %d", len(certs))
	}

	verified, err := m.certSvc.Verify(ctx, certificateNumber)
	if err != nil {
		t.Fatalf("verify certificate: %v", err)
	}
	if verified.CourseID != item.ID {
		t.Fatalf("unexpected verified course: %s", verified.CourseID)
	}

	undone, err := m.enrollSvc.UnmarkLessonComplete(ctx, "stu", lessons[1].ID)
	if err != nil {
		t.Fatalf("uncomplete lesson: %v", err)
	}
	if undone.Progress.Enrollment.ProgressPercentage != 67 || undone.Progress.Enrollment.IsCompleted() {
		t.Fatalf("unexpected progress after uncomplete: %+v", undone.Progress.Enrollment)
	}

	progress, err := m.enrollSvc.GetCourseProgress(ctx, "stu", item.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if len(progress.CompletedLessonIDs) != 2 {
		t.Fatalf("expected 2 completed lessons, got %v", progress.CompletedLessonIDs)
	}
}

func TestEnrollmentService_ConcurrentCompletionIssuesOneCertificate(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)
	m.addProfile(t, "ins", user.RoleInstructor)
	item, lessons := m.addCourse(t, "race", "ins", 0, 4)
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	var wg sync.WaitGroup
	for _, lesson := range lessons {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.enrollSvc.MarkLessonComplete(ctx, "stu", lesson.ID); err != nil {
				t.Errorf("complete %s: %v", lesson.ID, err)
			}
		}()
	}
	wg.Wait()

	progress, err := m.enrollSvc.GetCourseProgress(ctx, "stu", item.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress.Enrollment.ProgressPercentage != 100 {
		t.Fatalf("expected 100%%, got %d", progress.Enrollment.ProgressPercentage)
	}
	certs, err := m.certSvc.ListMine(ctx, "stu")
	if err != nil {
		t.Fatalf("list certificates: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("expected exactly one certificate, got %d", len(certs))
	}
}

func TestCertificateService_IssueRequiresCompletion(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)
	m.addProfile(t, "ins", user.RoleInstructor)
	item, _ := m.addCourse(t, "half", "ins", 0, 2)

	if _, err := m.certSvc.Issue(ctx, "stu", item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without enrollment, got %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := m.certSvc.Issue(ctx, "stu", item.ID); !errors.Is(err, ErrFailedPrecondition) {
		t.Fatalf("expected ErrFailedPrecondition for incomplete course, got %v", err)
	}
}

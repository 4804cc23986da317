package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestQuizService_AuthoringAndAttempts(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "rival", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	item, lessons := m.addCourse(t, "algo", "ins", 0, 1)

	attempts := 2
	if _, err := m.quizSvc.CreateQuiz(ctx, instructor("rival"), CreateQuizInput{LessonID: lessons[0].ID, Title: "Check"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign instructor, got %v", err)
	}
	created, err := m.quizSvc.CreateQuiz(ctx, instructor("ins"), CreateQuizInput{
		LessonID:        lessons[0].ID,
		Title:           "Sorting basics",
		AttemptsAllowed: &attempts,
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if created.PassScore != quiz.DefaultPassScore {
		t.Fatalf("expected default pass score, got %d", created.PassScore)
	}
	if _, err := m.quizSvc.CreateQuiz(ctx, instructor("ins"), CreateQuizInput{LessonID: lessons[0].ID, Title: "Again"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for second quiz on lesson, got %v", err)
	}

	questions := []AddQuestionInput{
		{QuizID: created.ID, Question: "Best case of quicksort?", Type: "multiple_choice", Options: []string{"n log n", "n^2", " "}, CorrectAnswer: "n log n"},
		{QuizID: created.ID, Question: "Merge sort is stable", Type: "true_false", CorrectAnswer: "true"},
		{QuizID: created.ID, Question: "Name a linear sort", Type: "short_answer", CorrectAnswer: "counting sort"},
	}
	var ids []string
	for i, input := range questions {
		question, err := m.quizSvc.AddQuestion(ctx, instructor("ins"), input)
		if err != nil {
			t.Fatalf("add question %d: %v", i, err)
		}
		if question.Position != i+1 {
			t.Fatalf("question %d: position got=%d want=%d", i, question.Position, i+1)
		}
		ids = append(ids, question.ID)
	}
	if _, err := m.quizSvc.AddQuestion(ctx, instructor("ins"), AddQuestionInput{
		QuizID: created.ID, Question: "One option", Type: "multiple_choice", Options: []string{"only"}, CorrectAnswer: "only",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for single-option question, got %v", err)
	}

	if _, err := m.quizSvc.GetQuiz(ctx, student("stu"), lessons[0].ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden before enrolling, got %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	visible, err := m.quizSvc.GetQuiz(ctx, student("stu"), lessons[0].ID)
	if err != nil {
		t.Fatalf("get quiz as student: %v", err)
	}
	for _, question := range visible.Questions {
		if question.CorrectAnswer != "" {
			t.Fatalf("student sees correct answer for %s", question.ID)
		}
	}
	managed, err := m.quizSvc.GetQuiz(ctx, instructor("ins"), lessons[0].ID)
	if err != nil {
		t.Fatalf("get quiz as instructor: %v", err)
	}
	if managed.Questions[0].CorrectAnswer != "n log n" {
		t.Fatalf("instructor should see answers, got %q", managed.Questions[0].CorrectAnswer)
	}

	first, err := m.quizSvc.Submit(ctx, student("stu"), created.ID, map[string]string{
		ids[0]: " N LOG N ",
		ids[1]: "true",
		ids[2]: "bubble sort",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.Score != 67 || first.Passed {
		t.Fatalf("unexpected grading: score=%d passed=%v", first.Score, first.Passed)
	}

	second, err := m.quizSvc.Submit(ctx, student("stu"), created.ID, map[string]string{
		ids[0]: "n log n",
		ids[1]: "TRUE",
		ids[2]: "Counting Sort",
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Score != 100 || !second.Passed {
		t.Fatalf("unexpected grading: score=%d passed=%v", second.Score, second.Passed)
	}

	if _, err := m.quizSvc.Submit(ctx, student("stu"), created.ID, nil); !errors.Is(err, ErrFailedPrecondition) {
		t.Fatalf("expected ErrFailedPrecondition once attempts are used, got %v", err)
	}

	history, err := m.quizSvc.ListMyAttempts(ctx, student("stu"), created.ID)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(history))
	}
}

func TestQuizService_SubmitRequiresQuestionsAndEnrollment(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "ins", user.RoleInstructor)
	m.addProfile(t, "stu", user.RoleStudent)
	item, lessons := m.addCourse(t, "empty", "ins", 0, 1)

	created, err := m.quizSvc.CreateQuiz(ctx, admin("root"), CreateQuizInput{LessonID: lessons[0].ID, Title: "Empty"})
	if err != nil {
		t.Fatalf("create quiz as admin: %v", err)
	}
	if _, err := m.quizSvc.Submit(ctx, student("stu"), created.ID, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden without enrollment, got %v", err)
	}
	if _, err := m.enrollSvc.Enroll(ctx, "stu", item.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := m.quizSvc.Submit(ctx, student("stu"), created.ID, nil); !errors.Is(err, ErrFailedPrecondition) {
		t.Fatalf("expected ErrFailedPrecondition for quiz without questions, got %v", err)
	}
	if _, err := m.quizSvc.Submit(ctx, student("stu"), "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
)

type CreateQuizInput struct {
	LessonID        string
	Title           string
	PassScore       *int
	AttemptsAllowed *int
}

type AddQuestionInput struct {
	QuizID        string
	Question      string
	Type          string
	Options       []string
	CorrectAnswer string
}

type QuizService struct {
	repo        quiz.Repository
	courses     course.Repository
	lessons     course.LessonRepository
	enrollments enrollment.Repository
	ids         id.Generator
	now         func() time.Time
}

func NewQuizService(
	repo quiz.Repository,
	courses course.Repository,
	lessons course.LessonRepository,
	enrollments enrollment.Repository,
	ids id.Generator,
) *QuizService {
	return &QuizService{
		repo:        repo,
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		ids:         ids,
		now:         time.Now,
	}
}

// GetQuiz returns a lesson's quiz with ordered questions. Correct answers are
// only shown to the course's instructor and admins.
func (s *QuizService) GetQuiz(ctx context.Context, principal user.Principal, lessonID string) (quiz.Quiz, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QuizService.GetQuiz")
	defer span.End()

	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return quiz.Quiz{}, fmt.Errorf("%w: lesson_id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByLesson(ctx, lessonID)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("get quiz by lesson: %w", err)
	}
	if !exists {
		return quiz.Quiz{}, fmt.Errorf("%w: quiz not found", ErrNotFound)
	}

	manages, err := s.access(ctx, principal, item.CourseID)
	if err != nil {
		return quiz.Quiz{}, err
	}

	questions, err := s.repo.ListQuestions(ctx, item.ID)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("list quiz questions: %w", err)
	}
	item.Questions = questions
	if !manages {
		item = item.WithoutAnswers()
	}
	return item, nil
}

// Submit grades answers and stores the attempt while attempts remain.
func (s *QuizService) Submit(ctx context.Context, principal user.Principal, quizID string, answers map[string]string) (quiz.Attempt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QuizService.Submit")
	defer span.End()

	item, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return quiz.Attempt{}, err
	}
	if _, enrolled, err := s.enrollments.Get(ctx, principal.UserID, item.CourseID); err != nil {
		return quiz.Attempt{}, fmt.Errorf("get enrollment: %w", err)
	} else if !enrolled {
		return quiz.Attempt{}, fmt.Errorf("%w: not enrolled in course", ErrForbidden)
	}

	questions, err := s.repo.ListQuestions(ctx, item.ID)
	if err != nil {
		return quiz.Attempt{}, fmt.Errorf("list quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return quiz.Attempt{}, fmt.Errorf("%w: quiz has no questions", ErrFailedPrecondition)
	}

	attemptID, err := s.ids.NewID()
	if err != nil {
		return quiz.Attempt{}, fmt.Errorf("generate attempt id: %w", err)
	}
	score, passed := quiz.Grade(questions, answers, item.PassScore)
	attempt := quiz.Attempt{
		ID:        attemptID,
		QuizID:    item.ID,
		UserID:    principal.UserID,
		Answers:   answers,
		Score:     score,
		Passed:    passed,
		CreatedAt: s.now().UTC(),
	}
	if attempt.Answers == nil {
		attempt.Answers = map[string]string{}
	}

	if err := s.repo.CreateAttempt(ctx, attempt, item.AttemptsAllowed); err != nil {
		if errors.Is(err, quiz.ErrAttemptsExhausted) {
			return quiz.Attempt{}, fmt.Errorf("%w: %w", ErrFailedPrecondition, err)
		}
		return quiz.Attempt{}, fmt.Errorf("create quiz attempt: %w", err)
	}
	return attempt, nil
}

func (s *QuizService) ListMyAttempts(ctx context.Context, principal user.Principal, quizID string) ([]quiz.Attempt, error) {
	item, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.repo.ListAttempts(ctx, item.ID, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	return attempts, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, principal user.Principal, input CreateQuizInput) (quiz.Quiz, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QuizService.CreateQuiz")
	defer span.End()

	lessonID := strings.TrimSpace(input.LessonID)
	lesson, exists, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("get lesson: %w", err)
	}
	if !exists {
		return quiz.Quiz{}, fmt.Errorf("%w: lesson not found", ErrNotFound)
	}
	if _, err := ownedCourse(ctx, s.courses, principal, lesson.CourseID); err != nil {
		return quiz.Quiz{}, err
	}
	if _, found, err := s.repo.GetByLesson(ctx, lesson.ID); err != nil {
		return quiz.Quiz{}, fmt.Errorf("get quiz by lesson: %w", err)
	} else if found {
		return quiz.Quiz{}, fmt.Errorf("%w: lesson already has a quiz", ErrConflict)
	}

	quizID, err := s.ids.NewID()
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("generate quiz id: %w", err)
	}
	item := quiz.Quiz{
		ID:              quizID,
		LessonID:        lesson.ID,
		CourseID:        lesson.CourseID,
		Title:           strings.TrimSpace(input.Title),
		PassScore:       quiz.DefaultPassScore,
		AttemptsAllowed: quiz.DefaultAttemptsAllowed,
		CreatedAt:       s.now().UTC(),
	}
	if input.PassScore != nil {
		item.PassScore = *input.PassScore
	}
	if input.AttemptsAllowed != nil {
		item.AttemptsAllowed = *input.AttemptsAllowed
	}
	if err := item.ValidateBasic(); err != nil {
		return quiz.Quiz{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return quiz.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return item, nil
}

func (s *QuizService) AddQuestion(ctx context.Context, principal user.Principal, input AddQuestionInput) (quiz.Question, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QuizService.AddQuestion")
	defer span.End()

	item, err := s.getQuiz(ctx, input.QuizID)
	if err != nil {
		return quiz.Question{}, err
	}
	if _, err := ownedCourse(ctx, s.courses, principal, item.CourseID); err != nil {
		return quiz.Question{}, err
	}

	position, err := s.repo.NextQuestionPosition(ctx, item.ID)
	if err != nil {
		return quiz.Question{}, fmt.Errorf("next question position: %w", err)
	}
	questionID, err := s.ids.NewID()
	if err != nil {
		return quiz.Question{}, fmt.Errorf("generate question id: %w", err)
	}

	options := make([]string, 0, len(input.Options))
	for _, option := range input.Options {
		if option = strings.TrimSpace(option); option != "" {
			options = append(options, option)
		}
	}
	question := quiz.Question{
		ID:            questionID,
		QuizID:        item.ID,
		Question:      strings.TrimSpace(input.Question),
		Type:          quiz.QuestionType(strings.TrimSpace(input.Type)),
		Options:       options,
		CorrectAnswer: strings.TrimSpace(input.CorrectAnswer),
		Position:      position,
	}
	if err := question.ValidateBasic(); err != nil {
		return quiz.Question{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.AddQuestion(ctx, question); err != nil {
		return quiz.Question{}, fmt.Errorf("add quiz question: %w", err)
	}
	return question, nil
}

func (s *QuizService) getQuiz(ctx context.Context, quizID string) (quiz.Quiz, error) {
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return quiz.Quiz{}, fmt.Errorf("%w: quiz_id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	if !exists {
		return quiz.Quiz{}, fmt.Errorf("%w: quiz not found", ErrNotFound)
	}
	return item, nil
}

// access reports whether the principal manages the quiz's course; students
// must be enrolled to see it at all.
func (s *QuizService) access(ctx context.Context, principal user.Principal, courseID string) (bool, error) {
	item, exists, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: course not found", ErrNotFound)
	}
	if canManageCourse(principal, item) {
		return true, nil
	}

	if _, enrolled, err := s.enrollments.Get(ctx, principal.UserID, courseID); err != nil {
		return false, fmt.Errorf("get enrollment: %w", err)
	} else if !enrolled {
		return false, fmt.Errorf("%w: not enrolled in course", ErrForbidden)
	}
	return false, nil
}

package memory

import (
	"context"
	"maps"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
)

type QuizRepository struct {
	s *Store
}

func NewQuizRepository(s *Store) *QuizRepository {
	return &QuizRepository{s: s}
}

func (r *QuizRepository) Create(_ context.Context, item quiz.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.Questions = nil
	r.s.quizzes[item.ID] = item
	return nil
}

func (r *QuizRepository) GetByID(_ context.Context, quizID string) (quiz.Quiz, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.quizzes[quizID]
	return item, ok, nil
}

func (r *QuizRepository) GetByLesson(_ context.Context, lessonID string) (quiz.Quiz, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.quizzes {
		if item.LessonID == lessonID {
			return item, true, nil
		}
	}
	return quiz.Quiz{}, false, nil
}

func (r *QuizRepository) AddQuestion(_ context.Context, question quiz.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	question.Options = append([]string(nil), question.Options...)
	r.s.questions[question.ID] = question
	return nil
}

func (r *QuizRepository) NextQuestionPosition(_ context.Context, quizID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	maxPosition := 0
	for _, item := range r.s.questions {
		if item.QuizID == quizID && item.Position > maxPosition {
			maxPosition = item.Position
		}
	}
	return maxPosition + 1, nil
}

func (r *QuizRepository) ListQuestions(_ context.Context, quizID string) ([]quiz.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]quiz.Question, 0)
	for _, item := range r.s.questions {
		if item.QuizID == quizID {
			item.Options = append([]string(nil), item.Options...)
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *QuizRepository) CreateAttempt(_ context.Context, attempt quiz.Attempt, maxAttempts int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	used := 0
	for _, item := range r.s.attempts {
		if item.QuizID == attempt.QuizID && item.UserID == attempt.UserID {
			used++
		}
	}
	if used >= maxAttempts {
		return quiz.ErrAttemptsExhausted
	}
	attempt.Answers = maps.Clone(attempt.Answers)
	r.s.attempts[attempt.ID] = attempt
	return nil
}

func (r *QuizRepository) ListAttempts(_ context.Context, quizID, userID string) ([]quiz.Attempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]quiz.Attempt, 0)
	for _, item := range r.s.attempts {
		if item.QuizID == quizID && item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

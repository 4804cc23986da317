package quiz

import "context"

type Repository interface {
	Create(ctx context.Context, item Quiz) error
	GetByID(ctx context.Context, quizID string) (Quiz, bool, error)
	GetByLesson(ctx context.Context, lessonID string) (Quiz, bool, error)
	AddQuestion(ctx context.Context, question Question) error
	NextQuestionPosition(ctx context.Context, quizID string) (int, error)
	ListQuestions(ctx context.Context, quizID string) ([]Question, error)
	// CreateAttempt stores the attempt unless the user already used
	// maxAttempts, returning ErrAttemptsExhausted in that case.
	CreateAttempt(ctx context.Context, attempt Attempt, maxAttempts int) error
	ListAttempts(ctx context.Context, quizID, userID string) ([]Attempt, error)
}

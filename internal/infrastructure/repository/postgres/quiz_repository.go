package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type QuizRepository struct {
	db *sqlx.DB
}

func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, item quiz.Quiz) error {
	query, args, err := qb.InsertModel("quizzes", quizInsertModel{
		PublicID:        item.ID,
		LessonID:        item.LessonID,
		CourseID:        item.CourseID,
		Title:           item.Title,
		PassScore:       item.PassScore,
		AttemptsAllowed: item.AttemptsAllowed,
		CreatedAt:       item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create quiz query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) GetByID(ctx context.Context, quizID string) (quiz.Quiz, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", quizID))
}

func (r *QuizRepository) GetByLesson(ctx context.Context, lessonID string) (quiz.Quiz, bool, error) {
	return r.getOne(ctx, "lesson", qb.Eq("lesson_id", lessonID))
}

func (r *QuizRepository) getOne(ctx context.Context, by string, cond qb.Condition) (quiz.Quiz, bool, error) {
	query, args, err := qb.Select("*").From("quizzes").Where(cond).ToSQL()
	if err != nil {
		return quiz.Quiz{}, false, fmt.Errorf("build get quiz by %s query: %w", by, err)
	}

	var row quizTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return quiz.Quiz{}, false, nil
		}
		return quiz.Quiz{}, false, fmt.Errorf("get quiz by %s: %w", by, err)
	}
	return quiz.Quiz{
		ID:              row.PublicID,
		LessonID:        row.LessonID,
		CourseID:        row.CourseID,
		Title:           row.Title,
		PassScore:       row.PassScore,
		AttemptsAllowed: row.AttemptsAllowed,
		CreatedAt:       row.CreatedAt.UTC(),
	}, true, nil
}

func (r *QuizRepository) AddQuestion(ctx context.Context, question quiz.Question) error {
	options := question.Options
	if options == nil {
		options = []string{}
	}
	rawOptions, err := sonic.MarshalString(options)
	if err != nil {
		return fmt.Errorf("encode question options: %w", err)
	}

	query, args, err := qb.InsertModel("quiz_questions", quizQuestionInsertModel{
		PublicID:      question.ID,
		QuizID:        question.QuizID,
		Question:      question.Question,
		Type:          string(question.Type),
		Options:       rawOptions,
		CorrectAnswer: question.CorrectAnswer,
		Position:      question.Position,
	}, "")
	if err != nil {
		return fmt.Errorf("build add quiz question query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add quiz question: %w", err)
	}
	return nil
}

func (r *QuizRepository) NextQuestionPosition(ctx context.Context, quizID string) (int, error) {
	var next int
	if err := r.db.GetContext(ctx, &next, `SELECT COALESCE(MAX(position), 0) + 1 FROM quiz_questions WHERE quiz_id = $1`, quizID); err != nil {
		return 0, fmt.Errorf("next quiz question position: %w", err)
	}
	return next, nil
}

func (r *QuizRepository) ListQuestions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	query, args, err := qb.Select("*").From("quiz_questions").
		Where(qb.Eq("quiz_id", quizID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list quiz questions query: %w", err)
	}

	var rows []quizQuestionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}

	out := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		var options []string
		if len(row.Options) > 0 {
			if err := sonic.Unmarshal(row.Options, &options); err != nil {
				return nil, fmt.Errorf("decode options of question %s: %w", row.PublicID, err)
			}
		}
		out = append(out, quiz.Question{
			ID:            row.PublicID,
			QuizID:        row.QuizID,
			Question:      row.Question,
			Type:          quiz.QuestionType(row.Type),
			Options:       options,
			CorrectAnswer: row.CorrectAnswer,
			Position:      row.Position,
		})
	}
	return out, nil
}

// CreateAttempt serializes attempts per (quiz, user) with a transaction-scoped advisory lock.
func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt quiz.Attempt, maxAttempts int) error {
	answers := attempt.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	rawAnswers, err := sonic.MarshalString(answers)
	if err != nil {
		return fmt.Errorf("encode quiz answers: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create quiz attempt: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "quiz_attempt:"+attempt.QuizID+":"+attempt.UserID); err != nil {
		return fmt.Errorf("lock quiz attempts: %w", err)
	}

	var used int
	if err := tx.GetContext(ctx, &used, `SELECT COUNT(1) FROM quiz_attempts WHERE quiz_id = $1 AND user_id = $2`, attempt.QuizID, attempt.UserID); err != nil {
		return fmt.Errorf("count quiz attempts: %w", err)
	}
	if used >= maxAttempts {
		return quiz.ErrAttemptsExhausted
	}

	query, args, err := qb.InsertModel("quiz_attempts", quizAttemptInsertModel{
		PublicID:  attempt.ID,
		QuizID:    attempt.QuizID,
		UserID:    attempt.UserID,
		Answers:   rawAnswers,
		Score:     attempt.Score,
		Passed:    attempt.Passed,
		CreatedAt: attempt.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create quiz attempt query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create quiz attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create quiz attempt tx: %w", err)
	}
	return nil
}

func (r *QuizRepository) ListAttempts(ctx context.Context, quizID, userID string) ([]quiz.Attempt, error) {
	query, args, err := qb.Select("*").From("quiz_attempts").
		Where(qb.Eq("quiz_id", quizID), qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list quiz attempts query: %w", err)
	}

	var rows []quizAttemptTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}

	out := make([]quiz.Attempt, 0, len(rows))
	for _, row := range rows {
		answers := make(map[string]string)
		if len(row.Answers) > 0 {
			if err := sonic.Unmarshal(row.Answers, &answers); err != nil {
				return nil, fmt.Errorf("decode answers of attempt %s: %w", row.PublicID, err)
			}
		}
		out = append(out, quiz.Attempt{
			ID:        row.PublicID,
			QuizID:    row.QuizID,
			UserID:    row.UserID,
			Answers:   answers,
			Score:     row.Score,
			Passed:    row.Passed,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

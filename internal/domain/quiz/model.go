package quiz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DefaultPassScore       = 70
	DefaultAttemptsAllowed = 3
)

var ErrAttemptsExhausted = errors.New("no quiz attempts left")

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer:
		return true
	default:
		return false
	}
}

type Quiz struct {
	ID              string
	LessonID        string
	CourseID        string
	Title           string
	PassScore       int
	AttemptsAllowed int
	CreatedAt       time.Time

	Questions []Question
}

func (q Quiz) ValidateBasic() error {
	if q.ID == "" || q.LessonID == "" || q.CourseID == "" {
		return fmt.Errorf("quiz, lesson and course ids are required")
	}
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("quiz title is required")
	}
	if q.PassScore < 0 || q.PassScore > 100 {
		return fmt.Errorf("pass score must be between 0 and 100")
	}
	if q.AttemptsAllowed < 1 {
		return fmt.Errorf("attempts allowed must be >= 1")
	}

	return nil
}

// WithoutAnswers returns a copy safe to show to a student.
func (q Quiz) WithoutAnswers() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = ""
		out.Questions[i] = question
	}
	return out
}

type Question struct {
	ID            string
	QuizID        string
	Question      string
	Type          QuestionType
	Options       []string
	CorrectAnswer string
	Position      int
}

func (q Question) ValidateBasic() error {
	if q.ID == "" || q.QuizID == "" {
		return fmt.Errorf("question and quiz ids are required")
	}
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is required")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("invalid question type %q", q.Type)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("correct answer is required")
	}
	if q.Type == QuestionMultipleChoice && len(q.Options) < 2 {
		return fmt.Errorf("multiple choice needs at least 2 options")
	}

	return nil
}

type Attempt struct {
	ID        string
	QuizID    string
	UserID    string
	Answers   map[string]string
	Score     int
	Passed    bool
	CreatedAt time.Time
}

// Grade scores answers against questions: round(correct/len*100), matching
// trimmed answers case-insensitively.
func Grade(questions []Question, answers map[string]string, passScore int) (int, bool) {
	if len(questions) == 0 {
		return 0, false
	}

	correct := 0
	for _, question := range questions {
		given, ok := answers[question.ID]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(question.CorrectAnswer)) {
			correct++
		}
	}

	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return score, score >= passScore
}

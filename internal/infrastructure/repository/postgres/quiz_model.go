package postgres

import "time"

type quizTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	LessonID        string    `db:"lesson_id"`
	CourseID        string    `db:"course_id"`
	Title           string    `db:"title"`
	PassScore       int       `db:"pass_score"`
	AttemptsAllowed int       `db:"attempts_allowed"`
	CreatedAt       time.Time `db:"created_at"`
}

type quizInsertModel struct {
	PublicID        string    `db:"public_id"`
	LessonID        string    `db:"lesson_id"`
	CourseID        string    `db:"course_id"`
	Title           string    `db:"title"`
	PassScore       int       `db:"pass_score"`
	AttemptsAllowed int       `db:"attempts_allowed"`
	CreatedAt       time.Time `db:"created_at"`
}

type quizQuestionTableModel struct {
	ID            int64  `db:"id"`
	PublicID      string `db:"public_id"`
	QuizID        string `db:"quiz_id"`
	Question      string `db:"question"`
	Type          string `db:"type"`
	Options       []byte `db:"options"`
	CorrectAnswer string `db:"correct_answer"`
	Position      int    `db:"position"`
}

type quizQuestionInsertModel struct {
	PublicID      string `db:"public_id"`
	QuizID        string `db:"quiz_id"`
	Question      string `db:"question"`
	Type          string `db:"type"`
	Options       string `db:"options"`
	CorrectAnswer string `db:"correct_answer"`
	Position      int    `db:"position"`
}

type quizAttemptTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	QuizID    string    `db:"quiz_id"`
	UserID    string    `db:"user_id"`
	Answers   []byte    `db:"answers"`
	Score     int       `db:"score"`
	Passed    bool      `db:"passed"`
	CreatedAt time.Time `db:"created_at"`
}

type quizAttemptInsertModel struct {
	PublicID  string    `db:"public_id"`
	QuizID    string    `db:"quiz_id"`
	UserID    string    `db:"user_id"`
	Answers   string    `db:"answers"`
	Score     int       `db:"score"`
	Passed    bool      `db:"passed"`
	CreatedAt time.Time `db:"created_at"`
}

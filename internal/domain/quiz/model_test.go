package quiz

import "testing"

func TestGrade(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswer: "Paris"},
		{ID: "q2", CorrectAnswer: "true"},
		{ID: "q3", CorrectAnswer: "42"},
	}

	tests := []struct {
		name      string
		answers   map[string]string
		wantScore int
		wantPass  bool
	}{
		{name: "all correct with casing and spaces", answers: map[string]string{"q1": " paris ", "q2": "TRUE", "q3": "42"}, wantScore: 100, wantPass: true},
		{name: "two of three rounds up", answers: map[string]string{"q1": "Paris", "q2": "true", "q3": "41"}, wantScore: 67, wantPass: false},
		{name: "one of three", answers: map[string]string{"q1": "Paris"}, wantScore: 33, wantPass: false},
		{name: "none", answers: map[string]string{}, wantScore: 0, wantPass: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, passed := Grade(questions, tc.answers, DefaultPassScore)
			if score != tc.wantScore || passed != tc.wantPass {
				t.Fatalf("Grade()=(%d,%v) want (%d,%v)", score, passed, tc.wantScore, tc.wantPass)
			}
		})
	}
}

func TestGrade_PassThresholdInclusive(t *testing.T) {
	questions := []Question{{ID: "q1", CorrectAnswer: "a"}, {ID: "q2", CorrectAnswer: "b"}}
	score, passed := Grade(questions, map[string]string{"q1": "a"}, 50)
	if score != 50 || !passed {
		t.Fatalf("expected 50 to pass a 50 threshold, got %d %v", score, passed)
	}
}

func TestQuiz_WithoutAnswers(t *testing.T) {
	item := Quiz{Questions: []Question{{ID: "q1", CorrectAnswer: "x"}}}
	hidden := item.WithoutAnswers()
	if hidden.Questions[0].CorrectAnswer != "" {
		t.Fatalf("expected answer hidden")
	}
	if item.Questions[0].CorrectAnswer != "x" {
		t.Fatalf("original quiz must be untouched")
	}
}

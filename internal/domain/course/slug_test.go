package course

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Intro to Go", want: "intro-to-go"},
		{in: "  Data Structures & Algorithms!! ", want: "data-structures-algorithms"},
		{in: "C++ 101", want: "c-101"},
		{in: "!!!", want: ""},
	}

	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"intro-to-go": true, "intro-to-go-2": true}
	got, err := UniqueSlug("intro-to-go", func(c string) (bool, error) { return taken[c], nil })
	if err != nil {
		t.Fatalf("unique slug: %v", err)
	}
	if got != "intro-to-go-3" {
		t.Fatalf("unexpected slug: %q", got)
	}

	boom := errors.New("db down")
	if _, err := UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestValidOrder(t *testing.T) {
	lessons := []Lesson{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if !ValidOrder(lessons, []string{"c", "a", "b"}) {
		t.Fatalf("expected permutation to be valid")
	}
	if ValidOrder(lessons, []string{"a", "a", "b"}) {
		t.Fatalf("expected duplicate ids to be invalid")
	}
	if ValidOrder(lessons, []string{"a", "b"}) {
		t.Fatalf("expected short list to be invalid")
	}
	if ValidOrder(lessons, []string{"a", "b", "z"}) {
		t.Fatalf("expected unknown id to be invalid")
	}
}

func TestCourseValidateBasic(t *testing.T) {
	c := Course{ID: "c1", Title: "Go", Slug: "go", InstructorID: "i1", UniversityID: "u1", Level: Level1st}
	if err := c.ValidateBasic(); err != nil {
		t.Fatalf("expected valid course, got %v", err)
	}
	c.Level = "6th"
	if err := c.ValidateBasic(); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestLessonRedacted(t *testing.T) {
	l := Lesson{ID: "l1", Title: "Intro", VideoURL: "v", TextContent: "t", ResourceURL: "r"}
	got := l.Redacted()
	if got.VideoURL != "" || got.TextContent != "" || got.ResourceURL != "" {
		t.Fatalf("expected gated content stripped, got %+v", got)
	}
	if got.Title != "Intro" {
		t.Fatalf("expected outline fields kept")
	}
}

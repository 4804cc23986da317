package course

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify lowercases title and joins its letter/digit runs with dashes.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}

// UniqueSlug returns base, or base-N for the smallest N >= 2 not rejected by taken.
func UniqueSlug(base string, taken func(candidate string) (bool, error)) (string, error) {
	if base == "" {
		base = "course"
	}
	candidate := base
	for n := 2; ; n++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// ValidOrder reports whether ordered is a permutation of lessons' ids.
func ValidOrder(lessons []Lesson, ordered []string) bool {
	if len(lessons) != len(ordered) {
		return false
	}
	known := make(map[string]struct{}, len(lessons))
	for _, l := range lessons {
		known[l.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ordered))
	for _, id := range ordered {
		if _, ok := known[id]; !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

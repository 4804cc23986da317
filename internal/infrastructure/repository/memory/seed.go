package memory

import (
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
)

func SeedUniversities() []course.University {
	return []course.University{
		{ID: "6a1f0d2e-0b51-4c4e-9d0a-1f7c2d4b8a01", Name: "Cairo University", Slug: "cairo-university", City: "Giza", Country: "Egypt"},
		{ID: "6a1f0d2e-0b51-4c4e-9d0a-1f7c2d4b8a02", Name: "Ain Shams University", Slug: "ain-shams-university", City: "Cairo", Country: "Egypt"},
		{ID: "6a1f0d2e-0b51-4c4e-9d0a-1f7c2d4b8a03", Name: "Alexandria University", Slug: "alexandria-university", City: "Alexandria", Country: "Egypt"},
		{ID: "6a1f0d2e-0b51-4c4e-9d0a-1f7c2d4b8a04", Name: "Mansoura University", Slug: "mansoura-university", City: "Mansoura", Country: "Egypt"},
	}
}

func SeedCategories() []course.Category {
	return []course.Category{
		{ID: "9c3e4b7a-52d1-4f0e-8a6b-3d2c1e0f9b01", Name: "Engineering", Slug: "engineering", Icon: "cog"},
		{ID: "9c3e4b7a-52d1-4f0e-8a6b-3d2c1e0f9b02", Name: "Medicine", Slug: "medicine", Icon: "stethoscope"},
		{ID: "9c3e4b7a-52d1-4f0e-8a6b-3d2c1e0f9b03", Name: "Computer Science", Slug: "computer-science", Icon: "code"},
		{ID: "9c3e4b7a-52d1-4f0e-8a6b-3d2c1e0f9b04", Name: "Business", Slug: "business", Icon: "briefcase"},
	}
}

// Seed loads the reference catalog into the store.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range SeedUniversities() {
		s.universities[item.ID] = item
	}
	for _, item := range SeedCategories() {
		s.categories[item.ID] = item
	}
}

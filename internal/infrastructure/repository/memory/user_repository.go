package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(_ context.Context, profile user.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.profiles {
		if existing.Email == profile.Email {
			return user.ErrEmailTaken
		}
	}
	r.s.profiles[profile.ID] = profile
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.Profile, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profile, ok := r.s.profiles[userID]
	return profile, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.Profile, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, profile := range r.s.profiles {
		if profile.Email == email {
			return profile, true, nil
		}
	}
	return user.Profile{}, false, nil
}

func (r *UserRepository) Update(_ context.Context, profile user.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[profile.ID]; !ok {
		return nil
	}
	r.s.profiles[profile.ID] = profile
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, userID string, role user.Role) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile, ok := r.s.profiles[userID]
	if !ok {
		return false, nil
	}
	profile.Role = role
	r.s.profiles[userID] = profile
	return true, nil
}

func (r *UserRepository) List(_ context.Context, filter user.ListFilter) ([]user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]user.Profile, 0, len(r.s.profiles))
	for _, profile := range r.s.profiles {
		if filter.Role != "" && profile.Role != filter.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(profile.FullName), search) &&
			!strings.Contains(profile.Email, search) {
			continue
		}
		out = append(out, profile)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *UserRepository) ListIDsByRole(_ context.Context, role user.Role) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]string, 0)
	for _, profile := range r.s.profiles {
		if profile.Role == role {
			out = append(out, profile.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *UserRepository) ListInstructors(_ context.Context) ([]user.InstructorSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	published := make(map[string]int)
	for _, item := range r.s.courses {
		if item.IsPublished {
			published[item.InstructorID]++
		}
	}

	out := make([]user.InstructorSummary, 0)
	for _, profile := range r.s.profiles {
		if profile.Role != user.RoleInstructor {
			continue
		}
		out = append(out, user.InstructorSummary{Profile: profile, PublishedCourses: published[profile.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profile.FullName < out[j].Profile.FullName
	})
	return out, nil
}

func (r *UserRepository) CountByRole(_ context.Context) (user.RoleCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(user.RoleCounts)
	for _, profile := range r.s.profiles {
		out[profile.Role]++
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

type UpdateProfileInput struct {
	FullName     *string
	Bio          *string
	Phone        *string
	AvatarURL    *string
	UniversityID *string
}

type ProfileService struct {
	users user.Repository
	now   func() time.Time
}

func NewProfileService(users user.Repository) *ProfileService {
	return &ProfileService{users: users, now: time.Now}
}

func (s *ProfileService) GetMe(ctx context.Context, userID string) (user.Profile, error) {
	profile, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return user.Profile{}, fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	return profile, nil
}

// UpdateMe applies the non-nil fields of input to the caller's profile.
func (s *ProfileService) UpdateMe(ctx context.Context, userID string, input UpdateProfileInput) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateMe")
	defer span.End()

	profile, err := s.GetMe(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return user.Profile{}, fmt.Errorf("%w: full_name must not be empty", ErrInvalidInput)
		}
		profile.FullName = name
	}
	if input.Bio != nil {
		profile.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}
	if input.UniversityID != nil {
		profile.UniversityID = strings.TrimSpace(*input.UniversityID)
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

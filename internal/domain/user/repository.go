package user

import (
	"context"
	"errors"
)

var ErrEmailTaken = errors.New("email already registered")

// Repository describes profile persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (Profile, bool, error)
	Update(ctx context.Context, profile Profile) error
	UpdateRole(ctx context.Context, userID string, role Role) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Profile, error)
	ListIDsByRole(ctx context.Context, role Role) ([]string, error)
	ListInstructors(ctx context.Context) ([]InstructorSummary, error)
	CountByRole(ctx context.Context) (RoleCounts, error)
}

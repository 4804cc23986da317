package device

import "context"

// Repository describes device-session persistence.
type Repository interface {
	// Register applies the eviction rule and records the device and session
	// atomically per user.
	Register(ctx context.Context, params RegisterParams) (RegisterResult, error)
	GetSession(ctx context.Context, sessionID string) (Session, bool, error)
	LogoutSession(ctx context.Context, sessionID string) error
	GetByID(ctx context.Context, deviceID string) (Device, bool, error)
	ListActiveByUser(ctx context.Context, userID string) ([]Device, error)
	// Deactivate marks the device inactive and logs out its open sessions.
	Deactivate(ctx context.Context, deviceID string) (bool, error)
	ListUsersWithDevices(ctx context.Context) ([]UserDevices, error)
	ListViolations(ctx context.Context, filter ViolationFilter) ([]Violation, error)
	ResolveViolation(ctx context.Context, violationID string, status ViolationStatus) (bool, error)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

const maxDeviceNameLength = 120

type RegisterDeviceInput struct {
	UserID     string
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

type DeviceService struct {
	repo   device.Repository
	policy device.Policy
	ids    id.Generator
	tokens id.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewDeviceService(
	repo device.Repository,
	policy device.Policy,
	ids id.Generator,
	tokens id.Generator,
	logger *logging.Logger,
) *DeviceService {
	if logger == nil {
		logger = logging.Default()
	}
	if policy.Validate() != nil {
		policy = device.DefaultPolicy()
	}

	return &DeviceService{
		repo:   repo,
		policy: policy,
		ids:    ids,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register records a login from a device, evicting the least recently used
// active device once the user is at the cap.
func (s *DeviceService) Register(ctx context.Context, input RegisterDeviceInput) (device.RegisterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DeviceService.Register")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.DeviceName = normalizeDeviceName(input.DeviceName, input.UserAgent)
	deviceType := device.Type(strings.ToLower(strings.TrimSpace(input.DeviceType)))
	if deviceType == "" {
		deviceType = device.TypeWeb
	}

	if input.UserID == "" {
		return device.RegisterResult{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if !deviceType.Valid() {
		return device.RegisterResult{}, fmt.Errorf("%w: invalid device_type %q", ErrInvalidInput, input.DeviceType)
	}

	params := device.RegisterParams{
		UserID:     input.UserID,
		DeviceName: input.DeviceName,
		DeviceType: deviceType,
		IPAddress:  strings.TrimSpace(input.IPAddress),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		Now:        s.now().UTC(),
		Policy:     s.policy,
	}
	var err error
	if params.DeviceID, err = s.ids.NewID(); err != nil {
		return device.RegisterResult{}, fmt.Errorf("generate device id: %w", err)
	}
	if params.SessionID, err = s.ids.NewID(); err != nil {
		return device.RegisterResult{}, fmt.Errorf("generate session id: %w", err)
	}
	params.NewViolationID = s.ids.NewID
	if params.SessionToken, err = s.tokens.NewID(); err != nil {
		return device.RegisterResult{}, fmt.Errorf("generate session token: %w", err)
	}

	result, err := s.repo.Register(ctx, params)
	if err != nil {
		return device.RegisterResult{}, fmt.Errorf("register device: %w", err)
	}
	for _, evicted := range result.Evicted {
		s.logger.WarnContext(ctx, "device cap reached, evicted least recent device",
			"user_id", input.UserID,
			"evicted_device_id", evicted.ID,
			"new_device", input.DeviceName,
		)
	}

	return result, nil
}

// Session returns the stored session; missing sessions are unauthorized.
func (s *DeviceService) Session(ctx context.Context, sessionID string) (device.Session, error) {
	session, exists, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return device.Session{}, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return device.Session{}, fmt.Errorf("%w: session not found", ErrUnauthorized)
	}
	return session, nil
}

func (s *DeviceService) LogoutSession(ctx context.Context, sessionID string) error {
	if err := s.repo.LogoutSession(ctx, sessionID); err != nil {
		return fmt.Errorf("logout session: %w", err)
	}
	return nil
}

func (s *DeviceService) ListMine(ctx context.Context, principal user.Principal) ([]device.Device, error) {
	items, err := s.repo.ListActiveByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return items, nil
}

// LogoutMine deactivates one of the caller's own devices.
func (s *DeviceService) LogoutMine(ctx context.Context, principal user.Principal, deviceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DeviceService.LogoutMine")
	defer span.End()

	item, err := s.ownedDevice(ctx, principal.UserID, deviceID)
	if err != nil {
		return err
	}
	if _, err := s.repo.Deactivate(ctx, item.ID); err != nil {
		return fmt.Errorf("deactivate device: %w", err)
	}
	return nil
}

func (s *DeviceService) ListMyViolations(ctx context.Context, principal user.Principal) ([]device.Violation, error) {
	items, err := s.repo.ListViolations(ctx, device.ViolationFilter{
		UserID: principal.UserID,
		Status: device.ViolationActive,
	})
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	return items, nil
}

func (s *DeviceService) ListUsersWithDevices(ctx context.Context) ([]device.UserDevices, error) {
	items, err := s.repo.ListUsersWithDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users with devices: %w", err)
	}
	return items, nil
}

// ForceLogout deactivates any user's device.
func (s *DeviceService) ForceLogout(ctx context.Context, deviceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DeviceService.ForceLogout")
	defer span.End()

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return fmt.Errorf("%w: device_id is required", ErrInvalidInput)
	}
	ok, err := s.repo.Deactivate(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("deactivate device: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: device not found", ErrNotFound)
	}

	s.logger.InfoContext(ctx, "device force logged out", "device_id", deviceID)
	return nil
}

func (s *DeviceService) ListViolations(ctx context.Context, status string) ([]device.Violation, error) {
	filter := device.ViolationFilter{Status: device.ViolationStatus(strings.TrimSpace(status))}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid violation status %q", ErrInvalidInput, status)
	}
	items, err := s.repo.ListViolations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	return items, nil
}

func (s *DeviceService) ResolveViolation(ctx context.Context, violationID, status string) error {
	next := device.ViolationStatus(strings.TrimSpace(status))
	if next != device.ViolationResolved && next != device.ViolationIgnored {
		return fmt.Errorf("%w: status must be resolved or ignored", ErrInvalidInput)
	}
	ok, err := s.repo.ResolveViolation(ctx, strings.TrimSpace(violationID), next)
	if err != nil {
		return fmt.Errorf("resolve violation: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: violation not found", ErrNotFound)
	}
	return nil
}

func (s *DeviceService) ownedDevice(ctx context.Context, userID, deviceID string) (device.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return device.Device{}, fmt.Errorf("%w: device_id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, deviceID)
	if err != nil {
		return device.Device{}, fmt.Errorf("get device: %w", err)
	}
	if !exists || item.UserID != userID {
		return device.Device{}, fmt.Errorf("%w: device not found", ErrNotFound)
	}
	return item, nil
}

func normalizeDeviceName(name, userAgent string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(userAgent)
	}
	if name == "" {
		name = "unknown device"
	}
	if runes := []rune(name); len(runes) > maxDeviceNameLength {
		name = string(runes[:maxDeviceNameLength])
	}
	return name
}

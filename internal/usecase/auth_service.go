package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

const minPasswordLength = 8

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email      string
	Password   string
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     user.Profile
	Device      device.Device
	Violations  []device.Violation
}

type AuthService struct {
	users     user.Repository
	devices   *DeviceService
	hasher    PasswordHasher
	tokens    TokenManager
	ids       id.Generator
	accessTTL time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

func NewAuthService(
	users user.Repository,
	devices *DeviceService,
	hasher PasswordHasher,
	tokens TokenManager,
	ids id.Generator,
	accessTTL time.Duration,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		users:     users,
		devices:   devices,
		hasher:    hasher,
		tokens:    tokens,
		ids:       ids,
		accessTTL: accessTTL,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || !strings.Contains(email, "@") {
		return user.Profile{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return user.Profile{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if fullName == "" {
		return user.Profile{}, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}

	if _, exists, err := s.users.GetByEmail(ctx, email); err != nil {
		return user.Profile{}, fmt.Errorf("get profile by email: %w", err)
	} else if exists {
		return user.Profile{}, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return user.Profile{}, fmt.Errorf("hash password: %w", err)
	}
	profileID, err := s.ids.NewID()
	if err != nil {
		return user.Profile{}, fmt.Errorf("generate profile id: %w", err)
	}

	now := s.now().UTC()
	profile := user.Profile{
		ID:           profileID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         user.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := profile.ValidateBasic(); err != nil {
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Create(ctx, profile); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.Profile{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return user.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile registered", "user_id", profile.ID)
	return profile, nil
}

// Login checks credentials, registers the device and issues an access token
// bound to the new device session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	profile, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("get profile by email: %w", err)
	}
	if !exists {
		return LoginResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := s.hasher.Compare(profile.PasswordHash, input.Password); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	registered, err := s.devices.Register(ctx, RegisterDeviceInput{
		UserID:     profile.ID,
		DeviceName: input.DeviceName,
		DeviceType: input.DeviceType,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("register login device: %w", err)
	}

	expiresAt := registered.Session.ExpiresAt
	if s.accessTTL > 0 {
		if ttlExpiry := s.now().UTC().Add(s.accessTTL); ttlExpiry.Before(expiresAt) {
			expiresAt = ttlExpiry
		}
	}

	token, err := s.tokens.Issue(user.Principal{
		UserID:    profile.ID,
		Role:      profile.Role,
		SessionID: registered.Session.ID,
		DeviceID:  registered.Device.ID,
	}, expiresAt)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Profile:     profile,
		Device:      registered.Device,
		Violations:  registered.Violations,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, principal user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	if principal.SessionID == "" {
		return fmt.Errorf("%w: no active session", ErrUnauthorized)
	}
	return s.devices.LogoutSession(ctx, principal.SessionID)
}

// VerifyAccessToken resolves a bearer token to a principal. The session must
// be open and its device still active; the role is read fresh from the
// profile so role changes apply without a new login.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	principal, err := s.tokens.Parse(token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	session, err := s.devices.Session(ctx, principal.SessionID)
	if err != nil {
		return user.Principal{}, err
	}
	if session.UserID != principal.UserID || !session.Usable(s.now().UTC()) {
		return user.Principal{}, fmt.Errorf("%w: session is no longer active", ErrUnauthorized)
	}

	profile, exists, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: profile not found", ErrUnauthorized)
	}

	principal.Role = profile.Role
	principal.DeviceID = session.DeviceID
	return principal, nil
}

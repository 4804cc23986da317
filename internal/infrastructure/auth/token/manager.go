package token

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

var (
	ErrInvalidToken = crerr.New("invalid access token")
	ErrMissingKey   = crerr.New("jwt secret is required")
)

// Claims is the access-token payload. The subject is the user id.
type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	DeviceID  string `json:"did,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs HS256 access tokens.
type Manager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewManager(secret, issuer string) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingKey
	}
	return &Manager{secret: []byte(secret), issuer: strings.TrimSpace(issuer), now: time.Now}, nil
}

func (m *Manager) Issue(principal user.Principal, expiresAt time.Time) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		Role:      string(principal.Role),
		SessionID: principal.SessionID,
		DeviceID:  principal.DeviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt.UTC()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", crerr.Wrap(err, "sign access token")
	}
	return signed, nil
}

func (m *Manager) Parse(raw string) (user.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "parse access token"), ErrInvalidToken)
	}
	if !parsed.Valid || claims.Subject == "" || claims.SessionID == "" {
		return user.Principal{}, ErrInvalidToken
	}

	return user.Principal{
		UserID:    claims.Subject,
		Role:      user.Role(claims.Role),
		SessionID: claims.SessionID,
		DeviceID:  claims.DeviceID,
	}, nil
}

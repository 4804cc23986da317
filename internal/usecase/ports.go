package usecase

import (
	"context"
	"io"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenManager signs and parses bearer access tokens.
type TokenManager interface {
	Issue(principal user.Principal, expiresAt time.Time) (string, error)
	Parse(token string) (user.Principal, error)
}

// ObjectStorage stores uploaded files and returns their public location.
type ObjectStorage interface {
	Upload(ctx context.Context, object ObjectUpload) (StoredObject, error)
}

// ObjectUpload is one object to store. Size is the exact length of Body.
type ObjectUpload struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

type StoredObject struct {
	URL         string
	Path        string
	Size        int64
	ContentType string
}

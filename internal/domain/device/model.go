package device

import (
	"fmt"
	"sort"
	"time"
)

const (
	DefaultMaxActive  = 2
	DefaultSessionTTL = 30 * 24 * time.Hour
)

type Type string

const (
	TypeWeb     Type = "web"
	TypeMobile  Type = "mobile"
	TypeTablet  Type = "tablet"
	TypeDesktop Type = "desktop"
)

func (t Type) Valid() bool {
	switch t {
	case TypeWeb, TypeMobile, TypeTablet, TypeDesktop:
		return true
	default:
		return false
	}
}

type ViolationType string

const (
	ViolationMaxDevicesExceeded ViolationType = "max_devices_exceeded"
	ViolationSuspiciousLocation ViolationType = "suspicious_location"
	ViolationConcurrentSessions ViolationType = "concurrent_sessions"
)

type ViolationStatus string

const (
	ViolationActive   ViolationStatus = "active"
	ViolationResolved ViolationStatus = "resolved"
	ViolationIgnored  ViolationStatus = "ignored"
)

func (s ViolationStatus) Valid() bool {
	switch s {
	case ViolationActive, ViolationResolved, ViolationIgnored:
		return true
	default:
		return false
	}
}

// Policy bounds how many devices a user may keep active at once.
type Policy struct {
	MaxActive  int
	SessionTTL time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxActive: DefaultMaxActive, SessionTTL: DefaultSessionTTL}
}

func (p Policy) Validate() error {
	if p.MaxActive < 1 {
		return fmt.Errorf("max active devices must be >= 1")
	}
	if p.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be > 0")
	}
	return nil
}

type Device struct {
	ID           string
	UserID       string
	Name         string
	Type         Type
	IPAddress    string
	UserAgent    string
	IsActive     bool
	LastActivity time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID          string
	UserID      string
	DeviceID    string
	Token       string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	LoggedOutAt *time.Time

	DeviceActive bool
}

// Usable reports whether the session may still authenticate requests at now.
func (s Session) Usable(now time.Time) bool {
	return s.LoggedOutAt == nil && now.Before(s.ExpiresAt) && s.DeviceActive
}

type Violation struct {
	ID         string
	UserID     string
	Type       ViolationType
	Details    map[string]any
	Status     ViolationStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time

	UserName  string
	UserEmail string
}

// RegisterParams carries one login's device data plus pre-generated ids.
type RegisterParams struct {
	UserID       string
	DeviceName   string
	DeviceType   Type
	IPAddress    string
	UserAgent    string
	Now          time.Time
	Policy       Policy
	DeviceID     string
	SessionID    string
	SessionToken string
	// NewViolationID is called once per evicted device.
	NewViolationID func() (string, error)
}

// RegisterResult lists evicted devices oldest first, each paired with the
// violation at the same index.
type RegisterResult struct {
	Device     Device
	Session    Session
	Evicted    []Device
	Violations []Violation
}

// UserDevices groups the active devices of one user for admin listings.
type UserDevices struct {
	UserID    string
	UserName  string
	UserEmail string
	Devices   []Device
}

type ViolationFilter struct {
	UserID string
	Status ViolationStatus
}

// EvictionCandidates picks the devices to deactivate before registering
// deviceName. Active devices other than deviceName are evicted oldest last
// activity first until one slot is free under maxActive.
func EvictionCandidates(active []Device, deviceName string, maxActive int) []Device {
	others := make([]Device, 0, len(active))
	for _, item := range active {
		if item.IsActive && item.Name != deviceName {
			others = append(others, item)
		}
	}
	if len(others) < maxActive {
		return nil
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].LastActivity.Before(others[j].LastActivity)
	})
	return others[:len(others)-maxActive+1]
}

// EvictionDetails is the payload stored with a max_devices_exceeded violation.
func EvictionDetails(evicted Device, newDeviceName string) map[string]any {
	return map[string]any{
		"deactivated_device": evicted.Name,
		"new_device":         newDeviceName,
	}
}

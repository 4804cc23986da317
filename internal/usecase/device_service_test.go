package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestDeviceService_EvictsLeastRecentDeviceAtCap(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)

	tick := fixedNow
	m.deviceSvc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	laptop, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: "Laptop"})
	if err != nil {
		t.Fatalf("register laptop: %v", err)
	}
	if _, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: "Phone", DeviceType: "mobile"}); err != nil {
		t.Fatalf("register phone: %v", err)
	}

	tablet, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: "Tablet", DeviceType: "tablet"})
	if err != nil {
		t.Fatalf("register tablet: %v", err)
	}
	if len(tablet.Evicted) != 1 || tablet.Evicted[0].ID != laptop.Device.ID {
		t.Fatalf("expected laptop to be evicted, got %+v", tablet.Evicted)
	}
	if len(tablet.Violations) != 1 || tablet.Violations[0].Type != device.ViolationMaxDevicesExceeded {
		t.Fatalf("expected max devices violation, got %+v", tablet.Violations)
	}
	if details := tablet.Violations[0].Details; details["deactivated_device"] != "Laptop" || details["new_device"] != "Tablet" {
		t.Fatalf("unexpected violation details: %v", details)
	}

	session, err := m.deviceSvc.Session(ctx, laptop.Session.ID)
	if err != nil {
		t.Fatalf("get laptop session: %v", err)
	}
	if session.Usable(tick) {
		t.Fatalf("expected evicted device session to be unusable")
	}

	active, err := m.deviceSvc.ListMine(ctx, student("stu"))
	if err != nil {
		t.Fatalf("list devices: %v", err)
	}
	if len(active) != device.DefaultMaxActive {
		t.Fatalf("expected %d active devices, got %d", device.DefaultMaxActive, len(active))
	}

	violations, err := m.deviceSvc.ListMyViolations(ctx, student("stu"))
	if err != nil {
		t.Fatalf("list violations: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if err := m.deviceSvc.ResolveViolation(ctx, violations[0].ID, "resolved"); err != nil {
		t.Fatalf("resolve violation: %v", err)
	}
	if err := m.deviceSvc.ResolveViolation(ctx, violations[0].ID, "active"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for active status, got %v", err)
	}
}

func TestDeviceService_TighterPolicyEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)

	tick := fixedNow
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	roomy := NewDeviceService(m.devices, device.Policy{MaxActive: 4, SessionTTL: time.Hour}, &sequenceIDs{prefix: "roomy"}, &sequenceIDs{prefix: "tok"}, nil)
	roomy.now = clock
	for _, name := range []string{"Laptop", "Phone", "Tablet"} {
		if _, err := roomy.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	strict := NewDeviceService(m.devices, device.Policy{MaxActive: 1, SessionTTL: time.Hour}, &sequenceIDs{prefix: "strict"}, &sequenceIDs{prefix: "tok2"}, nil)
	strict.now = clock
	result, err := strict.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: "Desktop", DeviceType: "desktop"})
	if err != nil {
		t.Fatalf("register desktop: %v", err)
	}
	if len(result.Evicted) != 3 || len(result.Violations) != 3 {
		t.Fatalf("expected three evictions with violations, got %d and %d", len(result.Evicted), len(result.Violations))
	}
	for i, name := range []string{"Laptop", "Phone", "Tablet"} {
		if result.Evicted[i].Name != name {
			t.Fatalf("eviction %d is %s, want %s", i, result.Evicted[i].Name, name)
		}
	}

	active, err := strict.ListMine(ctx, student("stu"))
	if err != nil {
		t.Fatalf("list devices: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Desktop" {
		t.Fatalf("expected only the new device to stay active, got %+v", active)
	}
	violations, err := strict.ListMyViolations(ctx, student("stu"))
	if err != nil {
		t.Fatalf("list violations: %v", err)
	}
	if len(violations) != 3 {
		t.Fatalf("expected one violation per eviction, got %d", len(violations))
	}
}

func TestDeviceService_ReloginSameDeviceDoesNotEvict(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)

	for _, name := range []string{"Laptop", "Phone", "Laptop", "Phone"} {
		result, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: name})
		if err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
		if len(result.Evicted) != 0 {
			t.Fatalf("unexpected eviction when re-logging %s", name)
		}
	}
}

func TestDeviceService_ConcurrentLoginsRespectCap(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "stu", user.RoleStudent)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "stu", DeviceName: fmt.Sprintf("device-%d", i)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	active, err := m.devices.ListActiveByUser(ctx, "stu")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != device.DefaultMaxActive {
		t.Fatalf("expected %d active devices after concurrent logins, got %d", device.DefaultMaxActive, len(active))
	}
}

func TestDeviceService_DeviceNameFallbacks(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		name, userAgent, want string
	}{
		"explicit":   {name: " Work PC ", userAgent: "curl/8", want: "Work PC"},
		"user agent": {userAgent: "Mozilla/5.0", want: "Mozilla/5.0"},
		"unknown":    {want: "unknown device"},
	}
	for label, tc := range cases {
		if got := normalizeDeviceName(tc.name, tc.userAgent); got != tc.want {
			t.Fatalf("%s: got %q want %q", label, got, tc.want)
		}
	}
}

func TestDeviceService_LogoutMineRejectsForeignDevice(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	ctx := t.Context()
	m.addProfile(t, "owner", user.RoleStudent)
	m.addProfile(t, "other", user.RoleStudent)

	registered, err := m.deviceSvc.Register(ctx, RegisterDeviceInput{UserID: "owner", DeviceName: "Laptop"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.deviceSvc.LogoutMine(ctx, student("other"), registered.Device.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign device, got %v", err)
	}
	if err := m.deviceSvc.LogoutMine(ctx, student("owner"), registered.Device.ID); err != nil {
		t.Fatalf("logout own device: %v", err)
	}
	if err := m.deviceSvc.ForceLogout(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown device, got %v", err)
	}
}

func TestDeviceService_RejectsInvalidType(t *testing.T) {
	t.Parallel()

	m := newMarketplace(t)
	_, err := m.deviceSvc.Register(t.Context(), RegisterDeviceInput{UserID: "stu", DeviceType: "smartwatch"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

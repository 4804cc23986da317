package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/device"
)

type DeviceRepository struct {
	s *Store
}

func NewDeviceRepository(s *Store) *DeviceRepository {
	return &DeviceRepository{s: s}
}

func (r *DeviceRepository) Register(_ context.Context, params device.RegisterParams) (device.RegisterResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := params.Now
	var result device.RegisterResult

	active := r.s.activeDevices(params.UserID)
	evictions := device.EvictionCandidates(active, params.DeviceName, params.Policy.MaxActive)
	violationIDs := make([]string, 0, len(evictions))
	for range evictions {
		violationID, err := params.NewViolationID()
		if err != nil {
			return device.RegisterResult{}, fmt.Errorf("generate violation id: %w", err)
		}
		violationIDs = append(violationIDs, violationID)
	}
	for i, evicted := range evictions {
		r.s.deactivate(evicted.ID, now)
		evicted.IsActive = false
		result.Evicted = append(result.Evicted, evicted)

		violation := device.Violation{
			ID:        violationIDs[i],
			UserID:    params.UserID,
			Type:      device.ViolationMaxDevicesExceeded,
			Details:   device.EvictionDetails(evicted, params.DeviceName),
			Status:    device.ViolationActive,
			CreatedAt: now,
		}
		r.s.violations[violation.ID] = violation
		result.Violations = append(result.Violations, violation)
	}

	current, found := device.Device{}, false
	for _, item := range r.s.devices {
		if item.UserID == params.UserID && item.Name == params.DeviceName {
			current, found = item, true
			break
		}
	}
	if !found {
		current = device.Device{
			ID:        params.DeviceID,
			UserID:    params.UserID,
			Name:      params.DeviceName,
			CreatedAt: now,
		}
	}
	current.Type = params.DeviceType
	current.IPAddress = params.IPAddress
	current.UserAgent = params.UserAgent
	current.IsActive = true
	current.LastActivity = now
	current.UpdatedAt = now
	r.s.devices[current.ID] = current
	result.Device = current

	session := device.Session{
		ID:           params.SessionID,
		UserID:       params.UserID,
		DeviceID:     current.ID,
		Token:        params.SessionToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(params.Policy.SessionTTL),
		DeviceActive: true,
	}
	r.s.sessions[session.ID] = session
	result.Session = session

	return result, nil
}

func (r *DeviceRepository) GetSession(_ context.Context, sessionID string) (device.Session, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	session, ok := r.s.sessions[sessionID]
	if !ok {
		return device.Session{}, false, nil
	}
	session.DeviceActive = r.s.devices[session.DeviceID].IsActive
	return session, true, nil
}

func (r *DeviceRepository) LogoutSession(_ context.Context, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[sessionID]
	if !ok || session.LoggedOutAt != nil {
		return nil
	}
	at := r.s.now().UTC()
	session.LoggedOutAt = &at
	r.s.sessions[sessionID] = session
	return nil
}

func (r *DeviceRepository) GetByID(_ context.Context, deviceID string) (device.Device, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.devices[deviceID]
	return item, ok, nil
}

func (r *DeviceRepository) ListActiveByUser(_ context.Context, userID string) ([]device.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.s.activeDevices(userID)
	sortByActivity(out)
	return out, nil
}

func (r *DeviceRepository) Deactivate(_ context.Context, deviceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.devices[deviceID]; !ok {
		return false, nil
	}
	r.s.deactivate(deviceID, r.s.now().UTC())
	return true, nil
}

func (r *DeviceRepository) ListUsersWithDevices(_ context.Context) ([]device.UserDevices, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	grouped := make(map[string]*device.UserDevices)
	for _, item := range r.s.devices {
		if !item.IsActive {
			continue
		}
		group, ok := grouped[item.UserID]
		if !ok {
			profile := r.s.profiles[item.UserID]
			group = &device.UserDevices{UserID: item.UserID, UserName: profile.FullName, UserEmail: profile.Email}
			grouped[item.UserID] = group
		}
		group.Devices = append(group.Devices, item)
	}

	out := make([]device.UserDevices, 0, len(grouped))
	for _, group := range grouped {
		sortByActivity(group.Devices)
		out = append(out, *group)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Devices) != len(out[j].Devices) {
			return len(out[i].Devices) > len(out[j].Devices)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *DeviceRepository) ListViolations(_ context.Context, filter device.ViolationFilter) ([]device.Violation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]device.Violation, 0)
	for _, item := range r.s.violations {
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		profile := r.s.profiles[item.UserID]
		item.UserName = profile.FullName
		item.UserEmail = profile.Email
		item.Details = maps.Clone(item.Details)
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *DeviceRepository) ResolveViolation(_ context.Context, violationID string, status device.ViolationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.violations[violationID]
	if !ok {
		return false, nil
	}
	at := r.s.now().UTC()
	item.Status = status
	item.ResolvedAt = &at
	r.s.violations[violationID] = item
	return true, nil
}

// activeDevices lists a user's active devices; the caller holds the lock.
func (s *Store) activeDevices(userID string) []device.Device {
	out := make([]device.Device, 0)
	for _, item := range s.devices {
		if item.UserID == userID && item.IsActive {
			out = append(out, item)
		}
	}
	return out
}

// deactivate marks a device inactive and logs out its open sessions; the
// caller holds the write lock.
func (s *Store) deactivate(deviceID string, at time.Time) {
	item := s.devices[deviceID]
	item.IsActive = false
	s.devices[deviceID] = item

	for id, session := range s.sessions {
		if session.DeviceID == deviceID && session.LoggedOutAt == nil {
			loggedOut := at
			session.LoggedOutAt = &loggedOut
			s.sessions[id] = session
		}
	}
}

func sortByActivity(items []device.Device) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].LastActivity.After(items[j].LastActivity) })
}

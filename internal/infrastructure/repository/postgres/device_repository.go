package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type DeviceRepository struct {
	db *sqlx.DB
}

func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Register holds a per-user advisory lock for the whole transaction so
// concurrent logins of one user see each other's devices.
func (r *DeviceRepository) Register(ctx context.Context, params device.RegisterParams) (device.RegisterResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return device.RegisterResult{}, fmt.Errorf("begin tx register device: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "user_devices:"+params.UserID); err != nil {
		return device.RegisterResult{}, fmt.Errorf("lock user devices: %w", err)
	}

	activeQuery, activeArgs, err := qb.Select("*").From("user_devices").
		Where(qb.Eq("user_id", params.UserID), qb.Expr("is_active")).
		ToSQL()
	if err != nil {
		return device.RegisterResult{}, fmt.Errorf("build list active devices query: %w", err)
	}
	var activeRows []userDeviceTableModel
	if err := tx.SelectContext(ctx, &activeRows, activeQuery, activeArgs...); err != nil {
		return device.RegisterResult{}, fmt.Errorf("list active devices: %w", err)
	}
	active := make([]device.Device, 0, len(activeRows))
	for _, row := range activeRows {
		active = append(active, deviceFromRow(row))
	}

	now := params.Now
	var result device.RegisterResult
	for _, evicted := range device.EvictionCandidates(active, params.DeviceName, params.Policy.MaxActive) {
		if err := deactivateDevice(ctx, tx, evicted.ID, now); err != nil {
			return device.RegisterResult{}, err
		}
		evicted.IsActive = false
		result.Evicted = append(result.Evicted, evicted)

		violationID, err := params.NewViolationID()
		if err != nil {
			return device.RegisterResult{}, fmt.Errorf("generate violation id: %w", err)
		}
		violation := device.Violation{
			ID:        violationID,
			UserID:    params.UserID,
			Type:      device.ViolationMaxDevicesExceeded,
			Details:   device.EvictionDetails(evicted, params.DeviceName),
			Status:    device.ViolationActive,
			CreatedAt: now,
		}
		details, err := encodeJSONObject(violation.Details)
		if err != nil {
			return device.RegisterResult{}, fmt.Errorf("encode violation details: %w", err)
		}
		violationQuery, violationArgs, err := qb.InsertModel("device_violations", deviceViolationInsertModel{
			PublicID:      violation.ID,
			UserID:        violation.UserID,
			ViolationType: string(violation.Type),
			Details:       details,
			Status:        string(violation.Status),
			CreatedAt:     violation.CreatedAt,
		}, "")
		if err != nil {
			return device.RegisterResult{}, fmt.Errorf("build create violation query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, violationQuery, violationArgs...); err != nil {
			return device.RegisterResult{}, fmt.Errorf("create violation: %w", err)
		}
		result.Violations = append(result.Violations, violation)
	}

	upsertQuery, upsertArgs, err := qb.InsertModel("user_devices", userDeviceInsertModel{
		PublicID:     params.DeviceID,
		UserID:       params.UserID,
		DeviceName:   params.DeviceName,
		DeviceType:   string(params.DeviceType),
		IPAddress:    params.IPAddress,
		UserAgent:    params.UserAgent,
		IsActive:     true,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, `ON CONFLICT (user_id, device_name) DO UPDATE SET
		device_type = EXCLUDED.device_type,
		ip_address = EXCLUDED.ip_address,
		user_agent = EXCLUDED.user_agent,
		is_active = TRUE,
		last_activity = EXCLUDED.last_activity,
		updated_at = EXCLUDED.updated_at
	RETURNING *`)
	if err != nil {
		return device.RegisterResult{}, fmt.Errorf("build upsert device query: %w", err)
	}
	var deviceRow userDeviceTableModel
	if err := tx.GetContext(ctx, &deviceRow, upsertQuery, upsertArgs...); err != nil {
		return device.RegisterResult{}, fmt.Errorf("upsert device: %w", err)
	}
	result.Device = deviceFromRow(deviceRow)

	session := device.Session{
		ID:           params.SessionID,
		UserID:       params.UserID,
		DeviceID:     result.Device.ID,
		Token:        params.SessionToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(params.Policy.SessionTTL),
		DeviceActive: true,
	}
	sessionQuery, sessionArgs, err := qb.InsertModel("device_sessions", deviceSessionInsertModel{
		PublicID:     session.ID,
		UserID:       session.UserID,
		DeviceID:     session.DeviceID,
		SessionToken: session.Token,
		CreatedAt:    session.CreatedAt,
		ExpiresAt:    session.ExpiresAt,
	}, "")
	if err != nil {
		return device.RegisterResult{}, fmt.Errorf("build create session query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sessionQuery, sessionArgs...); err != nil {
		return device.RegisterResult{}, fmt.Errorf("create session: %w", err)
	}
	result.Session = session

	if err := tx.Commit(); err != nil {
		return device.RegisterResult{}, fmt.Errorf("commit register device tx: %w", err)
	}
	return result, nil
}

func deactivateDevice(ctx context.Context, db sqlx.ExtContext, deviceID string, at time.Time) error {
	deviceQuery, deviceArgs, err := qb.Update("user_devices").
		Set("is_active", false).
		Set("updated_at", at).
		Where(qb.Eq("public_id", deviceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate device query: %w", err)
	}
	if _, err := db.ExecContext(ctx, deviceQuery, deviceArgs...); err != nil {
		return fmt.Errorf("deactivate device: %w", err)
	}

	sessionQuery, sessionArgs, err := qb.Update("device_sessions").
		Set("logged_out_at", at).
		Where(qb.Eq("device_id", deviceID), qb.IsNull("logged_out_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build logout device sessions query: %w", err)
	}
	if _, err := db.ExecContext(ctx, sessionQuery, sessionArgs...); err != nil {
		return fmt.Errorf("logout device sessions: %w", err)
	}
	return nil
}

func (r *DeviceRepository) GetSession(ctx context.Context, sessionID string) (device.Session, bool, error) {
	query, args, err := qb.Select("s.*", "COALESCE(d.is_active, FALSE) AS device_active").
		From("device_sessions s LEFT JOIN user_devices d ON d.public_id = s.device_id").
		Where(qb.Eq("s.public_id", sessionID)).
		ToSQL()
	if err != nil {
		return device.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row deviceSessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return device.Session{}, false, nil
		}
		return device.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	return device.Session{
		ID:           row.PublicID,
		UserID:       row.UserID,
		DeviceID:     row.DeviceID,
		Token:        row.SessionToken,
		CreatedAt:    row.CreatedAt.UTC(),
		ExpiresAt:    row.ExpiresAt.UTC(),
		LoggedOutAt:  nullTimePtr(row.LoggedOutAt),
		DeviceActive: row.DeviceActive,
	}, true, nil
}

func (r *DeviceRepository) LogoutSession(ctx context.Context, sessionID string) error {
	query, args, err := qb.Update("device_sessions").
		SetExpr("logged_out_at", "NOW()").
		Where(qb.Eq("public_id", sessionID), qb.IsNull("logged_out_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build logout session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("logout session: %w", err)
	}
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID string) (device.Device, bool, error) {
	query, args, err := qb.Select("*").From("user_devices").Where(qb.Eq("public_id", deviceID)).ToSQL()
	if err != nil {
		return device.Device{}, false, fmt.Errorf("build get device query: %w", err)
	}

	var row userDeviceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return device.Device{}, false, nil
		}
		return device.Device{}, false, fmt.Errorf("get device: %w", err)
	}
	return deviceFromRow(row), true, nil
}

func (r *DeviceRepository) ListActiveByUser(ctx context.Context, userID string) ([]device.Device, error) {
	query, args, err := qb.Select("*").From("user_devices").
		Where(qb.Eq("user_id", userID), qb.Expr("is_active")).
		OrderBy("last_activity DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active devices query: %w", err)
	}

	var rows []userDeviceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active devices: %w", err)
	}

	out := make([]device.Device, 0, len(rows))
	for _, row := range rows {
		out = append(out, deviceFromRow(row))
	}
	return out, nil
}

func (r *DeviceRepository) Deactivate(ctx context.Context, deviceID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx deactivate device: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM user_devices WHERE public_id = $1)`, deviceID); err != nil {
		return false, fmt.Errorf("check device: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := deactivateDevice(ctx, tx, deviceID, time.Now().UTC()); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit deactivate device tx: %w", err)
	}
	return true, nil
}

func (r *DeviceRepository) ListUsersWithDevices(ctx context.Context) ([]device.UserDevices, error) {
	query, args, err := qb.Select(
		"d.*",
		"COALESCE(p.full_name, '') AS user_name",
		"COALESCE(p.email, '') AS user_email",
		"COUNT(1) OVER (PARTITION BY d.user_id) AS device_count",
	).
		From("user_devices d LEFT JOIN profiles p ON p.public_id = d.user_id").
		Where(qb.Expr("d.is_active")).
		OrderBy("device_count DESC", "d.user_id", "d.last_activity DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users with devices query: %w", err)
	}

	var rows []struct {
		userDeviceOwnerModel
		DeviceCount int `db:"device_count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users with devices: %w", err)
	}

	out := make([]device.UserDevices, 0)
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].UserID != row.UserID {
			out = append(out, device.UserDevices{
				UserID:    row.UserID,
				UserName:  row.UserName,
				UserEmail: row.UserEmail,
			})
		}
		group := &out[len(out)-1]
		group.Devices = append(group.Devices, deviceFromRow(row.userDeviceTableModel))
	}
	return out, nil
}

func (r *DeviceRepository) ListViolations(ctx context.Context, filter device.ViolationFilter) ([]device.Violation, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.UserID != "" {
		conds = append(conds, qb.Eq("v.user_id", filter.UserID))
	}
	if filter.Status != "" {
		conds = append(conds, qb.Eq("v.status", string(filter.Status)))
	}
	query, args, err := qb.Select(
		"v.*",
		"COALESCE(p.full_name, '') AS user_name",
		"COALESCE(p.email, '') AS user_email",
	).
		From("device_violations v LEFT JOIN profiles p ON p.public_id = v.user_id").
		Where(conds...).
		OrderBy("v.created_at DESC", "v.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list violations query: %w", err)
	}

	var rows []deviceViolationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}

	out := make([]device.Violation, 0, len(rows))
	for _, row := range rows {
		out = append(out, device.Violation{
			ID:         row.PublicID,
			UserID:     row.UserID,
			Type:       device.ViolationType(row.ViolationType),
			Details:    decodeJSONObject(row.Details),
			Status:     device.ViolationStatus(row.Status),
			CreatedAt:  row.CreatedAt.UTC(),
			ResolvedAt: nullTimePtr(row.ResolvedAt),
			UserName:   row.UserName,
			UserEmail:  row.UserEmail,
		})
	}
	return out, nil
}

func (r *DeviceRepository) ResolveViolation(ctx context.Context, violationID string, status device.ViolationStatus) (bool, error) {
	query, args, err := qb.Update("device_violations").
		Set("status", string(status)).
		SetExpr("resolved_at", "NOW()").
		Where(qb.Eq("public_id", violationID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build resolve violation query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("resolve violation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected resolve violation: %w", err)
	}
	return affected > 0, nil
}

func deviceFromRow(row userDeviceTableModel) device.Device {
	return device.Device{
		ID:           row.PublicID,
		UserID:       row.UserID,
		Name:         row.DeviceName,
		Type:         device.Type(row.DeviceType),
		IPAddress:    row.IPAddress,
		UserAgent:    row.UserAgent,
		IsActive:     row.IsActive,
		LastActivity: row.LastActivity.UTC(),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

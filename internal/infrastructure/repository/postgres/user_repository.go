package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) error {
	insertModel := profileInsertModel{
		PublicID:     profile.ID,
		Email:        profile.Email,
		PasswordHash: profile.PasswordHash,
		FullName:     profile.FullName,
		AvatarURL:    profile.AvatarURL,
		Role:         string(profile.Role),
		Bio:          profile.Bio,
		Phone:        profile.Phone,
		UniversityID: nullableString(profile.UniversityID),
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
	query, args, err := qb.InsertModel("profiles", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "profiles_email_key") {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.Profile, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.Profile, bool, error) {
	return r.getOne(ctx, "email", qb.Eq("email", email))
}

func (r *UserRepository) getOne(ctx context.Context, by string, cond qb.Condition) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").Where(cond).ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get profile by %s query: %w", by, err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get profile by %s: %w", by, err)
	}
	return profileFromRow(row), true, nil
}

func (r *UserRepository) Update(ctx context.Context, profile user.Profile) error {
	query, args, err := qb.Update("profiles").
		Set("full_name", profile.FullName).
		Set("avatar_url", profile.AvatarURL).
		Set("bio", profile.Bio).
		Set("phone", profile.Phone).
		Set("university_id", nullableString(profile.UniversityID)).
		Set("updated_at", profile.UpdatedAt).
		Where(qb.Eq("public_id", profile.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role user.Role) (bool, error) {
	query, args, err := qb.Update("profiles").
		Set("role", string(role)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update profile role query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update profile role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update profile role: %w", err)
	}

	return affected > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]user.Profile, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.Role != "" {
		conds = append(conds, qb.Eq("role", string(filter.Role)))
	}
	if filter.Search != "" {
		conds = append(conds, qb.ILike(filter.Search, "full_name", "email"))
	}
	query, args, err := qb.Select("*").From("profiles").
		Where(conds...).
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	query, args, err := qb.Select("public_id").From("profiles").
		Where(qb.Eq("role", string(role))).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profile ids by role query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list profile ids by role: %w", err)
	}
	return out, nil
}

func (r *UserRepository) ListInstructors(ctx context.Context) ([]user.InstructorSummary, error) {
	query, args, err := qb.Select(
		"p.*",
		"COUNT(c.id) FILTER (WHERE c.is_published AND c.deleted_at IS NULL) AS published_courses",
	).
		From("profiles p LEFT JOIN courses c ON c.instructor_id = p.public_id").
		Where(qb.Eq("p.role", string(user.RoleInstructor))).
		GroupBy("p.id").
		OrderBy("p.full_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list instructors query: %w", err)
	}

	var rows []instructorRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}

	out := make([]user.InstructorSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.InstructorSummary{
			Profile:          profileFromRow(row.profileTableModel),
			PublishedCourses: row.PublishedCourses,
		})
	}
	return out, nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (user.RoleCounts, error) {
	query, args, err := qb.Select("role", "COUNT(1) AS count").From("profiles").
		GroupBy("role").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count profiles by role query: %w", err)
	}

	var rows []roleCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count profiles by role: %w", err)
	}

	out := make(user.RoleCounts, len(rows))
	for _, row := range rows {
		out[user.Role(row.Role)] = row.Count
	}
	return out, nil
}

func profileFromRow(row profileTableModel) user.Profile {
	return user.Profile{
		ID:           row.PublicID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FullName:     row.FullName,
		AvatarURL:    row.AvatarURL,
		Role:         user.Role(row.Role),
		Bio:          row.Bio,
		Phone:        row.Phone,
		UniversityID: nullStringValue(row.UniversityID),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	qb "github.com/riskibarqy/course-marketplace/internal/platform/querybuilder"
)

var certificateColumns = []string{
	"cert.*",
	"COALESCE(c.title, '') AS course_title",
	"COALESCE(p.full_name, '') AS recipient_name",
}

const certificateFrom = "certificates cert " +
	"LEFT JOIN courses c ON c.public_id = cert.course_id " +
	"LEFT JOIN profiles p ON p.public_id = cert.user_id"

type CertificateRepository struct {
	db *sqlx.DB
}

func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, item certificate.Certificate) (certificate.Certificate, error) {
	query, args, err := qb.InsertModel("certificates", certificateInsertModel{
		PublicID:          item.ID,
		UserID:            item.UserID,
		CourseID:          item.CourseID,
		CertificateNumber: item.Number,
		IssuedAt:          item.IssuedAt,
	}, qb.OnConflictDoNothing("user_id", "course_id"))
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("build create certificate query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return certificate.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}

	stored, ok, err := r.GetByUserAndCourse(ctx, item.UserID, item.CourseID)
	if err != nil {
		return certificate.Certificate{}, err
	}
	if !ok {
		return certificate.Certificate{}, fmt.Errorf("certificate for user %s course %s vanished after insert", item.UserID, item.CourseID)
	}
	return stored, nil
}

func (r *CertificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (certificate.Certificate, bool, error) {
	return r.getOne(ctx, "user and course", qb.Eq("cert.user_id", userID), qb.Eq("cert.course_id", courseID))
}

func (r *CertificateRepository) GetByNumber(ctx context.Context, number string) (certificate.Certificate, bool, error) {
	return r.getOne(ctx, "number", qb.Eq("cert.certificate_number", number))
}

func (r *CertificateRepository) getOne(ctx context.Context, by string, conds ...qb.Condition) (certificate.Certificate, bool, error) {
	query, args, err := qb.Select(certificateColumns...).From(certificateFrom).Where(conds...).ToSQL()
	if err != nil {
		return certificate.Certificate{}, false, fmt.Errorf("build get certificate by %s query: %w", by, err)
	}

	var row certificateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return certificate.Certificate{}, false, nil
		}
		return certificate.Certificate{}, false, fmt.Errorf("get certificate by %s: %w", by, err)
	}
	return certificateFromRow(row), true, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string) ([]certificate.Certificate, error) {
	query, args, err := qb.Select(certificateColumns...).From(certificateFrom).
		Where(qb.Eq("cert.user_id", userID)).
		OrderBy("cert.issued_at DESC", "cert.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list certificates query: %w", err)
	}

	var rows []certificateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}

	out := make([]certificate.Certificate, 0, len(rows))
	for _, row := range rows {
		out = append(out, certificateFromRow(row))
	}
	return out, nil
}

func certificateFromRow(row certificateTableModel) certificate.Certificate {
	return certificate.Certificate{
		ID:            row.PublicID,
		UserID:        row.UserID,
		CourseID:      row.CourseID,
		Number:        row.CertificateNumber,
		IssuedAt:      row.IssuedAt.UTC(),
		CourseTitle:   row.CourseTitle,
		RecipientName: row.RecipientName,
	}
}

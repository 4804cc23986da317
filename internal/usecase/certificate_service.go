package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
)

type CertificateService struct {
	repo        certificate.Repository
	enrollments enrollment.Repository
	ids         id.Generator
	now         func() time.Time
}

func NewCertificateService(repo certificate.Repository, enrollments enrollment.Repository, ids id.Generator) *CertificateService {
	return &CertificateService{
		repo:        repo,
		enrollments: enrollments,
		ids:         ids,
		now:         time.Now,
	}
}

// Issue returns the user's certificate for a completed course, creating it on
// first call.
func (s *CertificateService) Issue(ctx context.Context, userID, courseID string) (certificate.Certificate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CertificateService.Issue")
	defer span.End()

	item, exists, err := s.enrollments.Get(ctx, userID, courseID)
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("get enrollment: %w", err)
	}
	if !exists {
		return certificate.Certificate{}, fmt.Errorf("%w: not enrolled in course", ErrNotFound)
	}
	if !item.IsCompleted() {
		return certificate.Certificate{}, fmt.Errorf("%w: course is not completed", ErrFailedPrecondition)
	}

	if existing, found, err := s.repo.GetByUserAndCourse(ctx, userID, courseID); err != nil {
		return certificate.Certificate{}, fmt.Errorf("get certificate: %w", err)
	} else if found {
		return existing, nil
	}

	certificateID, err := s.ids.NewID()
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("generate certificate id: %w", err)
	}
	issuedAt := s.now().UTC()
	stored, err := s.repo.Create(ctx, certificate.Certificate{
		ID:       certificateID,
		UserID:   userID,
		CourseID: courseID,
		Number:   certificate.NewNumber(issuedAt, userID),
		IssuedAt: issuedAt,
	})
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}
	return stored, nil
}

func (s *CertificateService) ListMine(ctx context.Context, userID string) ([]certificate.Certificate, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return items, nil
}

// Verify looks up a certificate by its public number.
func (s *CertificateService) Verify(ctx context.Context, number string) (certificate.Certificate, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return certificate.Certificate{}, fmt.Errorf("%w: certificate number is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("get certificate by number: %w", err)
	}
	if !exists {
		return certificate.Certificate{}, fmt.Errorf("%w: certificate not found", ErrNotFound)
	}
	return item, nil
}

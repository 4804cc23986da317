package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
)

type CertificateRepository struct {
	s *Store
}

func NewCertificateRepository(s *Store) *CertificateRepository {
	return &CertificateRepository{s: s}
}

func (r *CertificateRepository) Create(_ context.Context, item certificate.Certificate) (certificate.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(item.UserID, item.CourseID)
	if existing, ok := r.s.certificates[key]; ok {
		return r.decorate(existing), nil
	}
	r.s.certificates[key] = item
	return r.decorate(item), nil
}

func (r *CertificateRepository) GetByUserAndCourse(_ context.Context, userID, courseID string) (certificate.Certificate, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.certificates[pairKey(userID, courseID)]
	if !ok {
		return certificate.Certificate{}, false, nil
	}
	return r.decorate(item), true, nil
}

func (r *CertificateRepository) GetByNumber(_ context.Context, number string) (certificate.Certificate, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.certificates {
		if item.Number == number {
			return r.decorate(item), true, nil
		}
	}
	return certificate.Certificate{}, false, nil
}

func (r *CertificateRepository) ListByUser(_ context.Context, userID string) ([]certificate.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]certificate.Certificate, 0)
	for _, item := range r.s.certificates {
		if item.UserID == userID {
			out = append(out, r.decorate(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (r *CertificateRepository) decorate(item certificate.Certificate) certificate.Certificate {
	item.CourseTitle = r.s.courses[item.CourseID].Title
	item.RecipientName = r.s.profiles[item.UserID].FullName
	return item
}

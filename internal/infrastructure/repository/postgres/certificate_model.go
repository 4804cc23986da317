package postgres

import "time"

type certificateTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	UserID            string    `db:"user_id"`
	CourseID          string    `db:"course_id"`
	CertificateNumber string    `db:"certificate_number"`
	IssuedAt          time.Time `db:"issued_at"`
	CourseTitle       string    `db:"course_title"`
	RecipientName     string    `db:"recipient_name"`
}

type certificateInsertModel struct {
	PublicID          string    `db:"public_id"`
	UserID            string    `db:"user_id"`
	CourseID          string    `db:"course_id"`
	CertificateNumber string    `db:"certificate_number"`
	IssuedAt          time.Time `db:"issued_at"`
}

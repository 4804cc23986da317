package httpapi

import (
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/certificate"
	"github.com/riskibarqy/course-marketplace/internal/domain/coupon"
	"github.com/riskibarqy/course-marketplace/internal/domain/course"
	"github.com/riskibarqy/course-marketplace/internal/domain/device"
	"github.com/riskibarqy/course-marketplace/internal/domain/enrollment"
	"github.com/riskibarqy/course-marketplace/internal/domain/notification"
	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/domain/quiz"
	"github.com/riskibarqy/course-marketplace/internal/domain/review"
	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/domain/wishlist"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

type profileDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	UniversityID string    `json:"university_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type instructorDTO struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	Bio              string `json:"bio,omitempty"`
	PublishedCourses int    `json:"published_courses"`
}

type instructorProfileDTO struct {
	instructorDTO
	Courses       []courseDTO `json:"courses"`
	TotalStudents int         `json:"total_students"`
	AverageRating float64     `json:"average_rating"`
}

type loginDTO struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Profile     profileDTO     `json:"profile"`
	Device      deviceDTO      `json:"device"`
	Violations  []violationDTO `json:"violations,omitempty"`
}

type universityDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CourseCount int    `json:"course_count"`
}

type courseDTO struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty"`
	PreviewVideoURL  string    `json:"preview_video_url,omitempty"`
	Price            int64     `json:"price"`
	OriginalPrice    int64     `json:"original_price,omitempty"`
	InstructorID     string    `json:"instructor_id"`
	InstructorName   string    `json:"instructor_name,omitempty"`
	CategoryID       string    `json:"category_id,omitempty"`
	CategoryName     string    `json:"category_name,omitempty"`
	UniversityID     string    `json:"university_id"`
	UniversityName   string    `json:"university_name,omitempty"`
	Level            string    `json:"level"`
	Language         string    `json:"language,omitempty"`
	DurationHours    int       `json:"duration_hours"`
	IsPublished      bool      `json:"is_published"`
	IsFeatured       bool      `json:"is_featured"`
	EnrollmentCount  int       `json:"enrollment_count"`
	AverageRating    float64   `json:"average_rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type lessonDTO struct {
	ID              string `json:"id"`
	CourseID        string `json:"course_id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ContentType     string `json:"content_type"`
	VideoURL        string `json:"video_url,omitempty"`
	TextContent     string `json:"text_content,omitempty"`
	ResourceURL     string `json:"resource_url,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Position        int    `json:"position"`
	IsFreePreview   bool   `json:"is_free_preview"`
}

type courseDetailDTO struct {
	Course     courseDTO   `json:"course"`
	Lessons    []lessonDTO `json:"lessons"`
	Enrolled   bool        `json:"enrolled"`
	FullAccess bool        `json:"full_access"`
}

type reviewDTO struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CourseID          string    `json:"course_id"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment,omitempty"`
	ReviewerName      string    `json:"reviewer_name,omitempty"`
	ReviewerAvatarURL string    `json:"reviewer_avatar_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type enrollmentDTO struct {
	ID                 string     `json:"id"`
	CourseID           string     `json:"course_id"`
	ProgressPercentage int        `json:"progress_percentage"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CourseTitle        string     `json:"course_title,omitempty"`
	CourseSlug         string     `json:"course_slug,omitempty"`
	CourseThumbnailURL string     `json:"course_thumbnail_url,omitempty"`
}

type courseProgressDTO struct {
	Enrollment         enrollmentDTO `json:"enrollment"`
	CompletedLessonIDs []string      `json:"completed_lesson_ids"`
}

type lessonProgressDTO struct {
	Enrollment       enrollmentDTO   `json:"enrollment"`
	CompletedLessons int             `json:"completed_lessons"`
	TotalLessons     int             `json:"total_lessons"`
	JustCompleted    bool            `json:"just_completed"`
	Certificate      *certificateDTO `json:"certificate,omitempty"`
}

type certificateDTO struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Number        string    `json:"certificate_number"`
	IssuedAt      time.Time `json:"issued_at"`
	CourseTitle   string    `json:"course_title,omitempty"`
	RecipientName string    `json:"recipient_name,omitempty"`
}

type certificateVerificationDTO struct {
	Number        string    `json:"certificate_number"`
	RecipientName string    `json:"recipient_name"`
	CourseTitle   string    `json:"course_title"`
	IssuedAt      time.Time `json:"issued_at"`
}

type paymentDTO struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CourseID       string    `json:"course_id"`
	Amount         int64     `json:"amount"`
	Method         string    `json:"payment_method"`
	Status         string    `json:"status"`
	TransactionID  string    `json:"transaction_id,omitempty"`
	ScreenshotURL  string    `json:"screenshot_url,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CouponCode     string    `json:"coupon_code,omitempty"`
	CardholderName string    `json:"cardholder_name,omitempty"`
	CardLast4      string    `json:"card_last4,omitempty"`
	CourseTitle    string    `json:"course_title,omitempty"`
	UserName       string    `json:"user_name,omitempty"`
	UserEmail      string    `json:"user_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type paymentLedgerDTO struct {
	Payments        []paymentDTO   `json:"payments"`
	CompletedAmount int64          `json:"completed_amount"`
	PendingAmount   int64          `json:"pending_amount"`
	CountByStatus   map[string]int `json:"count_by_status"`
}

type couponDTO struct {
	ID                 string     `json:"id"`
	Code               string     `json:"code"`
	DiscountPercentage int        `json:"discount_percentage"`
	MaxUses            int        `json:"max_uses"`
	CurrentUses        int        `json:"current_uses"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	IsActive           bool       `json:"is_active"`
	CourseID           string     `json:"course_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type couponQuoteDTO struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
	OriginalPrice      int64  `json:"original_price"`
	DiscountedPrice    int64  `json:"discounted_price"`
}

type quizDTO struct {
	ID              string        `json:"id"`
	LessonID        string        `json:"lesson_id"`
	CourseID        string        `json:"course_id"`
	Title           string        `json:"title"`
	PassScore       int           `json:"pass_score"`
	AttemptsAllowed int           `json:"attempts_allowed"`
	Questions       []questionDTO `json:"questions"`
}

type questionDTO struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Position      int      `json:"position"`
}

type attemptDTO struct {
	ID        string            `json:"id"`
	QuizID    string            `json:"quiz_id"`
	Answers   map[string]string `json:"answers"`
	Score     int               `json:"score"`
	Passed    bool              `json:"passed"`
	CreatedAt time.Time         `json:"created_at"`
}

type wishlistItemDTO struct {
	ID                 string    `json:"id"`
	CourseID           string    `json:"course_id"`
	CourseTitle        string    `json:"course_title,omitempty"`
	CourseSlug         string    `json:"course_slug,omitempty"`
	CourseThumbnailURL string    `json:"course_thumbnail_url,omitempty"`
	CoursePrice        int64     `json:"course_price"`
	CreatedAt          time.Time `json:"created_at"`
}

type notificationDTO struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type deviceDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"device_name"`
	Type         string    `json:"device_type"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IsActive     bool      `json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

type userDevicesDTO struct {
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name,omitempty"`
	UserEmail string      `json:"user_email,omitempty"`
	Devices   []deviceDTO `json:"devices"`
}

type violationDTO struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Type       string         `json:"violation_type"`
	Details    map[string]any `json:"details,omitempty"`
	Status     string         `json:"status"`
	UserName   string         `json:"user_name,omitempty"`
	UserEmail  string         `json:"user_email,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
}

type studentDashboardDTO struct {
	Enrollments         []enrollmentDTO  `json:"enrollments"`
	Certificates        []certificateDTO `json:"certificates"`
	UnreadNotifications int              `json:"unread_notifications"`
	WishlistCount       int              `json:"wishlist_count"`
	CompletedCourses    int              `json:"completed_courses"`
	InProgressCourses   int              `json:"in_progress_courses"`
}

type instructorCourseStatsDTO struct {
	Course          courseDTO `json:"course"`
	EnrollmentCount int       `json:"enrollment_count"`
	AverageRating   float64   `json:"average_rating"`
	Revenue         int64     `json:"revenue"`
	PendingRevenue  int64     `json:"pending_revenue"`
}

type instructorDashboardDTO struct {
	Courses          []instructorCourseStatsDTO `json:"courses"`
	TotalCourses     int                        `json:"total_courses"`
	PublishedCourses int                        `json:"published_courses"`
	TotalEnrollments int                        `json:"total_enrollments"`
	TotalRevenue     int64                      `json:"total_revenue"`
	PendingRevenue   int64                      `json:"pending_revenue"`
	AverageRating    float64                    `json:"average_rating"`
}

type instructorStudentDTO struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	CourseIDs       []string  `json:"course_ids"`
	FirstEnrolledAt time.Time `json:"first_enrolled_at"`
}

type analyticsDTO struct {
	TotalUsers       int   `json:"total_users"`
	Students         int   `json:"students"`
	Instructors      int   `json:"instructors"`
	Admins           int   `json:"admins"`
	TotalCourses     int   `json:"total_courses"`
	PublishedCourses int   `json:"published_courses"`
	Enrollments      int   `json:"enrollments"`
	CompletedRevenue int64 `json:"completed_revenue"`
	PendingPayments  int   `json:"pending_payments"`
}

type storedObjectDTO struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func profileToDTO(v user.Profile) profileDTO {
	return profileDTO{
		ID:           v.ID,
		Email:        v.Email,
		FullName:     v.FullName,
		AvatarURL:    v.AvatarURL,
		Role:         string(v.Role),
		Bio:          v.Bio,
		Phone:        v.Phone,
		UniversityID: v.UniversityID,
		CreatedAt:    v.CreatedAt,
	}
}

func universityToDTO(v course.University) universityDTO {
	return universityDTO{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
		City:        v.City,
		Country:     v.Country,
		LogoURL:     v.LogoURL,
	}
}

func categoryToDTO(v course.Category) categoryDTO {
	return categoryDTO{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
		Icon:        v.Icon,
		CourseCount: v.CourseCount,
	}
}

func courseToDTO(v course.Course) courseDTO {
	return courseDTO{
		ID:               v.ID,
		Title:            v.Title,
		Slug:             v.Slug,
		Description:      v.Description,
		ShortDescription: v.ShortDescription,
		ThumbnailURL:     v.ThumbnailURL,
		PreviewVideoURL:  v.PreviewVideoURL,
		Price:            v.Price,
		OriginalPrice:    v.OriginalPrice,
		InstructorID:     v.InstructorID,
		InstructorName:   v.InstructorName,
		CategoryID:       v.CategoryID,
		CategoryName:     v.CategoryName,
		UniversityID:     v.UniversityID,
		UniversityName:   v.UniversityName,
		Level:            string(v.Level),
		Language:         v.Language,
		DurationHours:    v.DurationHours,
		IsPublished:      v.IsPublished,
		IsFeatured:       v.IsFeatured,
		EnrollmentCount:  v.EnrollmentCount,
		AverageRating:    v.AverageRating,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func lessonToDTO(v course.Lesson) lessonDTO {
	return lessonDTO{
		ID:              v.ID,
		CourseID:        v.CourseID,
		Title:           v.Title,
		Description:     v.Description,
		ContentType:     string(v.ContentType),
		VideoURL:        v.VideoURL,
		TextContent:     v.TextContent,
		ResourceURL:     v.ResourceURL,
		DurationMinutes: v.DurationMinutes,
		Position:        v.Position,
		IsFreePreview:   v.IsFreePreview,
	}
}

func courseDetailToDTO(v usecase.CourseDetail) courseDetailDTO {
	return courseDetailDTO{
		Course:     courseToDTO(v.Course),
		Lessons:    mapSlice(v.Lessons, lessonToDTO),
		Enrolled:   v.Enrolled,
		FullAccess: v.FullAccess,
	}
}

func reviewToDTO(v review.Review) reviewDTO {
	return reviewDTO{
		ID:                v.ID,
		UserID:            v.UserID,
		CourseID:          v.CourseID,
		Rating:            v.Rating,
		Comment:           v.Comment,
		ReviewerName:      v.ReviewerName,
		ReviewerAvatarURL: v.ReviewerAvatarURL,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func enrollmentToDTO(v enrollment.Enrollment) enrollmentDTO {
	return enrollmentDTO{
		ID:                 v.ID,
		CourseID:           v.CourseID,
		ProgressPercentage: v.ProgressPercentage,
		CompletedAt:        v.CompletedAt,
		EnrolledAt:         v.EnrolledAt,
		CourseTitle:        v.CourseTitle,
		CourseSlug:         v.CourseSlug,
		CourseThumbnailURL: v.CourseThumbnailURL,
	}
}

func lessonProgressToDTO(v usecase.LessonProgressResult) lessonProgressDTO {
	out := lessonProgressDTO{
		Enrollment:       enrollmentToDTO(v.Progress.Enrollment),
		CompletedLessons: v.Progress.CompletedLessons,
		TotalLessons:     v.Progress.TotalLessons,
		JustCompleted:    v.Progress.JustCompleted,
	}
	if v.Certificate != nil {
		cert := certificateToDTO(*v.Certificate)
		out.Certificate = &cert
	}
	return out
}

func certificateToDTO(v certificate.Certificate) certificateDTO {
	return certificateDTO{
		ID:            v.ID,
		CourseID:      v.CourseID,
		Number:        v.Number,
		IssuedAt:      v.IssuedAt,
		CourseTitle:   v.CourseTitle,
		RecipientName: v.RecipientName,
	}
}

func paymentToDTO(v payment.Payment) paymentDTO {
	out := paymentDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		CourseID:      v.CourseID,
		Amount:        v.Amount,
		Method:        string(v.Method),
		Status:        string(v.Status),
		TransactionID: v.TransactionID,
		ScreenshotURL: v.ScreenshotURL,
		PhoneNumber:   v.PhoneNumber,
		Notes:         v.Notes,
		CouponCode:    v.CouponCode,
		CourseTitle:   v.CourseTitle,
		UserName:      v.UserName,
		UserEmail:     v.UserEmail,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Card != nil {
		out.CardholderName = v.Card.CardholderName
		out.CardLast4 = v.Card.Last4
	}
	return out
}

func paymentLedgerToDTO(v usecase.PaymentLedger) paymentLedgerDTO {
	counts := make(map[string]int, len(v.Totals.CountByStatus))
	for status, n := range v.Totals.CountByStatus {
		counts[string(status)] = n
	}
	return paymentLedgerDTO{
		Payments:        mapSlice(v.Payments, paymentToDTO),
		CompletedAmount: v.Totals.CompletedAmount,
		PendingAmount:   v.Totals.PendingAmount,
		CountByStatus:   counts,
	}
}

func couponToDTO(v coupon.Coupon) couponDTO {
	return couponDTO{
		ID:                 v.ID,
		Code:               v.Code,
		DiscountPercentage: v.DiscountPercentage,
		MaxUses:            v.MaxUses,
		CurrentUses:        v.CurrentUses,
		ValidFrom:          v.ValidFrom,
		ValidUntil:         v.ValidUntil,
		IsActive:           v.IsActive,
		CourseID:           v.CourseID,
		CreatedAt:          v.CreatedAt,
	}
}

func quizToDTO(v quiz.Quiz) quizDTO {
	return quizDTO{
		ID:              v.ID,
		LessonID:        v.LessonID,
		CourseID:        v.CourseID,
		Title:           v.Title,
		PassScore:       v.PassScore,
		AttemptsAllowed: v.AttemptsAllowed,
		Questions:       mapSlice(v.Questions, questionToDTO),
	}
}

func questionToDTO(v quiz.Question) questionDTO {
	return questionDTO{
		ID:            v.ID,
		Question:      v.Question,
		Type:          string(v.Type),
		Options:       v.Options,
		CorrectAnswer: v.CorrectAnswer,
		Position:      v.Position,
	}
}

func attemptToDTO(v quiz.Attempt) attemptDTO {
	return attemptDTO{
		ID:        v.ID,
		QuizID:    v.QuizID,
		Answers:   v.Answers,
		Score:     v.Score,
		Passed:    v.Passed,
		CreatedAt: v.CreatedAt,
	}
}

func wishlistItemToDTO(v wishlist.Item) wishlistItemDTO {
	return wishlistItemDTO{
		ID:                 v.ID,
		CourseID:           v.CourseID,
		CourseTitle:        v.CourseTitle,
		CourseSlug:         v.CourseSlug,
		CourseThumbnailURL: v.CourseThumbnailURL,
		CoursePrice:        v.CoursePrice,
		CreatedAt:          v.CreatedAt,
	}
}

func notificationToDTO(v notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        v.ID,
		Title:     v.Title,
		Message:   v.Message,
		Type:      string(v.Type),
		Read:      v.Read,
		Data:      v.Data,
		CreatedAt: v.CreatedAt,
	}
}

func deviceToDTO(v device.Device) deviceDTO {
	return deviceDTO{
		ID:           v.ID,
		Name:         v.Name,
		Type:         string(v.Type),
		IPAddress:    v.IPAddress,
		UserAgent:    v.UserAgent,
		IsActive:     v.IsActive,
		LastActivity: v.LastActivity,
		CreatedAt:    v.CreatedAt,
	}
}

func userDevicesToDTO(v device.UserDevices) userDevicesDTO {
	return userDevicesDTO{
		UserID:    v.UserID,
		UserName:  v.UserName,
		UserEmail: v.UserEmail,
		Devices:   mapSlice(v.Devices, deviceToDTO),
	}
}

func violationToDTO(v device.Violation) violationDTO {
	return violationDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		Type:       string(v.Type),
		Details:    v.Details,
		Status:     string(v.Status),
		UserName:   v.UserName,
		UserEmail:  v.UserEmail,
		CreatedAt:  v.CreatedAt,
		ResolvedAt: v.ResolvedAt,
	}
}

func storedObjectToDTO(v usecase.StoredObject) storedObjectDTO {
	return storedObjectDTO{
		URL:         v.URL,
		Path:        v.Path,
		Size:        v.Size,
		ContentType: v.ContentType,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

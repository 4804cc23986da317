package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	// multipart parts above this size spill to temp files
	multipartMemory = 1 << 20
	// room for form fields and part headers on top of the file limit
	multipartSlack = 1 << 20
)

type Services struct {
	Auth          *usecase.AuthService
	Profile       *usecase.ProfileService
	Catalog       *usecase.CatalogService
	Enrollment    *usecase.EnrollmentService
	Certificates  *usecase.CertificateService
	Payments      *usecase.PaymentService
	Coupons       *usecase.CouponService
	Quizzes       *usecase.QuizService
	Reviews       *usecase.ReviewService
	Wishlist      *usecase.WishlistService
	Notifications *usecase.NotificationService
	Devices       *usecase.DeviceService
	Instructor    *usecase.InstructorService
	Uploads       *usecase.UploadService
	Admin         *usecase.AdminService
	Dashboard     *usecase.DashboardService
}

type Handler struct {
	auth          *usecase.AuthService
	profile       *usecase.ProfileService
	catalog       *usecase.CatalogService
	enrollment    *usecase.EnrollmentService
	certificates  *usecase.CertificateService
	payments      *usecase.PaymentService
	coupons       *usecase.CouponService
	quizzes       *usecase.QuizService
	reviews       *usecase.ReviewService
	wishlist      *usecase.WishlistService
	notifications *usecase.NotificationService
	devices       *usecase.DeviceService
	instructor    *usecase.InstructorService
	uploads       *usecase.UploadService
	admin         *usecase.AdminService
	dashboard     *usecase.DashboardService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		auth:          services.Auth,
		profile:       services.Profile,
		catalog:       services.Catalog,
		enrollment:    services.Enrollment,
		certificates:  services.Certificates,
		payments:      services.Payments,
		coupons:       services.Coupons,
		quizzes:       services.Quizzes,
		reviews:       services.Reviews,
		wishlist:      services.Wishlist,
		notifications: services.Notifications,
		devices:       services.Devices,
		instructor:    services.Instructor,
		uploads:       services.Uploads,
		admin:         services.Admin,
		dashboard:     services.Dashboard,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body into dst, rejecting unknown fields.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit, err = queryInt(r, "limit", defaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 || limit > maxPageLimit {
		return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxPageLimit)
	}
	offset, err = queryInt(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset must be >= 0", usecase.ErrInvalidInput)
	}
	return limit, offset, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

// parseMultipart caps the request body at maxFileBytes plus form overhead
// before parsing, so oversized uploads fail without being read in full.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxFileBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes+multipartSlack)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		return fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// formFile opens a multipart file part. The returned closer must be called
// once the upload has been consumed.
func formFile(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (usecase.UploadFile, io.Closer, error) {
	if err := parseMultipart(w, r, maxBytes); err != nil {
		return usecase.UploadFile{}, nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return usecase.UploadFile{}, nil, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, field)
		}
		return usecase.UploadFile{}, nil, fmt.Errorf("%w: read %s: %v", usecase.ErrInvalidInput, field, err)
	}

	return uploadFromPart(file, header), file, nil
}

func uploadFromPart(file multipart.File, header *multipart.FileHeader) usecase.UploadFile {
	return usecase.UploadFile{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=120"`
}

type loginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceName string `json:"device_name" validate:"omitempty,max=120"`
	DeviceType string `json:"device_type" validate:"omitempty,oneof=web mobile tablet desktop"`
}

type updateProfileRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,max=120"`
	Bio          *string `json:"bio" validate:"omitempty,max=2000"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
	UniversityID *string `json:"university_id"`
}

type validateCouponRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	CourseID string `json:"course_id" validate:"required"`
}

type submitQuizRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=4000"`
}

type courseRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description" validate:"omitempty,max=500"`
	ThumbnailURL     string `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewVideoURL  string `json:"preview_video_url" validate:"omitempty,url"`
	Price            int64  `json:"price" validate:"gte=0"`
	OriginalPrice    int64  `json:"original_price" validate:"gte=0"`
	CategoryID       string `json:"category_id"`
	UniversityID     string `json:"university_id" validate:"required"`
	Level            string `json:"level" validate:"required,oneof=1st 2nd 3rd 4th 5th"`
	Language         string `json:"language" validate:"omitempty,max=40"`
	DurationHours    int    `json:"duration_hours" validate:"gte=0"`
}

func (r courseRequest) toInput() usecase.CourseInput {
	return usecase.CourseInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		ThumbnailURL:     r.ThumbnailURL,
		PreviewVideoURL:  r.PreviewVideoURL,
		Price:            r.Price,
		OriginalPrice:    r.OriginalPrice,
		CategoryID:       r.CategoryID,
		UniversityID:     r.UniversityID,
		Level:            r.Level,
		Language:         r.Language,
		DurationHours:    r.DurationHours,
	}
}

type publishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

type featuredRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

type lessonRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	ContentType     string `json:"content_type" validate:"required,oneof=video text quiz resource"`
	VideoURL        string `json:"video_url" validate:"omitempty,url"`
	TextContent     string `json:"text_content"`
	ResourceURL     string `json:"resource_url" validate:"omitempty,url"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	IsFreePreview   bool   `json:"is_free_preview"`
}

func (r lessonRequest) toInput() usecase.LessonInput {
	return usecase.LessonInput{
		Title:           r.Title,
		Description:     r.Description,
		ContentType:     r.ContentType,
		VideoURL:        r.VideoURL,
		TextContent:     r.TextContent,
		ResourceURL:     r.ResourceURL,
		DurationMinutes: r.DurationMinutes,
		IsFreePreview:   r.IsFreePreview,
	}
}

type reorderLessonsRequest struct {
	LessonIDs []string `json:"lesson_ids" validate:"required,min=1,dive,required"`
}

type createQuizRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	PassScore       *int   `json:"pass_score" validate:"omitempty,min=0,max=100"`
	AttemptsAllowed *int   `json:"attempts_allowed" validate:"omitempty,min=1"`
}

type addQuestionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple_choice true_false short_answer"`
	Options       []string `json:"options" validate:"omitempty,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"omitempty,max=64"`
}

type universityRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	City        string `json:"city" validate:"omitempty,max=120"`
	Country     string `json:"country" validate:"omitempty,max=120"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type paymentNotesRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

type createCouponRequest struct {
	Code               string `json:"code" validate:"required,max=64"`
	DiscountPercentage int    `json:"discount_percentage" validate:"required,min=1,max=100"`
	MaxUses            int    `json:"max_uses" validate:"required,min=1"`
	ValidFrom          string `json:"valid_from"`
	ValidUntil         string `json:"valid_until"`
	CourseID           string `json:"course_id"`
}

type resolveViolationRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved ignored"`
}

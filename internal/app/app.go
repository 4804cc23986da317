package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/course-marketplace/internal/config"
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
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/auth/password"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/auth/token"
	cacherepo "github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/course-marketplace/internal/infrastructure/storage/s3"
	"github.com/riskibarqy/course-marketplace/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/course-marketplace/internal/platform/cache"
	"github.com/riskibarqy/course-marketplace/internal/platform/id"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/platform/resilience"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

// MemoryDBURL runs the service on the in-process store instead of Postgres.
const MemoryDBURL = "memory://"

type repositories struct {
	users         user.Repository
	courses       course.Repository
	lessons       course.LessonRepository
	enrollments   enrollment.Repository
	certificates  certificate.Repository
	payments      payment.Repository
	coupons       coupon.Repository
	quizzes       quiz.Repository
	reviews       review.Repository
	wishlist      wishlist.Repository
	notifications notification.Repository
	devices       device.Repository
}

// App owns the HTTP server and the resources it depends on.
type App struct {
	Server *http.Server
	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	var repos repositories
	if strings.TrimSpace(cfg.DBURL) == MemoryDBURL {
		logger.Warn("using in-memory store; data is lost on restart")
		repos = memoryRepositories()
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		repos = postgresRepositories(db)
	}

	if cfg.CacheEnabled {
		repos.courses = cacherepo.NewCourseRepository(repos.courses, basecache.NewStore(cfg.CacheTTL))
	}

	handler, verifier, err := buildHandler(ctx, cfg, repos, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Close releases the database pool.
func (a *App) Close(_ context.Context) error {
	if a == nil || a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		users:         postgres.NewUserRepository(db),
		courses:       postgres.NewCourseRepository(db),
		lessons:       postgres.NewLessonRepository(db),
		enrollments:   postgres.NewEnrollmentRepository(db),
		certificates:  postgres.NewCertificateRepository(db),
		payments:      postgres.NewPaymentRepository(db),
		coupons:       postgres.NewCouponRepository(db),
		quizzes:       postgres.NewQuizRepository(db),
		reviews:       postgres.NewReviewRepository(db),
		wishlist:      postgres.NewWishlistRepository(db),
		notifications: postgres.NewNotificationRepository(db),
		devices:       postgres.NewDeviceRepository(db),
	}
}

func memoryRepositories() repositories {
	store := memory.NewStore()
	store.Seed()

	return repositories{
		users:         memory.NewUserRepository(store),
		courses:       memory.NewCourseRepository(store),
		lessons:       memory.NewLessonRepository(store),
		enrollments:   memory.NewEnrollmentRepository(store),
		certificates:  memory.NewCertificateRepository(store),
		payments:      memory.NewPaymentRepository(store),
		coupons:       memory.NewCouponRepository(store),
		quizzes:       memory.NewQuizRepository(store),
		reviews:       memory.NewReviewRepository(store),
		wishlist:      memory.NewWishlistRepository(store),
		notifications: memory.NewNotificationRepository(store),
		devices:       memory.NewDeviceRepository(store),
	}
}

func buildHandler(ctx context.Context, cfg config.Config, repos repositories, logger *logging.Logger) (*httpapi.Handler, httpapi.TokenVerifier, error) {
	tokens, err := token.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, nil, fmt.Errorf("build token manager: %w", err)
	}

	storage, err := s3.NewClient(ctx, s3.ClientConfig{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
		UsePathStyle:  cfg.S3UsePathStyle,
		Logger:        logger.Named("s3"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.S3CircuitEnabled,
			FailureThreshold: cfg.S3CircuitFailureCount,
			OpenTimeout:      cfg.S3CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.S3CircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build object storage: %w", err)
	}

	policy := device.Policy{MaxActive: cfg.DeviceMaxActive, SessionTTL: cfg.DeviceSessionTTL}
	if err := policy.Validate(); err != nil {
		return nil, nil, errors.Join(usecase.ErrInvalidInput, err)
	}

	ids := id.NewUUIDGenerator()
	hasher := password.NewHasher(cfg.BcryptCost)

	notifications := usecase.NewNotificationService(repos.notifications, ids, cfg.NotifyWorkers, logger)
	devices := usecase.NewDeviceService(repos.devices, policy, ids, id.NewTokenGenerator(), logger)
	auth := usecase.NewAuthService(repos.users, devices, hasher, tokens, ids, cfg.JWTAccessTTL, logger)
	certificates := usecase.NewCertificateService(repos.certificates, repos.enrollments, ids)
	coupons := usecase.NewCouponService(repos.coupons, repos.courses, ids)
	uploads := usecase.NewUploadService(storage, usecase.UploadConfig{
		VideoBucket:        cfg.S3BucketLessonVideos,
		PDFBucket:          cfg.S3BucketLessonPDFs,
		ScreenshotBucket:   cfg.S3BucketPaymentScreenshots,
		MaxVideoBytes:      cfg.UploadMaxVideoBytes,
		MaxPDFBytes:        cfg.UploadMaxPDFBytes,
		MaxScreenshotBytes: cfg.UploadMaxScreenshotBytes,
	})

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:          auth,
		Profile:       usecase.NewProfileService(repos.users),
		Catalog:       usecase.NewCatalogService(repos.courses, repos.lessons, repos.enrollments, repos.users, repos.reviews),
		Enrollment:    usecase.NewEnrollmentService(repos.courses, repos.lessons, repos.enrollments, certificates, notifications, ids, logger),
		Certificates:  certificates,
		Payments:      usecase.NewPaymentService(repos.payments, repos.courses, repos.enrollments, repos.users, coupons, uploads, notifications, ids, logger),
		Coupons:       coupons,
		Quizzes:       usecase.NewQuizService(repos.quizzes, repos.courses, repos.lessons, repos.enrollments, ids),
		Reviews:       usecase.NewReviewService(repos.reviews, repos.enrollments, ids),
		Wishlist:      usecase.NewWishlistService(repos.wishlist, repos.courses, ids),
		Notifications: notifications,
		Devices:       devices,
		Instructor:    usecase.NewInstructorService(repos.courses, repos.lessons, repos.enrollments, repos.payments, repos.users, notifications, ids, logger),
		Uploads:       uploads,
		Admin:         usecase.NewAdminService(repos.users, repos.courses, repos.enrollments, repos.payments, ids, logger),
		Dashboard:     usecase.NewDashboardService(repos.enrollments, repos.certificates, repos.notifications, repos.wishlist),
	}, logger)

	return handler, auth, nil
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

var (
	instructorRoles = []user.Role{user.RoleInstructor, user.RoleAdmin}
	adminRoles      = []user.Role{user.RoleAdmin}
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("GET /v1/universities", handler.ListUniversities)
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/courses", handler.ListCourses)
	mux.HandleFunc("GET /v1/courses/search", handler.SearchCourses)
	// the viewer decides how much lesson content is revealed
	mux.Handle("GET /v1/courses/{slug}", OptionalAuth(verifier, http.HandlerFunc(handler.GetCourse)))
	mux.HandleFunc("GET /v1/courses/{courseID}/reviews", handler.ListCourseReviews)
	mux.HandleFunc("GET /v1/instructors", handler.ListInstructors)
	mux.HandleFunc("GET /v1/instructors/{instructorID}", handler.GetInstructor)
	mux.HandleFunc("GET /v1/certificates/verify/{number}", handler.VerifyCertificate)
}

func registerStudentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}

	auth("POST /v1/auth/logout", handler.Logout)
	auth("GET /v1/me", handler.GetMe)
	auth("PUT /v1/me", handler.UpdateMe)
	auth("GET /v1/me/dashboard", handler.GetMyDashboard)

	auth("POST /v1/courses/{courseID}/enroll", handler.EnrollInCourse)
	auth("GET /v1/me/enrollments", handler.ListMyEnrollments)
	auth("GET /v1/courses/{courseID}/progress", handler.GetCourseProgress)
	auth("POST /v1/lessons/{lessonID}/complete", handler.CompleteLesson)
	auth("DELETE /v1/lessons/{lessonID}/complete", handler.UncompleteLesson)
	auth("GET /v1/me/certificates", handler.ListMyCertificates)

	auth("POST /v1/courses/{courseID}/checkout", handler.Checkout)
	auth("GET /v1/me/payments", handler.ListMyPayments)
	auth("POST /v1/coupons/validate", handler.ValidateCoupon)

	auth("GET /v1/lessons/{lessonID}/quiz", handler.GetLessonQuiz)
	auth("POST /v1/quizzes/{quizID}/attempts", handler.SubmitQuizAttempt)
	auth("GET /v1/quizzes/{quizID}/attempts", handler.ListMyQuizAttempts)

	auth("PUT /v1/courses/{courseID}/review", handler.UpsertReview)
	auth("DELETE /v1/courses/{courseID}/review", handler.DeleteReview)

	auth("GET /v1/me/wishlist", handler.ListMyWishlist)
	auth("PUT /v1/me/wishlist/{courseID}", handler.AddToWishlist)
	auth("DELETE /v1/me/wishlist/{courseID}", handler.RemoveFromWishlist)
	auth("GET /v1/me/wishlist/{courseID}", handler.GetWishlistStatus)

	auth("GET /v1/me/notifications", handler.ListMyNotifications)
	auth("GET /v1/me/notifications/unread-count", handler.GetUnreadNotificationCount)
	auth("POST /v1/me/notifications/{id}/read", handler.MarkNotificationRead)
	auth("POST /v1/me/notifications/read-all", handler.MarkAllNotificationsRead)
	auth("DELETE /v1/me/notifications/{id}", handler.DeleteNotification)

	auth("GET /v1/me/devices", handler.ListMyDevices)
	auth("DELETE /v1/me/devices/{deviceID}", handler.LogoutMyDevice)
	auth("GET /v1/me/violations", handler.ListMyViolations)
}

func registerInstructorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	instructor := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireRole(verifier, instructorRoles, fn))
	}

	instructor("GET /v1/instructor/courses", handler.InstructorListCourses)
	instructor("POST /v1/instructor/courses", handler.InstructorCreateCourse)
	instructor("PUT /v1/instructor/courses/{courseID}", handler.InstructorUpdateCourse)
	instructor("DELETE /v1/instructor/courses/{courseID}", handler.InstructorDeleteCourse)
	instructor("POST /v1/instructor/courses/{courseID}/publish", handler.InstructorPublishCourse)

	instructor("POST /v1/instructor/courses/{courseID}/lessons", handler.InstructorAddLesson)
	instructor("PUT /v1/instructor/lessons/{lessonID}", handler.InstructorUpdateLesson)
	instructor("DELETE /v1/instructor/lessons/{lessonID}", handler.InstructorDeleteLesson)
	instructor("PUT /v1/instructor/courses/{courseID}/lessons/order", handler.InstructorReorderLessons)

	instructor("POST /v1/instructor/lessons/{lessonID}/quiz", handler.InstructorCreateQuiz)
	instructor("POST /v1/instructor/quizzes/{quizID}/questions", handler.InstructorAddQuestion)
	instructor("GET /v1/instructor/dashboard", handler.InstructorDashboard)
	instructor("GET /v1/instructor/students", handler.InstructorListStudents)

	instructor("POST /v1/upload/video", handler.UploadLessonVideo)
	instructor("POST /v1/upload/pdf", handler.UploadLessonPDF)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireRole(verifier, adminRoles, fn))
	}

	admin("GET /v1/admin/analytics", handler.AdminAnalytics)
	admin("GET /v1/admin/users", handler.AdminListUsers)
	admin("PUT /v1/admin/users/{userID}/role", handler.AdminUpdateUserRole)

	admin("GET /v1/admin/courses", handler.AdminListCourses)
	admin("PUT /v1/admin/courses/{courseID}/featured", handler.AdminSetCourseFeatured)
	admin("PUT /v1/admin/courses/{courseID}/published", handler.AdminSetCoursePublished)

	admin("GET /v1/admin/categories", handler.AdminListCategories)
	admin("POST /v1/admin/categories", handler.AdminCreateCategory)
	admin("DELETE /v1/admin/categories/{categoryID}", handler.AdminDeleteCategory)
	admin("POST /v1/admin/universities", handler.AdminCreateUniversity)

	admin("GET /v1/admin/payments", handler.AdminListPayments)
	admin("POST /v1/admin/payments/{paymentID}/approve", handler.AdminApprovePayment)
	admin("POST /v1/admin/payments/{paymentID}/reject", handler.AdminRejectPayment)
	admin("POST /v1/admin/payments/{paymentID}/refund", handler.AdminRefundPayment)

	admin("GET /v1/admin/coupons", handler.AdminListCoupons)
	admin("POST /v1/admin/coupons", handler.AdminCreateCoupon)
	admin("DELETE /v1/admin/coupons/{couponID}", handler.AdminDeactivateCoupon)

	admin("GET /v1/admin/devices", handler.AdminListDevices)
	admin("DELETE /v1/admin/devices/{deviceID}", handler.AdminForceLogoutDevice)
	admin("GET /v1/admin/violations", handler.AdminListViolations)
	admin("PUT /v1/admin/violations/{violationID}", handler.AdminResolveViolation)
}

package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

func (h *Handler) InstructorListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorListCourses")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.instructor.ListMyCourses(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "list instructor courses failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, courseToDTO))
}

func (h *Handler) InstructorCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorCreateCourse")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req courseRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.instructor.CreateCourse(ctx, principal, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create course failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, courseToDTO(item))
}

func (h *Handler) InstructorUpdateCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorUpdateCourse")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req courseRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.instructor.UpdateCourse(ctx, principal, r.PathValue("courseID"), req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update course failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, courseToDTO(item))
}

func (h *Handler) InstructorDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorDeleteCourse")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.instructor.DeleteCourse(ctx, principal, r.PathValue("courseID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) InstructorPublishCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorPublishCourse")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req publishRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.instructor.SetPublished(ctx, principal, r.PathValue("courseID"), *req.Published); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"is_published": *req.Published})
}

func (h *Handler) InstructorAddLesson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorAddLesson")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req lessonRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lesson, err := h.instructor.AddLesson(ctx, principal, r.PathValue("courseID"), req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "add lesson failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lessonToDTO(lesson))
}

func (h *Handler) InstructorUpdateLesson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorUpdateLesson")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req lessonRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lesson, err := h.instructor.UpdateLesson(ctx, principal, r.PathValue("lessonID"), req.toInput())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lessonToDTO(lesson))
}

func (h *Handler) InstructorDeleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorDeleteLesson")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.instructor.DeleteLesson(ctx, principal, r.PathValue("lessonID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) InstructorReorderLessons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorReorderLessons")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req reorderLessonsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lessons, err := h.instructor.ReorderLessons(ctx, principal, r.PathValue("courseID"), req.LessonIDs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(lessons, lessonToDTO))
}

func (h *Handler) InstructorCreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorCreateQuiz")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createQuizRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.quizzes.CreateQuiz(ctx, principal, usecase.CreateQuizInput{
		LessonID:        r.PathValue("lessonID"),
		Title:           req.Title,
		PassScore:       req.PassScore,
		AttemptsAllowed: req.AttemptsAllowed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create quiz failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, quizToDTO(item))
}

func (h *Handler) InstructorAddQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorAddQuestion")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req addQuestionRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	question, err := h.quizzes.AddQuestion(ctx, principal, usecase.AddQuestionInput{
		QuizID:        r.PathValue("quizID"),
		Question:      req.Question,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, questionToDTO(question))
}

func (h *Handler) InstructorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorDashboard")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	dashboard, err := h.instructor.Dashboard(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "instructor dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	courses := make([]instructorCourseStatsDTO, 0, len(dashboard.Courses))
	for _, item := range dashboard.Courses {
		courses = append(courses, instructorCourseStatsDTO{
			Course:          courseToDTO(item.Course),
			EnrollmentCount: item.EnrollmentCount,
			AverageRating:   item.AverageRating,
			Revenue:         item.Revenue,
			PendingRevenue:  item.PendingRevenue,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, instructorDashboardDTO{
		Courses:          courses,
		TotalCourses:     dashboard.TotalCourses,
		PublishedCourses: dashboard.PublishedCourses,
		TotalEnrollments: dashboard.TotalEnrollments,
		TotalRevenue:     dashboard.TotalRevenue,
		PendingRevenue:   dashboard.PendingRevenue,
		AverageRating:    dashboard.AverageRating,
	})
}

func (h *Handler) InstructorListStudents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InstructorListStudents")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.instructor.ListStudents(ctx, principal, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list instructor students failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]instructorStudentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, instructorStudentDTO{
			ID:              item.Profile.ID,
			FullName:        item.Profile.FullName,
			Email:           item.Profile.Email,
			AvatarURL:       item.Profile.AvatarURL,
			CourseIDs:       item.CourseIDs,
			FirstEnrolledAt: item.FirstEnrolledAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UploadLessonVideo(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "httpapi.Handler.UploadLessonVideo", h.uploads.Limits().MaxVideoBytes, h.uploads.UploadLessonVideo)
}

func (h *Handler) UploadLessonPDF(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "httpapi.Handler.UploadLessonPDF", h.uploads.Limits().MaxPDFBytes, h.uploads.UploadLessonPDF)
}

func (h *Handler) handleUpload(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	maxBytes int64,
	upload func(ctx context.Context, file usecase.UploadFile) (usecase.StoredObject, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	file, closer, err := formFile(w, r, "file", maxBytes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer func() {
		_ = closer.Close()
		_ = r.MultipartForm.RemoveAll()
	}()

	stored, err := upload(ctx, file)
	if err != nil {
		h.logger.WarnContext(ctx, "upload failed", "file_name", file.FileName, "size", file.Size, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, storedObjectToDTO(stored))
}

package httpapi

import (
	"net/http"
)

func (h *Handler) EnrollInCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnrollInCourse")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	item, err := h.enrollment.Enroll(ctx, principal.UserID, r.PathValue("courseID"))
	if err != nil {
		h.logger.WarnContext(ctx, "enroll failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrollmentToDTO(item))
}

func (h *Handler) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEnrollments")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.enrollment.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list enrollments failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, enrollmentToDTO))
}

func (h *Handler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCourseProgress")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	progress, err := h.enrollment.GetCourseProgress(ctx, principal.UserID, r.PathValue("courseID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	completed := progress.CompletedLessonIDs
	if completed == nil {
		completed = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, courseProgressDTO{
		Enrollment:         enrollmentToDTO(progress.Enrollment),
		CompletedLessonIDs: completed,
	})
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteLesson")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	result, err := h.enrollment.MarkLessonComplete(ctx, principal.UserID, r.PathValue("lessonID"))
	if err != nil {
		h.logger.WarnContext(ctx, "mark lesson complete failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lessonProgressToDTO(result))
}

func (h *Handler) UncompleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UncompleteLesson")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	result, err := h.enrollment.UnmarkLessonComplete(ctx, principal.UserID, r.PathValue("lessonID"))
	if err != nil {
		h.logger.WarnContext(ctx, "unmark lesson complete failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lessonProgressToDTO(result))
}

func (h *Handler) ListMyCertificates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyCertificates")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.certificates.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list certificates failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, certificateToDTO))
}

func (h *Handler) GetLessonQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLessonQuiz")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	item, err := h.quizzes.GetQuiz(ctx, principal, r.PathValue("lessonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, quizToDTO(item))
}

func (h *Handler) SubmitQuizAttempt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitQuizAttempt")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	attempt, err := h.quizzes.Submit(ctx, principal, r.PathValue("quizID"), req.Answers)
	if err != nil {
		h.logger.WarnContext(ctx, "submit quiz failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, attemptToDTO(attempt))
}

func (h *Handler) ListMyQuizAttempts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyQuizAttempts")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.quizzes.ListMyAttempts(ctx, principal, r.PathValue("quizID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, attemptToDTO))
}

func (h *Handler) UpsertReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertReview")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req reviewRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.reviews.Upsert(ctx, principal.UserID, r.PathValue("courseID"), req.Rating, req.Comment)
	if err != nil {
		h.logger.WarnContext(ctx, "upsert review failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reviewToDTO(item))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteReview")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.reviews.Delete(ctx, principal.UserID, r.PathValue("courseID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMyWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyWishlist")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.wishlist.List(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list wishlist failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, wishlistItemToDTO))
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddToWishlist")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.wishlist.Add(ctx, principal.UserID, r.PathValue("courseID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"in_wishlist": true})
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFromWishlist")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.wishlist.Remove(ctx, principal.UserID, r.PathValue("courseID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetWishlistStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWishlistStatus")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	contains, err := h.wishlist.Contains(ctx, principal.UserID, r.PathValue("courseID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"in_wishlist": contains})
}

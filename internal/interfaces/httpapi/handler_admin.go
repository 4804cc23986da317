package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

func (h *Handler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminAnalytics")
	defer span.End()

	stats, err := h.admin.Analytics(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "admin analytics failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analyticsDTO{
		TotalUsers:       stats.TotalUsers,
		Students:         stats.Students,
		Instructors:      stats.Instructors,
		Admins:           stats.Admins,
		TotalCourses:     stats.TotalCourses,
		PublishedCourses: stats.PublishedCourses,
		Enrollments:      stats.Enrollments,
		CompletedRevenue: stats.CompletedRevenue,
		PendingPayments:  stats.PendingPayments,
	})
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListUsers")
	defer span.End()

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	items, err := h.admin.ListUsers(ctx, usecase.ListUsersInput{
		Role:   strings.TrimSpace(query.Get("role")),
		Search: strings.TrimSpace(query.Get("search")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, profileToDTO))
}

func (h *Handler) AdminUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateUserRole")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := r.PathValue("userID")
	if err := h.admin.UpdateUserRole(ctx, principal, userID, req.Role); err != nil {
		h.logger.WarnContext(ctx, "update user role failed", "actor_id", principal.UserID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"user_id": userID, "role": req.Role})
}

func (h *Handler) AdminListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListCourses")
	defer span.End()

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.admin.ListAllCourses(ctx, limit, offset)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, courseToDTO))
}

func (h *Handler) AdminSetCourseFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminSetCourseFeatured")
	defer span.End()

	var req featuredRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.admin.SetFeatured(ctx, r.PathValue("courseID"), *req.Featured); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"is_featured": *req.Featured})
}

func (h *Handler) AdminSetCoursePublished(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminSetCoursePublished")
	defer span.End()

	var req publishRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.admin.SetPublished(ctx, r.PathValue("courseID"), *req.Published); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"is_published": *req.Published})
}

func (h *Handler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListCategories")
	defer span.End()

	items, err := h.admin.ListCategoriesWithCounts(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, categoryToDTO))
}

func (h *Handler) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateCategory")
	defer span.End()

	var req categoryRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.admin.CreateCategory(ctx, usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, categoryToDTO(item))
}

func (h *Handler) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteCategory")
	defer span.End()

	if err := h.admin.DeleteCategory(ctx, r.PathValue("categoryID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminCreateUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateUniversity")
	defer span.End()

	var req universityRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.admin.CreateUniversity(ctx, usecase.UniversityInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, universityToDTO(item))
}

func (h *Handler) AdminListDevices(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListDevices")
	defer span.End()

	items, err := h.devices.ListUsersWithDevices(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list user devices failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, userDevicesToDTO))
}

func (h *Handler) AdminForceLogoutDevice(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminForceLogoutDevice")
	defer span.End()

	deviceID := r.PathValue("deviceID")
	if err := h.devices.ForceLogout(ctx, deviceID); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "device force logged out", "device_id", deviceID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminListViolations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListViolations")
	defer span.End()

	items, err := h.devices.ListViolations(ctx, r.URL.Query().Get("status"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, violationToDTO))
}

func (h *Handler) AdminResolveViolation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminResolveViolation")
	defer span.End()

	var req resolveViolationRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.devices.ResolveViolation(ctx, r.PathValue("violationID"), req.Status); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": req.Status})
}

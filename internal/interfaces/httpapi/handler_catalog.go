package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

func (h *Handler) ListUniversities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUniversities")
	defer span.End()

	items, err := h.catalog.ListUniversities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list universities failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, universityToDTO))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	items, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, categoryToDTO))
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourses")
	defer span.End()

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	featured, err := queryBool(r, "featured")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	items, err := h.catalog.ListCourses(ctx, usecase.ListCoursesInput{
		UniversityID: strings.TrimSpace(query.Get("university_id")),
		CategoryID:   strings.TrimSpace(query.Get("category_id")),
		Level:        strings.TrimSpace(query.Get("level")),
		Search:       strings.TrimSpace(query.Get("search")),
		FeaturedOnly: featured,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list courses failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, courseToDTO))
}

func (h *Handler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchCourses")
	defer span.End()

	query := r.URL.Query()
	items, err := h.catalog.SearchAutocomplete(ctx, query.Get("q"), strings.TrimSpace(query.Get("university_id")))
	if err != nil {
		h.logger.WarnContext(ctx, "search courses failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, courseToDTO))
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCourse")
	defer span.End()

	detail, err := h.catalog.GetCourse(ctx, r.PathValue("slug"), viewerFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, courseDetailToDTO(detail))
}

func (h *Handler) ListCourseReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourseReviews")
	defer span.End()

	items, err := h.catalog.ListReviews(ctx, r.PathValue("courseID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, reviewToDTO))
}

func (h *Handler) ListInstructors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInstructors")
	defer span.End()

	items, err := h.catalog.ListInstructors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list instructors failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]instructorDTO, 0, len(items))
	for _, item := range items {
		out = append(out, instructorDTO{
			ID:               item.Profile.ID,
			FullName:         item.Profile.FullName,
			AvatarURL:        item.Profile.AvatarURL,
			Bio:              item.Profile.Bio,
			PublishedCourses: item.PublishedCourses,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetInstructor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetInstructor")
	defer span.End()

	profile, err := h.catalog.GetInstructor(ctx, r.PathValue("instructorID"))
	if err != nil {
		h.logger.WarnContext(ctx, "get instructor failed", "instructor_id", r.PathValue("instructorID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	courses := make([]courseDTO, 0, len(profile.Courses))
	for _, item := range profile.Courses {
		courses = append(courses, courseToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, instructorProfileDTO{
		instructorDTO: instructorDTO{
			ID:               profile.Profile.ID,
			FullName:         profile.Profile.FullName,
			AvatarURL:        profile.Profile.AvatarURL,
			Bio:              profile.Profile.Bio,
			PublishedCourses: profile.TotalCourses,
		},
		Courses:       courses,
		TotalStudents: profile.TotalStudents,
		AverageRating: profile.AverageRating,
	})
}

func (h *Handler) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyCertificate")
	defer span.End()

	cert, err := h.certificates.Verify(ctx, r.PathValue("number"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, certificateVerificationDTO{
		Number:        cert.Number,
		RecipientName: cert.RecipientName,
		CourseTitle:   cert.CourseTitle,
		IssuedAt:      cert.IssuedAt,
	})
}

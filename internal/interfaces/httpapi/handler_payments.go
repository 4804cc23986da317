package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/domain/payment"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

// Checkout accepts a multipart form. Wallet methods carry the proof
// screenshot in the "screenshot" part; card payments send card fields only.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Checkout")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := parseMultipart(w, r, h.uploads.Limits().MaxScreenshotBytes); err != nil {
		writeError(ctx, w, err)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	input := usecase.CheckoutInput{
		UserID:        principal.UserID,
		CourseID:      r.PathValue("courseID"),
		Method:        r.FormValue("payment_method"),
		TransactionID: r.FormValue("transaction_id"),
		PhoneNumber:   r.FormValue("phone_number"),
		CouponCode:    r.FormValue("coupon_code"),
		Card: payment.Card{
			HolderName: r.FormValue("cardholder_name"),
			Number:     r.FormValue("card_number"),
			Expiry:     r.FormValue("card_expiry"),
			CVV:        r.FormValue("card_cvv"),
		},
	}

	file, header, err := r.FormFile("screenshot")
	switch {
	case err == nil:
		defer file.Close()
		screenshot := uploadFromPart(file, header)
		input.Screenshot = &screenshot
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeError(ctx, w, fmt.Errorf("%w: read screenshot: %v", usecase.ErrInvalidInput, err))
		return
	}

	record, err := h.payments.Checkout(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "checkout failed",
			"user_id", principal.UserID,
			"course_id", input.CourseID,
			"method", input.Method,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, paymentToDTO(record))
}

func (h *Handler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPayments")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.payments.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list payments failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, paymentToDTO))
}

func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateCoupon")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req validateCouponRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	quote, err := h.coupons.Validate(ctx, principal.UserID, req.Code, req.CourseID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, couponQuoteDTO{
		Code:               quote.Coupon.Code,
		DiscountPercentage: quote.DiscountPercentage,
		OriginalPrice:      quote.OriginalPrice,
		DiscountedPrice:    quote.DiscountedPrice,
	})
}

func (h *Handler) AdminListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListPayments")
	defer span.End()

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ledger, err := h.payments.List(ctx, strings.TrimSpace(r.URL.Query().Get("status")), limit, offset)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentLedgerToDTO(ledger))
}

func (h *Handler) AdminApprovePayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminApprovePayment")
	defer span.End()

	record, err := h.payments.Approve(ctx, r.PathValue("paymentID"))
	if err != nil {
		h.logger.WarnContext(ctx, "approve payment failed", "payment_id", r.PathValue("paymentID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentToDTO(record))
}

func (h *Handler) AdminRejectPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRejectPayment")
	defer span.End()

	var req paymentNotesRequest
	if r.ContentLength != 0 {
		if err := h.decodeAndValidate(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	record, err := h.payments.Reject(ctx, r.PathValue("paymentID"), req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "reject payment failed", "payment_id", r.PathValue("paymentID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentToDTO(record))
}

func (h *Handler) AdminRefundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRefundPayment")
	defer span.End()

	var req paymentNotesRequest
	if r.ContentLength != 0 {
		if err := h.decodeAndValidate(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	record, err := h.payments.Refund(ctx, r.PathValue("paymentID"), req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "refund payment failed", "payment_id", r.PathValue("paymentID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentToDTO(record))
}

func (h *Handler) AdminListCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListCoupons")
	defer span.End()

	items, err := h.coupons.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, couponToDTO))
}

func (h *Handler) AdminCreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateCoupon")
	defer span.End()

	var req createCouponRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreateCouponInput{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		MaxUses:            req.MaxUses,
		CourseID:           req.CourseID,
	}
	var err error
	if input.ValidFrom, err = parseOptionalTime("valid_from", req.ValidFrom); err != nil {
		writeError(ctx, w, err)
		return
	}
	if input.ValidUntil, err = parseOptionalTime("valid_until", req.ValidUntil); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.coupons.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create coupon failed", "code", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, couponToDTO(item))
}

func (h *Handler) AdminDeactivateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeactivateCoupon")
	defer span.End()

	if err := h.coupons.Deactivate(ctx, r.PathValue("couponID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOptionalTime(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", usecase.ErrInvalidInput, field)
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

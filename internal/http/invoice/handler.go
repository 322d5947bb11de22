package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/auth"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/voucher"
)

const maxVoucherSize = 10 << 20

type Handler struct {
	svc      *invoice.Service
	vouchers *voucher.Service
	validate *validator.Validate
}

func NewHandler(svc *invoice.Service, vouchers *voucher.Service) *Handler {
	return &Handler{
		svc:      svc,
		vouchers: vouchers,
		validate: validator.New(),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/vouchers/{name}", h.voucherFile)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(user.RoleAdmin))

		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/payments", h.registerPayment)
		r.Post("/{id}/late-fee", h.applyLateFee)
		r.Post("/{id}/cancel", h.cancel)
		r.Get("/{id}/vouchers", h.voucherArchive)
	})
}

// writeError maps domain errors onto HTTP statuses. Validation errors
// are the caller's fault; terminal status conflicts need a different
// request, not a retry.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	case errors.Is(err, invoice.ErrTerminalStatus):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrInvalidFrequency),
		errors.Is(err, invoice.ErrPlanRequired),
		errors.Is(err, invoice.ErrAmountExceedsRemaining):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type planRequest struct {
	Frequency         invoice.Frequency `json:"frequency" validate:"required,oneof=daily weekly biweekly monthly"`
	StartDate         time.Time         `json:"start_date" validate:"required"`
	TotalInstallments int               `json:"total_installments" validate:"required,gt=0"`
	InstallmentAmount decimal.Decimal   `json:"installment_amount" validate:"required"`
}

type createInvoiceRequest struct {
	Number      string              `json:"number"`
	ClientID    uuid.UUID           `json:"client_id" validate:"required"`
	Date        time.Time           `json:"date" validate:"required"`
	PaymentType invoice.PaymentType `json:"payment_type" validate:"required,oneof=cash credit"`
	Total       decimal.Decimal     `json:"total" validate:"required"`
	Plan        *planRequest        `json:"payment_plan,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := invoice.CreateParams{
		Number:      req.Number,
		ClientID:    req.ClientID,
		Date:        req.Date,
		PaymentType: req.PaymentType,
		Total:       req.Total,
	}

	if req.Plan != nil {
		params.Plan = &invoice.PlanParams{
			Frequency:         req.Plan.Frequency,
			StartDate:         req.Plan.StartDate,
			TotalInstallments: req.Plan.TotalInstallments,
			InstallmentAmount: req.Plan.InstallmentAmount,
		}
	}

	inv, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := invoice.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("payment_type"); s != "" {
		pt := invoice.PaymentType(s)
		filter.PaymentType = &pt
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ClientID = &id
		}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	// Clients only ever see their own book.
	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == user.RoleClient {
		filter.ClientID = &claims.UserID
	}

	invs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// loadVisible fetches an invoice and enforces that clients can only
// reach their own.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) *invoice.Invoice {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == user.RoleClient && inv.ClientID != claims.UserID {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return nil
	}

	return inv
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv := h.loadVisible(w, r)
	if inv == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// registerPayment accepts a multipart form so the payment voucher image
// can ride along with the amount in a single request.
func (h *Handler) registerPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxVoucherSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	params := invoice.PaymentParams{
		Date:   time.Now(),
		Amount: amount,
	}

	if s := r.FormValue("date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = t
	}

	if s := r.FormValue("method"); s != "" {
		params.Method = &s
	}

	file, header, err := r.FormFile("voucher")
	if err == nil {
		defer file.Close()

		name, err := h.vouchers.Save(file, header.Filename)
		if err != nil {
			if errors.Is(err, voucher.ErrUnsupportedType) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		params.Attachment = &name
	}

	inv, err := h.svc.RegisterPayment(r.Context(), id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type lateFeeRequest struct {
	Percentage *int             `json:"percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
}

func (h *Handler) applyLateFee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req lateFeeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := h.validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var override *invoice.LateFeeOverride
	if req.Percentage != nil && req.Amount != nil {
		override = &invoice.LateFeeOverride{
			Percentage: *req.Percentage,
			Amount:     *req.Amount,
		}
	}

	inv, err := h.svc.ApplyLateFee(r.Context(), id, override)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) voucherFile(w http.ResponseWriter, r *http.Request) {
	inv := h.loadVisible(w, r)
	if inv == nil {
		return
	}

	name := chi.URLParam(r, "name")

	found := false
	for _, p := range inv.Payments {
		if p.Attachment != nil && *p.Attachment == name {
			found = true
			break
		}
	}

	if !found {
		http.Error(w, "voucher not found", http.StatusNotFound)
		return
	}

	f, err := h.vouchers.Open(name)
	if err != nil {
		http.Error(w, "voucher not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, f); err != nil {
		slog.Error("failed to stream voucher", "error", err)
	}
}

func (h *Handler) voucherArchive(w http.ResponseWriter, r *http.Request) {
	inv := h.loadVisible(w, r)
	if inv == nil {
		return
	}

	var names []string
	for _, p := range inv.Payments {
		if p.Attachment != nil {
			names = append(names, *p.Attachment)
		}
	}

	if len(names) == 0 {
		http.Error(w, "invoice has no vouchers", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"vouchers_%s.zip\"", inv.Number))

	if _, err := h.vouchers.WriteZip(w, names); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}

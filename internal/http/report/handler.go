package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/delinquencies", h.delinquencies)
}

func timeframeFromQuery(r *http.Request) report.Timeframe {
	switch r.URL.Query().Get("timeframe") {
	case "this_month":
		return report.TimeframeThisMonth
	case "last_month":
		return report.TimeframeLastMonth
	case "this_year":
		return report.TimeframeThisYear
	default:
		return report.TimeframeAll
	}
}

type summaryResponse struct {
	TotalInvoices   int                    `json:"total_invoices"`
	ByStatus        map[invoice.Status]int `json:"by_status"`
	TotalBilled     decimal.Decimal        `json:"total_billed"`
	Outstanding     decimal.Decimal        `json:"outstanding"`
	AccruedLateFees decimal.Decimal        `json:"accrued_late_fees"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summarize(r.Context(), timeframeFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		TotalInvoices:   s.TotalInvoices,
		ByStatus:        s.ByStatus,
		TotalBilled:     s.TotalBilled,
		Outstanding:     s.Outstanding,
		AccruedLateFees: s.AccruedLateFees,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type delinquencyResponse struct {
	InvoiceID     uuid.UUID           `json:"invoice_id"`
	Number        string              `json:"number"`
	ClientID      uuid.UUID           `json:"client_id"`
	PaymentType   invoice.PaymentType `json:"payment_type"`
	Remaining     decimal.Decimal     `json:"remaining"`
	DaysLate      int                 `json:"days_late"`
	LateFeeAmount decimal.Decimal     `json:"late_fee_amount"`
}

func (h *Handler) delinquencies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Delinquencies(r.Context(), timeframeFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]delinquencyResponse, len(rows))
	for i, d := range rows {
		resp[i] = delinquencyResponse{
			InvoiceID:     d.InvoiceID,
			Number:        d.Number,
			ClientID:      d.ClientID,
			PaymentType:   d.PaymentType,
			Remaining:     d.Remaining,
			DaysLate:      d.DaysLate,
			LateFeeAmount: d.LateFeeAmount,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

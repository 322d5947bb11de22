package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

type invoiceResponse struct {
	ID                uuid.UUID           `json:"id"`
	Number            string              `json:"number"`
	ClientID          uuid.UUID           `json:"client_id"`
	Date              time.Time           `json:"date"`
	PaymentType       invoice.PaymentType `json:"payment_type"`
	Total             decimal.Decimal     `json:"total"`
	RemainingAmount   decimal.Decimal     `json:"remaining_amount"`
	Status            invoice.Status      `json:"status"`
	DaysRemaining     *int                `json:"days_remaining,omitempty"`
	DaysLate          *int                `json:"days_late,omitempty"`
	LateFeePercentage *int                `json:"late_fee_percentage,omitempty"`
	LateFeeAmount     *decimal.Decimal    `json:"late_fee_amount,omitempty"`
	Plan              *planResponse       `json:"payment_plan,omitempty"`
	Payments          []paymentResponse   `json:"payments,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         *time.Time          `json:"updated_at,omitempty"`
}

type planResponse struct {
	Frequency         invoice.Frequency `json:"frequency"`
	StartDate         time.Time         `json:"start_date"`
	TotalInstallments int               `json:"total_installments"`
	InstallmentAmount decimal.Decimal   `json:"installment_amount"`
	PaidInstallments  int               `json:"paid_installments"`
	NextPaymentDate   *time.Time        `json:"next_payment_date,omitempty"`
}

type paymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	Date              time.Time       `json:"date"`
	Amount            decimal.Decimal `json:"amount"`
	InstallmentNumber int             `json:"installment_number"`
	Method            *string         `json:"method,omitempty"`
	Attachment        *string         `json:"attachment,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	res := invoice.ComputeStatus(inv)

	resp := invoiceResponse{
		ID:                inv.ID,
		Number:            inv.Number,
		ClientID:          inv.ClientID,
		Date:              inv.Date,
		PaymentType:       inv.PaymentType,
		Total:             inv.Total,
		RemainingAmount:   inv.RemainingAmount,
		Status:            res.Status,
		DaysRemaining:     res.DaysRemaining,
		DaysLate:          res.DaysLate,
		LateFeePercentage: inv.LateFeePercentage,
		LateFeeAmount:     inv.LateFeeAmount,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}

	if inv.Plan != nil {
		resp.Plan = &planResponse{
			Frequency:         inv.Plan.Frequency,
			StartDate:         inv.Plan.StartDate,
			TotalInstallments: inv.Plan.TotalInstallments,
			InstallmentAmount: inv.Plan.InstallmentAmount,
			PaidInstallments:  inv.Plan.PaidInstallments,
			NextPaymentDate:   inv.Plan.NextPaymentDate,
		}
	}

	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:                p.ID,
			Date:              p.Date,
			Amount:            p.Amount,
			InstallmentNumber: p.InstallmentNumber,
			Method:            p.Method,
			Attachment:        p.Attachment,
		})
	}

	return resp
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}

package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound               = errors.New("invoice not found")
	ErrInvalidFrequency       = errors.New("invalid payment frequency")
	ErrTerminalStatus         = errors.New("invoice is in a terminal status")
	ErrAmountExceedsRemaining = errors.New("payment amount exceeds remaining balance")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrPlanRequired           = errors.New("credit invoices require a payment plan")
)

// PaymentType distinguishes one-time cash invoices from installment
// (credit) invoices. Immutable after creation.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeCredit PaymentType = "credit"
)

// Status represents the lifecycle state of an invoice.
//
// Only StatusPaid and StatusCancelled are authoritative when persisted;
// StatusOnTime and StatusDelayed are derived at read time by the status
// engine. StatusPending and StatusOverdue exist as legacy persisted tags
// and are never emitted by the engine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOnTime    Status = "on_time"
	StatusDelayed   Status = "delayed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusOverdue   Status = "overdue"
)

// Terminal reports whether the status requires explicit administrator
// action and must never be overwritten by derived recomputation.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Frequency is the installment cadence of a payment plan.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// PaymentPlan describes the amortization schedule of a credit invoice.
// PaidInstallments and NextPaymentDate advance each time a payment is
// registered.
type PaymentPlan struct {
	Frequency         Frequency
	StartDate         time.Time
	TotalInstallments int
	InstallmentAmount decimal.Decimal
	PaidInstallments  int
	NextPaymentDate   *time.Time
}

// Payment is one registered payment against an invoice. The list is
// append-only; payments are never edited or reordered.
type Payment struct {
	ID                uuid.UUID
	InvoiceID         uuid.UUID
	Date              time.Time
	Amount            decimal.Decimal
	InstallmentNumber int
	Method            *string
	Attachment        *string
	CreatedAt         time.Time
}

// Invoice is the persisted invoice aggregate. RemainingAmount decreases
// as payments are applied; 0 <= RemainingAmount <= Total is enforced at
// the service boundary, never inside the pure computations.
type Invoice struct {
	ID                uuid.UUID
	Number            string
	ClientID          uuid.UUID
	Date              time.Time
	PaymentType       PaymentType
	Total             decimal.Decimal
	RemainingAmount   decimal.Decimal
	Status            Status
	Payments          []Payment
	Plan              *PaymentPlan
	LateFeePercentage *int
	LateFeeAmount     *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
}

// Settled reports whether the invoice owes nothing.
func (i *Invoice) Settled() bool {
	return !i.RemainingAmount.IsPositive()
}

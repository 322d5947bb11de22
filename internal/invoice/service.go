package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateLateFee(ctx context.Context, id uuid.UUID, percentage int, amount decimal.Decimal) error

	// AddPayment persists the payment together with the invoice's new
	// remaining balance, plan position and status in one transaction.
	AddPayment(ctx context.Context, inv *Invoice, p *Payment) error

	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type PlanParams struct {
	Frequency         Frequency
	StartDate         time.Time
	TotalInstallments int
	InstallmentAmount decimal.Decimal
}

type CreateParams struct {
	Number      string
	ClientID    uuid.UUID
	Date        time.Time
	PaymentType PaymentType
	Total       decimal.Decimal
	Plan        *PlanParams
}

type ListFilter struct {
	ClientID    *uuid.UUID
	Status      *Status
	PaymentType *PaymentType
	StartDate   *time.Time
	EndDate     *time.Time
}

type PaymentParams struct {
	Date       time.Time
	Amount     decimal.Decimal
	Method     *string
	Attachment *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if !params.Total.IsPositive() {
		return nil, fmt.Errorf("%w: total must be positive", ErrInvalidAmount)
	}

	inv := &Invoice{
		Number:          params.Number,
		ClientID:        params.ClientID,
		Date:            params.Date,
		PaymentType:     params.PaymentType,
		Total:           params.Total,
		RemainingAmount: params.Total,
		Status:          StatusPending,
	}

	if inv.Number == "" {
		inv.Number = generateNumber()
	}

	switch params.PaymentType {
	case PaymentTypeCash:
		if params.Plan != nil {
			return nil, fmt.Errorf("cash invoices cannot carry a payment plan")
		}
	case PaymentTypeCredit:
		plan, err := buildPlan(params.Plan)
		if err != nil {
			return nil, err
		}

		inv.Plan = plan
	default:
		return nil, fmt.Errorf("unknown payment type %q", params.PaymentType)
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func buildPlan(params *PlanParams) (*PaymentPlan, error) {
	if params == nil {
		return nil, ErrPlanRequired
	}

	if params.TotalInstallments <= 0 {
		return nil, fmt.Errorf("%w: total installments must be positive", ErrInvalidAmount)
	}

	if !params.InstallmentAmount.IsPositive() {
		return nil, fmt.Errorf("%w: installment amount must be positive", ErrInvalidAmount)
	}

	// Validates the frequency tag up front so AddFrequency can never
	// fail later while advancing the plan.
	if _, err := AddFrequency(params.StartDate, params.Frequency); err != nil {
		return nil, err
	}

	start := params.StartDate

	return &PaymentPlan{
		Frequency:         params.Frequency,
		StartDate:         start,
		TotalInstallments: params.TotalInstallments,
		InstallmentAmount: params.InstallmentAmount,
		PaidInstallments:  0,
		NextPaymentDate:   &start,
	}, nil
}

// Get loads an invoice and refreshes its non-terminal status from the
// status engine. Persisted paid/cancelled survive as-is.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	s.refresh(inv)

	return inv, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	invs, err := s.repo.ListInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, inv := range invs {
		s.refresh(inv)
	}

	return invs, nil
}

func (s *Service) refresh(inv *Invoice) {
	if inv.Status.Terminal() {
		return
	}

	inv.Status = ComputeStatusAt(inv, s.now()).Status
}

// RegisterPayment appends a payment, decrements the remaining balance
// and advances the installment plan. The payment list is append-only;
// overpayment and payments against terminal invoices are rejected so
// 0 <= remaining <= total holds by construction.
func (s *Service) RegisterPayment(ctx context.Context, id uuid.UUID, params PaymentParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status.Terminal() || inv.Settled() {
		return nil, ErrTerminalStatus
	}

	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if params.Amount.GreaterThan(inv.RemainingAmount) {
		return nil, ErrAmountExceedsRemaining
	}

	inv.RemainingAmount = inv.RemainingAmount.Sub(params.Amount)

	payment := &Payment{
		InvoiceID:         inv.ID,
		Date:              params.Date,
		Amount:            params.Amount,
		InstallmentNumber: len(inv.Payments) + 1,
		Method:            params.Method,
		Attachment:        params.Attachment,
	}

	if inv.Plan != nil {
		if err := advancePlan(inv.Plan); err != nil {
			return nil, err
		}
	}

	if inv.Settled() {
		inv.Status = StatusPaid
	}

	if err := s.repo.AddPayment(ctx, inv, payment); err != nil {
		return nil, err
	}

	inv.Payments = append(inv.Payments, *payment)

	return inv, nil
}

// advancePlan moves the plan one installment forward. The next due date
// steps from the current one by the plan frequency and clears once the
// final installment is in.
func advancePlan(plan *PaymentPlan) error {
	plan.PaidInstallments++

	if plan.PaidInstallments >= plan.TotalInstallments {
		plan.NextPaymentDate = nil
		return nil
	}

	from := plan.StartDate
	if plan.NextPaymentDate != nil {
		from = *plan.NextPaymentDate
	}

	next, err := AddFrequency(from, plan.Frequency)
	if err != nil {
		return err
	}

	plan.NextPaymentDate = &next

	return nil
}

type LateFeeOverride struct {
	Percentage int
	Amount     decimal.Decimal
}

// ApplyLateFee computes the current late fee for a delayed cash invoice
// and persists it, or persists an explicit administrator override.
func (s *Service) ApplyLateFee(ctx context.Context, id uuid.UUID, override *LateFeeOverride) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status.Terminal() || inv.Settled() {
		return nil, ErrTerminalStatus
	}

	pct := LateFeePercentage(inv, s.now())
	amount := LateFeeAmount(inv, s.now())

	if override != nil {
		pct = override.Percentage
		amount = override.Amount
	}

	if err := s.repo.UpdateLateFee(ctx, inv.ID, pct, amount); err != nil {
		return nil, err
	}

	inv.LateFeePercentage = &pct
	inv.LateFeeAmount = &amount

	return inv, nil
}

// Cancel is a terminal administrator action; the status engine will
// never overwrite it.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	if inv.Status.Terminal() {
		return ErrTerminalStatus
	}

	return s.repo.UpdateStatus(ctx, inv.ID, StatusCancelled)
}

// MarkDelayed persists the derived delayed status, used by the refresh
// scheduler so reports and reminder deduplication can query it.
func (s *Service) MarkDelayed(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, StatusDelayed)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func generateNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

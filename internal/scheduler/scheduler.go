package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

//go:generate mockgen -source=scheduler.go -destination=scheduler_mock.go -package=scheduler
type InvoiceBook interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
	MarkDelayed(ctx context.Context, id uuid.UUID) error
	ApplyLateFee(ctx context.Context, id uuid.UUID, override *invoice.LateFeeOverride) (*invoice.Invoice, error)
}

type ClientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Notifier interface {
	SendOverdueNotice(to, clientName, invoiceNumber string, remaining decimal.Decimal, daysLate int) error
	SendLateFeeNotice(to, clientName, invoiceNumber string, percentage int, amount decimal.Decimal) error
}

// Scheduler periodically reconciles persisted invoice statuses with the
// derived ones and accrues late fees on cash invoices past the grace
// period. It is the only writer of the persisted delayed status.
type Scheduler struct {
	invoices InvoiceBook
	clients  ClientDirectory
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	// notified tracks invoices already emailed this process lifetime so
	// clients are not spammed on every sweep.
	notified map[uuid.UUID]struct{}
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithNotifier enables overdue and late fee emails. Without it the
// scheduler only updates statuses and fees.
func WithNotifier(n Notifier, clients ClientDirectory) Option {
	return func(s *Scheduler) {
		s.notifier = n
		s.clients = clients
	}
}

func New(invoices InvoiceBook, interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		invoices: invoices,
		interval: interval,
		now:      time.Now,
		notified: make(map[uuid.UUID]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("starting invoice scheduler", "interval", s.interval)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping invoice scheduler")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one reconciliation pass. Failures on a single invoice are
// logged and skipped so one bad row cannot stall the rest of the book.
func (s *Scheduler) Sweep(ctx context.Context) {
	invs, err := s.invoices.List(ctx, invoice.ListFilter{})
	if err != nil {
		slog.Error("scheduler failed to list invoices", "error", err)
		return
	}

	now := s.now()

	for _, inv := range invs {
		if inv.Status.Terminal() {
			continue
		}

		res := invoice.ComputeStatusAt(inv, now)
		if res.Status != invoice.StatusDelayed {
			continue
		}

		if inv.Status != invoice.StatusDelayed {
			if err := s.invoices.MarkDelayed(ctx, inv.ID); err != nil {
				slog.Error("scheduler failed to mark invoice delayed", "invoice", inv.Number, "error", err)
				continue
			}
		}

		s.accrueLateFee(ctx, inv, now)

		daysLate := 0
		if res.DaysLate != nil {
			daysLate = *res.DaysLate
		}

		s.notifyOverdue(ctx, inv, daysLate)
	}
}

// accrueLateFee persists the computed fee for a cash invoice once it
// becomes nonzero. An administrator override already on file is left
// untouched.
func (s *Scheduler) accrueLateFee(ctx context.Context, inv *invoice.Invoice, now time.Time) {
	if inv.PaymentType != invoice.PaymentTypeCash {
		return
	}

	pct := invoice.LateFeePercentage(inv, now)
	if pct == 0 {
		return
	}

	if inv.LateFeePercentage != nil && *inv.LateFeePercentage >= pct {
		return
	}

	updated, err := s.invoices.ApplyLateFee(ctx, inv.ID, nil)
	if err != nil {
		slog.Error("scheduler failed to apply late fee", "invoice", inv.Number, "error", err)
		return
	}

	slog.Info("late fee applied", "invoice", inv.Number, "percentage", pct)

	if s.notifier == nil || updated.LateFeeAmount == nil {
		return
	}

	client, err := s.clients.Get(ctx, inv.ClientID)
	if err != nil {
		slog.Error("scheduler failed to resolve client", "invoice", inv.Number, "error", err)
		return
	}

	if err := s.notifier.SendLateFeeNotice(client.Email, client.Name, inv.Number, pct, *updated.LateFeeAmount); err != nil {
		slog.Error("failed to send late fee notice", "invoice", inv.Number, "error", err)
	}
}

func (s *Scheduler) notifyOverdue(ctx context.Context, inv *invoice.Invoice, daysLate int) {
	if s.notifier == nil {
		return
	}

	if _, ok := s.notified[inv.ID]; ok {
		return
	}

	client, err := s.clients.Get(ctx, inv.ClientID)
	if err != nil {
		slog.Error("scheduler failed to resolve client", "invoice", inv.Number, "error", err)
		return
	}

	if err := s.notifier.SendOverdueNotice(client.Email, client.Name, inv.Number, inv.RemainingAmount, daysLate); err != nil {
		slog.Error("failed to send overdue notice", "invoice", inv.Number, "error", err)
		return
	}

	s.notified[inv.ID] = struct{}{}
}

package report

import (
	"context"
	"sort"
	"time"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=report
type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Service struct {
	invoices InvoiceLister
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(invoices InvoiceLister, opts ...Option) *Service {
	s := &Service{invoices: invoices, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) window(tf Timeframe) (*time.Time, *time.Time) {
	if tf == TimeframeAll {
		return nil, nil
	}

	start, end := DateRange(tf, s.now())

	return &start, &end
}

// Summarize aggregates the invoice book for a preset window.
func (s *Service) Summarize(ctx context.Context, tf Timeframe) (*Summary, error) {
	start, end := s.window(tf)
	return s.SummarizeBetween(ctx, start, end)
}

// SummarizeBetween aggregates the invoice book between two dates; nil
// bounds mean the whole book. Statuses are derived fresh, so a stored
// interim tag never skews the report.
func (s *Service) SummarizeBetween(ctx context.Context, start, end *time.Time) (*Summary, error) {
	invs, err := s.invoices.List(ctx, invoice.ListFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	now := s.now()

	summary := &Summary{
		ByStatus: make(map[invoice.Status]int),
	}

	for _, inv := range invs {
		res := invoice.ComputeStatusAt(inv, now)

		summary.TotalInvoices++
		summary.ByStatus[res.Status]++
		summary.TotalBilled = summary.TotalBilled.Add(inv.Total)

		if res.Status == invoice.StatusCancelled {
			continue
		}

		summary.Outstanding = summary.Outstanding.Add(inv.RemainingAmount)

		if inv.LateFeeAmount != nil {
			summary.AccruedLateFees = summary.AccruedLateFees.Add(*inv.LateFeeAmount)
		}
	}

	return summary, nil
}

// Delinquencies lists invoices whose derived status is delayed, most
// overdue first, for a preset window.
func (s *Service) Delinquencies(ctx context.Context, tf Timeframe) ([]Delinquency, error) {
	start, end := s.window(tf)
	return s.DelinquenciesBetween(ctx, start, end)
}

// DelinquenciesBetween is the date-bounded variant of Delinquencies.
// The late fee column shows the persisted fee when an administrator has
// applied one and the current computed fee otherwise.
func (s *Service) DelinquenciesBetween(ctx context.Context, start, end *time.Time) ([]Delinquency, error) {
	invs, err := s.invoices.List(ctx, invoice.ListFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	now := s.now()

	var out []Delinquency

	for _, inv := range invs {
		res := invoice.ComputeStatusAt(inv, now)
		if res.Status != invoice.StatusDelayed {
			continue
		}

		d := Delinquency{
			InvoiceID:   inv.ID,
			Number:      inv.Number,
			ClientID:    inv.ClientID,
			PaymentType: inv.PaymentType,
			Remaining:   inv.RemainingAmount,
		}

		if res.DaysLate != nil {
			d.DaysLate = *res.DaysLate
		}

		if inv.LateFeeAmount != nil {
			d.LateFeeAmount = *inv.LateFeeAmount
		} else {
			d.LateFeeAmount = invoice.LateFeeAmount(inv, now)
		}

		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysLate > out[j].DaysLate
	})

	return out, nil
}

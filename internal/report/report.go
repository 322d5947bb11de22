package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

// Timeframe is a preset reporting window.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = 0
	TimeframeLastMonth Timeframe = 1
	TimeframeThisYear  Timeframe = 2
	TimeframeAll       Timeframe = 3
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeAll:
		return "All Time"
	}

	return "Unknown"
}

// DateRange resolves a preset window against the given instant. The
// zero times for TimeframeAll mean "no bound".
func DateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	var start, end time.Time

	switch tf {
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now
	case TimeframeLastMonth:
		lastMonth := now.AddDate(0, -1, 0)
		start = time.Date(lastMonth.Year(), lastMonth.Month(), 1, 0, 0, 0, 0, lastMonth.Location())
		end = start.AddDate(0, 1, -1)
	case TimeframeThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end = now
	}

	return start, end
}

// Summary aggregates the invoice book by derived status.
type Summary struct {
	TotalInvoices   int
	ByStatus        map[invoice.Status]int
	TotalBilled     decimal.Decimal
	Outstanding     decimal.Decimal
	AccruedLateFees decimal.Decimal
}

// Delinquency is one overdue invoice line for the collections view.
type Delinquency struct {
	InvoiceID     uuid.UUID
	Number        string
	ClientID      uuid.UUID
	PaymentType   invoice.PaymentType
	Remaining     decimal.Decimal
	DaysLate      int
	LateFeeAmount decimal.Decimal
}

package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/report"
)

var reportNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func reportClock() time.Time { return reportNow }

func cashAged(ageDays int, total, remaining int64) *invoice.Invoice {
	return &invoice.Invoice{
		ID:              uuid.New(),
		Number:          "INV-TEST",
		ClientID:        uuid.New(),
		Date:            reportNow.AddDate(0, 0, -ageDays),
		PaymentType:     invoice.PaymentTypeCash,
		Total:           decimal.NewFromInt(total),
		RemainingAmount: decimal.NewFromInt(remaining),
		Status:          invoice.StatusPending,
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name      string
		tf        report.Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "ThisMonth",
			tf:        report.TimeframeThisMonth,
			wantStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   reportNow,
		},
		{
			name:      "LastMonth",
			tf:        report.TimeframeLastMonth,
			wantStart: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "ThisYear",
			tf:        report.TimeframeThisYear,
			wantStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   reportNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := report.DateRange(tt.tf, reportNow)
			assert.True(t, start.Equal(tt.wantStart), "start = %s", start)
			assert.True(t, end.Equal(tt.wantEnd), "end = %s", end)
		})
	}
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persistedFee := decimal.NewFromInt(50)

	fresh := cashAged(10, 200, 200)

	overdue := cashAged(120, 500, 500)
	overdue.LateFeeAmount = &persistedFee

	paid := cashAged(40, 300, 0)
	paid.Status = invoice.StatusPaid

	cancelled := cashAged(200, 1000, 1000)
	cancelled.Status = invoice.StatusCancelled

	lister := report.NewMockInvoiceLister(ctrl)
	lister.EXPECT().
		List(gomock.Any(), invoice.ListFilter{}).
		Return([]*invoice.Invoice{fresh, overdue, paid, cancelled}, nil)

	svc := report.NewService(lister, report.WithClock(reportClock))

	summary, err := svc.Summarize(context.Background(), report.TimeframeAll)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalInvoices)
	assert.Equal(t, 1, summary.ByStatus[invoice.StatusOnTime])
	assert.Equal(t, 1, summary.ByStatus[invoice.StatusDelayed])
	assert.Equal(t, 1, summary.ByStatus[invoice.StatusPaid])
	assert.Equal(t, 1, summary.ByStatus[invoice.StatusCancelled])

	assert.True(t, summary.TotalBilled.Equal(decimal.NewFromInt(2000)), "billed = %s", summary.TotalBilled)
	// Cancelled balances are written off.
	assert.True(t, summary.Outstanding.Equal(decimal.NewFromInt(700)), "outstanding = %s", summary.Outstanding)
	assert.True(t, summary.AccruedLateFees.Equal(persistedFee), "fees = %s", summary.AccruedLateFees)
}

func TestService_Summarize_WindowFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := report.NewMockInvoiceLister(ctrl)
	lister.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.EndDate)
			assert.True(t, filter.StartDate.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
			assert.True(t, filter.EndDate.Equal(reportNow))
			return nil, nil
		})

	svc := report.NewService(lister, report.WithClock(reportClock))

	summary, err := svc.Summarize(context.Background(), report.TimeframeThisMonth)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalInvoices)
}

func TestService_Delinquencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persistedFee := decimal.NewFromInt(75)

	older := cashAged(200, 400, 400)
	older.Number = "INV-OLD"
	older.LateFeeAmount = &persistedFee

	newer := cashAged(95, 500, 500)
	newer.Number = "INV-NEW"

	current := cashAged(5, 100, 100)

	lister := report.NewMockInvoiceLister(ctrl)
	lister.EXPECT().
		List(gomock.Any(), invoice.ListFilter{}).
		Return([]*invoice.Invoice{newer, current, older}, nil)

	svc := report.NewService(lister, report.WithClock(reportClock))

	rows, err := svc.Delinquencies(context.Background(), report.TimeframeAll)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "INV-OLD", rows[0].Number)
	assert.Equal(t, 200, rows[0].DaysLate)
	// Persisted fee wins over recomputation.
	assert.True(t, rows[0].LateFeeAmount.Equal(persistedFee), "fee = %s", rows[0].LateFeeAmount)

	assert.Equal(t, "INV-NEW", rows[1].Number)
	assert.Equal(t, 95, rows[1].DaysLate)
	// 95 days is three billing months late, so the fee is 10% of 500.
	assert.True(t, rows[1].LateFeeAmount.Equal(decimal.NewFromInt(50)), "fee = %s", rows[1].LateFeeAmount)
}

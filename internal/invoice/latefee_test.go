package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

func TestLateFeePercentage_Tiers(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name    string
		ageDays int
		want    int
	}

	tests := []testCase{
		{name: "FreshInvoice", ageDays: 0, want: 0},
		{name: "JustInsideGrace", ageDays: 89, want: 0},
		{name: "ThreeMonths", ageDays: 90, want: 10},
		{name: "FiveMonths", ageDays: 179, want: 10},
		{name: "SixMonths", ageDays: 180, want: 20},
		{name: "EightMonths", ageDays: 269, want: 20},
		{name: "NineMonths", ageDays: 270, want: 30},
		{name: "ElevenMonths", ageDays: 359, want: 30},
		{name: "TwelveMonths", ageDays: 360, want: 40},
		{name: "TwoYears", ageDays: 720, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{
				PaymentType:     invoice.PaymentTypeCash,
				Date:            now.AddDate(0, 0, -tt.ageDays),
				Total:           decimal.NewFromInt(1000),
				RemainingAmount: decimal.NewFromInt(1000),
			}

			assert.Equal(t, tt.want, invoice.LateFeePercentage(inv, now))
		})
	}
}

func TestLateFeePercentage_CreditNeverAccrues(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	inv := &invoice.Invoice{
		PaymentType:     invoice.PaymentTypeCredit,
		Date:            now.AddDate(0, 0, -720),
		Total:           decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
	}

	assert.Equal(t, 0, invoice.LateFeePercentage(inv, now))
	assert.True(t, invoice.LateFeeAmount(inv, now).IsZero())
}

func TestLateFeeAmount(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		ageDays   int
		remaining int64
		want      int64
	}

	tests := []testCase{
		{name: "NoFeeInsideGrace", ageDays: 89, remaining: 1000, want: 0},
		{name: "TenPercent", ageDays: 90, remaining: 1000, want: 100},
		{name: "TwentyPercent", ageDays: 180, remaining: 1000, want: 200},
		{name: "ThirtyPercent", ageDays: 270, remaining: 1000, want: 300},
		{name: "FortyPercent", ageDays: 360, remaining: 1000, want: 400},
		{name: "SettledInvoiceNoFee", ageDays: 360, remaining: 0, want: 0},
		{
			// The fee compounds on the unpaid principal, not the total.
			name:      "PartiallyPaidUsesRemaining",
			ageDays:   90,
			remaining: 400,
			want:      40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{
				PaymentType:     invoice.PaymentTypeCash,
				Date:            now.AddDate(0, 0, -tt.ageDays),
				Total:           decimal.NewFromInt(1000),
				RemainingAmount: decimal.NewFromInt(tt.remaining),
			}

			got := invoice.LateFeeAmount(inv, now)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

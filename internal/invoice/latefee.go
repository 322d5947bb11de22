package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// lateFeeGraceDays is how long a cash invoice may stay unpaid before it
// is considered delayed and starts accruing the late fee.
const lateFeeGraceDays = 90

var oneHundred = decimal.NewFromInt(100)

// LateFeePercentage returns the tiered penalty percentage for a cash
// invoice as of now. Credit invoices never accrue this fee; their
// lateness is expressed purely through status.
//
// Months overdue use a flat 30-day month, deliberately not
// calendar-month arithmetic: switching would shift fee amounts for
// invoices near tier boundaries.
func LateFeePercentage(inv *Invoice, now time.Time) int {
	if inv.PaymentType != PaymentTypeCash {
		return 0
	}

	months := daysElapsed(inv.Date, now) / 30

	switch {
	case months < 3:
		return 0
	case months < 6:
		return 10
	case months < 9:
		return 20
	case months < 12:
		return 30
	default:
		return 40
	}
}

// LateFeeAmount returns the monetary penalty for a cash invoice as of
// now. The fee applies to the unpaid principal at evaluation time, not
// the original invoice total.
func LateFeeAmount(inv *Invoice, now time.Time) decimal.Decimal {
	pct := LateFeePercentage(inv, now)
	if pct == 0 || !inv.RemainingAmount.IsPositive() {
		return decimal.Zero
	}

	return inv.RemainingAmount.Mul(decimal.NewFromInt(int64(pct))).Div(oneHundred)
}

package invoice

import (
	"time"
)

// Installment fallback periods when a plan has no resolvable
// NextPaymentDate. Frequencies outside this table are never considered
// due by the fallback.
const (
	fallbackPeriodMonthly  = 30
	fallbackPeriodBiweekly = 14
)

// StatusResult is the derived lifecycle state of an invoice at a given
// instant.
//
// DaysRemaining carries a true countdown only for credit invoices with
// a future NextPaymentDate. For cash invoices (and the defensive
// no-plan branch) it holds the positive count of days elapsed since
// issue: cash invoices have no due date, and callers have always
// displayed invoice age under this field. The mislabel is preserved
// deliberately.
type StatusResult struct {
	Status        Status
	DaysRemaining *int
	DaysLate      *int
}

func intp(n int) *int { return &n }

// ComputeStatus derives the invoice status against the wall clock.
func ComputeStatus(inv *Invoice) StatusResult {
	return ComputeStatusAt(inv, time.Now())
}

// ComputeStatusAt derives the lifecycle status of an invoice at the
// given instant. It is pure: it never mutates the invoice, and repeated
// calls with the same snapshot and instant return identical results, so
// it is safe to run on every read and on a polling timer.
//
// Dispatch order: terminal persisted status, settled balance, then
// payment type. Persisted interim statuses are ignored; only
// administrator-set terminal states survive recomputation.
func ComputeStatusAt(inv *Invoice, now time.Time) StatusResult {
	if inv.Status == StatusCancelled {
		return StatusResult{Status: StatusCancelled}
	}

	if inv.Settled() {
		return StatusResult{Status: StatusPaid}
	}

	switch {
	case inv.PaymentType == PaymentTypeCash:
		return cashStatus(inv, now)
	case inv.Plan != nil:
		return creditStatus(inv, now)
	default:
		// No plan on a credit invoice should not happen for well-formed
		// data; report age since issue and keep it on time.
		return StatusResult{
			Status:        StatusOnTime,
			DaysRemaining: intp(DaysRemaining(now, inv.Date)),
		}
	}
}

// cashStatus: owing past the 90-day grace window means delayed. Both
// day counts reuse DaysRemaining measured from the issue date, which
// yields a positive "days elapsed" figure in both branches.
func cashStatus(inv *Invoice, now time.Time) StatusResult {
	if daysElapsed(inv.Date, now) >= lateFeeGraceDays {
		return StatusResult{
			Status:   StatusDelayed,
			DaysLate: intp(DaysRemaining(now, inv.Date)),
		}
	}

	return StatusResult{
		Status:        StatusOnTime,
		DaysRemaining: intp(DaysRemaining(now, inv.Date)),
	}
}

func creditStatus(inv *Invoice, now time.Time) StatusResult {
	plan := inv.Plan

	if next := plan.NextPaymentDate; next != nil {
		// The boundary is inclusive toward delayed: an installment due
		// exactly now is already late.
		if next.After(now) {
			return StatusResult{
				Status:        StatusOnTime,
				DaysRemaining: intp(DaysRemaining(*next, now)),
			}
		}

		return StatusResult{
			Status:   StatusDelayed,
			DaysLate: intp(DaysRemaining(now, *next)),
		}
	}

	return installmentFallback(inv, now)
}

// installmentFallback derives status by counting due installments from
// the plan start when no NextPaymentDate is resolvable. Only monthly
// and biweekly cadences have a fallback period; any other frequency is
// never considered due here.
func installmentFallback(inv *Invoice, now time.Time) StatusResult {
	plan := inv.Plan

	var period int

	switch plan.Frequency {
	case FrequencyMonthly:
		period = fallbackPeriodMonthly
	case FrequencyBiweekly:
		period = fallbackPeriodBiweekly
	default:
		return StatusResult{Status: StatusOnTime}
	}

	days := daysElapsed(plan.StartDate, now)
	if days < period {
		// First installment not yet due.
		return StatusResult{Status: StatusOnTime}
	}

	due := days/period + 1
	if due > plan.TotalInstallments {
		due = plan.TotalInstallments
	}

	paid := len(inv.Payments)

	switch {
	case paid >= plan.TotalInstallments:
		return StatusResult{Status: StatusPaid}
	case paid >= due:
		return StatusResult{Status: StatusOnTime}
	default:
		return StatusResult{
			Status:   StatusDelayed,
			DaysLate: intp(DaysRemaining(now, plan.StartDate)),
		}
	}
}

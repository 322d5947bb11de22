package view

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

// FormatMoney formats a monetary amount with two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return "RD$ " + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

var statusColors = map[invoice.Status]string{
	invoice.StatusOnTime:    "42",
	invoice.StatusDelayed:   "196",
	invoice.StatusPaid:      "39",
	invoice.StatusCancelled: "240",
	invoice.StatusPending:   "226",
}

// RenderStatus colors a status label for table display.
func RenderStatus(s invoice.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = "15"
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(s))
}

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

var sweepNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func sweepClock() time.Time { return sweepNow }

func overdueCash(ageDays int, remaining int64) *invoice.Invoice {
	return &invoice.Invoice{
		ID:              uuid.New(),
		Number:          "INV-SWEEP",
		ClientID:        uuid.New(),
		Date:            sweepNow.AddDate(0, 0, -ageDays),
		PaymentType:     invoice.PaymentTypeCash,
		Total:           decimal.NewFromInt(remaining),
		RemainingAmount: decimal.NewFromInt(remaining),
		Status:          invoice.StatusPending,
	}
}

func TestSweep_MarksDelayedAndAccruesFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := overdueCash(120, 500)
	fee := decimal.NewFromInt(50)
	updated := *inv
	updated.LateFeeAmount = &fee

	client := &user.User{ID: inv.ClientID, Name: "Maria", Email: "maria@example.com"}

	book := NewMockInvoiceBook(ctrl)
	book.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return([]*invoice.Invoice{inv}, nil)
	book.EXPECT().MarkDelayed(gomock.Any(), inv.ID).Return(nil)
	book.EXPECT().ApplyLateFee(gomock.Any(), inv.ID, nil).Return(&updated, nil)

	clients := NewMockClientDirectory(ctrl)
	clients.EXPECT().Get(gomock.Any(), inv.ClientID).Return(client, nil).Times(2)

	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().SendLateFeeNotice(client.Email, client.Name, inv.Number, 10, fee).Return(nil)
	notifier.EXPECT().SendOverdueNotice(client.Email, client.Name, inv.Number, inv.RemainingAmount, 120).Return(nil)

	s := New(book, time.Minute, WithClock(sweepClock), WithNotifier(notifier, clients))
	s.Sweep(context.Background())
}

func TestSweep_SkipsTerminalAndCurrentInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	paid := overdueCash(200, 0)
	paid.Status = invoice.StatusPaid

	current := overdueCash(10, 300)

	book := NewMockInvoiceBook(ctrl)
	book.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return([]*invoice.Invoice{paid, current}, nil)

	s := New(book, time.Minute, WithClock(sweepClock))
	s.Sweep(context.Background())
}

func TestSweep_NotifiesOncePerInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Inside the grace period for fees but already past due on its plan.
	next := sweepNow.AddDate(0, 0, -5)
	inv := &invoice.Invoice{
		ID:              uuid.New(),
		Number:          "INV-PLAN",
		ClientID:        uuid.New(),
		Date:            sweepNow.AddDate(0, 0, -20),
		PaymentType:     invoice.PaymentTypeCredit,
		Total:           decimal.NewFromInt(900),
		RemainingAmount: decimal.NewFromInt(600),
		Status:          invoice.StatusDelayed,
		Plan: &invoice.PaymentPlan{
			Frequency:         invoice.FrequencyMonthly,
			StartDate:         sweepNow.AddDate(0, 0, -20),
			TotalInstallments: 3,
			InstallmentAmount: decimal.NewFromInt(300),
			PaidInstallments:  1,
			NextPaymentDate:   &next,
		},
	}

	client := &user.User{ID: inv.ClientID, Name: "Jose", Email: "jose@example.com"}

	book := NewMockInvoiceBook(ctrl)
	book.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return([]*invoice.Invoice{inv}, nil).Times(2)

	clients := NewMockClientDirectory(ctrl)
	clients.EXPECT().Get(gomock.Any(), inv.ClientID).Return(client, nil)

	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().SendOverdueNotice(client.Email, client.Name, inv.Number, inv.RemainingAmount, 5).Return(nil)

	s := New(book, time.Minute, WithClock(sweepClock), WithNotifier(notifier, clients))
	s.Sweep(context.Background())
	s.Sweep(context.Background())
}

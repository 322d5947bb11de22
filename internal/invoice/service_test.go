package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

func fixedClock() time.Time { return statusNow }

func TestService_Create(t *testing.T) {
	clientID := uuid.New()

	type testCase struct {
		name      string
		params    invoice.CreateParams
		setupMock func(m *invoice.MockRepository)
		check     func(t *testing.T, inv *invoice.Invoice)
		wantErr   error
	}

	planParams := &invoice.PlanParams{
		Frequency:         invoice.FrequencyMonthly,
		StartDate:         statusNow,
		TotalInstallments: 3,
		InstallmentAmount: decimal.NewFromInt(300),
	}

	tests := []testCase{
		{
			name: "CashInvoice",
			params: invoice.CreateParams{
				Number:      "INV-0001",
				ClientID:    clientID,
				Date:        statusNow,
				PaymentType: invoice.PaymentTypeCash,
				Total:       decimal.NewFromInt(1000),
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.True(t, inv.RemainingAmount.Equal(inv.Total))
				assert.Equal(t, invoice.StatusPending, inv.Status)
				assert.Nil(t, inv.Plan)
			},
		},
		{
			name: "CreditInvoiceSeedsPlan",
			params: invoice.CreateParams{
				ClientID:    clientID,
				Date:        statusNow,
				PaymentType: invoice.PaymentTypeCredit,
				Total:       decimal.NewFromInt(900),
				Plan:        planParams,
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				require.NotNil(t, inv.Plan)
				assert.Equal(t, 0, inv.Plan.PaidInstallments)
				require.NotNil(t, inv.Plan.NextPaymentDate)
				// First installment comes due at the plan start.
				assert.True(t, inv.Plan.NextPaymentDate.Equal(statusNow))
				assert.NotEmpty(t, inv.Number)
			},
		},
		{
			name: "CreditWithoutPlanRejected",
			params: invoice.CreateParams{
				ClientID:    clientID,
				Date:        statusNow,
				PaymentType: invoice.PaymentTypeCredit,
				Total:       decimal.NewFromInt(900),
			},
			wantErr: invoice.ErrPlanRequired,
		},
		{
			name: "ZeroTotalRejected",
			params: invoice.CreateParams{
				ClientID:    clientID,
				Date:        statusNow,
				PaymentType: invoice.PaymentTypeCash,
				Total:       decimal.Zero,
			},
			wantErr: invoice.ErrInvalidAmount,
		},
		{
			name: "UnknownFrequencyRejected",
			params: invoice.CreateParams{
				ClientID:    clientID,
				Date:        statusNow,
				PaymentType: invoice.PaymentTypeCredit,
				Total:       decimal.NewFromInt(900),
				Plan: &invoice.PlanParams{
					Frequency:         invoice.Frequency("yearly"),
					StartDate:         statusNow,
					TotalInstallments: 3,
					InstallmentAmount: decimal.NewFromInt(300),
				},
			},
			wantErr: invoice.ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo, invoice.WithClock(fixedClock))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Get_RefreshesDerivedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

	id := uuid.New()
	stored := cashInvoice(120, 500)
	stored.ID = id
	stored.Status = invoice.StatusPending

	repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored, nil)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusDelayed, got.Status)
}

func TestService_Get_KeepsTerminalStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

	id := uuid.New()
	stored := cashInvoice(120, 500)
	stored.ID = id
	stored.Status = invoice.StatusCancelled

	repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored, nil)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusCancelled, got.Status)
}

func TestService_RegisterPayment(t *testing.T) {
	newCredit := func() *invoice.Invoice {
		start := statusNow.AddDate(0, 0, -10)

		return &invoice.Invoice{
			ID:              uuid.New(),
			PaymentType:     invoice.PaymentTypeCredit,
			Date:            start,
			Status:          invoice.StatusPending,
			Total:           decimal.NewFromInt(900),
			RemainingAmount: decimal.NewFromInt(900),
			Plan: &invoice.PaymentPlan{
				Frequency:         invoice.FrequencyMonthly,
				StartDate:         start,
				TotalInstallments: 3,
				InstallmentAmount: decimal.NewFromInt(300),
				PaidInstallments:  0,
				NextPaymentDate:   &start,
			},
		}
	}

	t.Run("AdvancesPlanAndBalance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := newCredit()
		start := inv.Plan.StartDate

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)
		repo.EXPECT().AddPayment(gomock.Any(), inv, gomock.Any()).Return(nil)

		got, err := svc.RegisterPayment(context.Background(), inv.ID, invoice.PaymentParams{
			Date:   statusNow,
			Amount: decimal.NewFromInt(300),
		})
		require.NoError(t, err)

		assert.True(t, got.RemainingAmount.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, 1, got.Plan.PaidInstallments)
		require.NotNil(t, got.Plan.NextPaymentDate)
		assert.True(t, got.Plan.NextPaymentDate.Equal(start.AddDate(0, 1, 0)))
		require.Len(t, got.Payments, 1)
		assert.Equal(t, 1, got.Payments[0].InstallmentNumber)
	})

	t.Run("FinalPaymentSettlesInvoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := newCredit()
		inv.RemainingAmount = decimal.NewFromInt(300)
		inv.Plan.PaidInstallments = 2
		inv.Payments = []invoice.Payment{
			{InstallmentNumber: 1}, {InstallmentNumber: 2},
		}

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)
		repo.EXPECT().AddPayment(gomock.Any(), inv, gomock.Any()).Return(nil)

		got, err := svc.RegisterPayment(context.Background(), inv.ID, invoice.PaymentParams{
			Date:   statusNow,
			Amount: decimal.NewFromInt(300),
		})
		require.NoError(t, err)

		assert.Equal(t, invoice.StatusPaid, got.Status)
		assert.True(t, got.RemainingAmount.IsZero())
		assert.Nil(t, got.Plan.NextPaymentDate)
		assert.Equal(t, 3, got.Plan.PaidInstallments)
	})

	t.Run("OverpaymentRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := newCredit()
		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

		_, err := svc.RegisterPayment(context.Background(), inv.ID, invoice.PaymentParams{
			Date:   statusNow,
			Amount: decimal.NewFromInt(1500),
		})
		assert.ErrorIs(t, err, invoice.ErrAmountExceedsRemaining)
	})

	t.Run("CancelledInvoiceRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := newCredit()
		inv.Status = invoice.StatusCancelled
		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

		_, err := svc.RegisterPayment(context.Background(), inv.ID, invoice.PaymentParams{
			Date:   statusNow,
			Amount: decimal.NewFromInt(300),
		})
		assert.ErrorIs(t, err, invoice.ErrTerminalStatus)
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := newCredit()
		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

		_, err := svc.RegisterPayment(context.Background(), inv.ID, invoice.PaymentParams{
			Date:   statusNow,
			Amount: decimal.Zero,
		})
		assert.ErrorIs(t, err, invoice.ErrInvalidAmount)
	})
}

func TestService_ApplyLateFee(t *testing.T) {
	t.Run("ComputesAndPersists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := cashInvoice(180, 1000)
		inv.ID = uuid.New()
		inv.Status = invoice.StatusPending

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)
		repo.EXPECT().
			UpdateLateFee(gomock.Any(), inv.ID, 20, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, amount decimal.Decimal) error {
				assert.True(t, amount.Equal(decimal.NewFromInt(200)))
				return nil
			})

		got, err := svc.ApplyLateFee(context.Background(), inv.ID, nil)
		require.NoError(t, err)
		require.NotNil(t, got.LateFeePercentage)
		assert.Equal(t, 20, *got.LateFeePercentage)
	})

	t.Run("AdministratorOverride", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := cashInvoice(180, 1000)
		inv.ID = uuid.New()
		inv.Status = invoice.StatusPending

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)
		repo.EXPECT().UpdateLateFee(gomock.Any(), inv.ID, 5, gomock.Any()).Return(nil)

		got, err := svc.ApplyLateFee(context.Background(), inv.ID, &invoice.LateFeeOverride{
			Percentage: 5,
			Amount:     decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		require.NotNil(t, got.LateFeePercentage)
		assert.Equal(t, 5, *got.LateFeePercentage)
	})

	t.Run("SettledInvoiceRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := cashInvoice(180, 0)
		inv.ID = uuid.New()
		inv.Status = invoice.StatusPaid

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

		_, err := svc.ApplyLateFee(context.Background(), inv.ID, nil)
		assert.ErrorIs(t, err, invoice.ErrTerminalStatus)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := cashInvoice(10, 500)
		inv.ID = uuid.New()
		inv.Status = invoice.StatusPending

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), inv.ID, invoice.StatusCancelled).Return(nil)

		require.NoError(t, svc.Cancel(context.Background(), inv.ID))
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		inv := cashInvoice(10, 0)
		inv.ID = uuid.New()
		inv.Status = invoice.StatusPaid

		repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

		assert.ErrorIs(t, svc.Cancel(context.Background(), inv.ID), invoice.ErrTerminalStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

		id := uuid.New()
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(nil, invoice.ErrNotFound)

		assert.ErrorIs(t, svc.Cancel(context.Background(), id), invoice.ErrNotFound)
	})
}

func TestService_List_FilterPassthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

	status := invoice.StatusDelayed
	filter := invoice.ListFilter{Status: &status}

	repo.EXPECT().
		ListInvoices(gomock.Any(), filter).
		Return([]*invoice.Invoice{cashInvoice(120, 500), cashInvoice(10, 500)}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, invoice.StatusDelayed, got[0].Status)
	assert.Equal(t, invoice.StatusOnTime, got[1].Status)
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo, invoice.WithClock(fixedClock))

	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	got, err := svc.Create(context.Background(), invoice.CreateParams{
		ClientID:    uuid.New(),
		Date:        statusNow,
		PaymentType: invoice.PaymentTypeCash,
		Total:       decimal.NewFromInt(100),
	})
	assert.Error(t, err)
	assert.Nil(t, got)
}

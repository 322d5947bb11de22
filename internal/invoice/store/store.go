package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.number, i.client_id, i.date, i.payment_type, i.total, i.remaining_amount,
	i.status, i.late_fee_percentage, i.late_fee_amount,
	p.frequency, p.start_date, p.total_installments, p.installment_amount,
	p.paid_installments, p.next_payment_date,
	i.created_at, i.updated_at, i.deleted_at
`

// scanInvoice reads one invoice row (left-joined with its payment plan)
// and returns a populated Invoice without payments.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv         invoice.Invoice
		typeStr     string
		statusStr   string
		feePct      sql.NullInt64
		feeAmount   decimal.NullDecimal
		frequency   sql.NullString
		startDate   sql.NullTime
		totalInst   sql.NullInt64
		instAmount  decimal.NullDecimal
		paidInst    sql.NullInt64
		nextPayment sql.NullTime
	)

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &inv.Date, &typeStr, &inv.Total, &inv.RemainingAmount,
		&statusStr, &feePct, &feeAmount,
		&frequency, &startDate, &totalInst, &instAmount, &paidInst, &nextPayment,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	); err != nil {
		return nil, err
	}

	inv.PaymentType = invoice.PaymentType(typeStr)
	inv.Status = invoice.Status(statusStr)

	if feePct.Valid {
		pct := int(feePct.Int64)
		inv.LateFeePercentage = &pct
	}

	if feeAmount.Valid {
		inv.LateFeeAmount = &feeAmount.Decimal
	}

	if frequency.Valid {
		plan := &invoice.PaymentPlan{
			Frequency:         invoice.Frequency(frequency.String),
			StartDate:         startDate.Time,
			TotalInstallments: int(totalInst.Int64),
			InstallmentAmount: instAmount.Decimal,
			PaidInstallments:  int(paidInst.Int64),
		}

		if nextPayment.Valid {
			next := nextPayment.Time
			plan.NextPaymentDate = &next
		}

		inv.Plan = plan
	}

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (number, client_id, date, payment_type, total, remaining_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.Number,
		inv.ClientID,
		inv.Date,
		inv.PaymentType,
		inv.Total,
		inv.RemainingAmount,
		inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if inv.Plan != nil {
		planQuery := `
			INSERT INTO payment_plans (invoice_id, frequency, start_date, total_installments, installment_amount, paid_installments, next_payment_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		if _, err := tx.ExecContext(ctx, planQuery,
			inv.ID,
			inv.Plan.Frequency,
			inv.Plan.StartDate,
			inv.Plan.TotalInstallments,
			inv.Plan.InstallmentAmount,
			inv.Plan.PaidInstallments,
			inv.Plan.NextPaymentDate,
		); err != nil {
			return fmt.Errorf("creating payment plan: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN payment_plans p ON p.invoice_id = i.id
		WHERE i.id = $1 AND i.deleted_at IS NULL`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	payments, err := s.listPayments(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	inv.Payments = payments

	return inv, nil
}

func (s *Store) listPayments(ctx context.Context, invoiceID uuid.UUID) ([]invoice.Payment, error) {
	query := `
		SELECT id, invoice_id, date, amount, installment_number, method, attachment, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY installment_number ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []invoice.Payment

	for rows.Next() {
		var (
			p          invoice.Payment
			method     sql.NullString
			attachment sql.NullString
		)

		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.Date, &p.Amount, &p.InstallmentNumber,
			&method, &attachment, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		if method.Valid {
			p.Method = &method.String
		}

		if attachment.Valid {
			p.Attachment = &attachment.String
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN payment_plans p ON p.invoice_id = i.id
		WHERE i.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND i.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.PaymentType != nil {
		query += fmt.Sprintf(" AND i.payment_type = $%d", argIdx)

		args = append(args, *filter.PaymentType)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND i.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND i.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY i.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	for _, inv := range invs {
		payments, err := s.listPayments(ctx, inv.ID)
		if err != nil {
			return nil, err
		}

		inv.Payments = payments
	}

	return invs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status invoice.Status) error {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (s *Store) UpdateLateFee(ctx context.Context, id uuid.UUID, percentage int, amount decimal.Decimal) error {
	query := `
		UPDATE invoices
		SET late_fee_percentage = $1, late_fee_amount = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, percentage, amount, id)
	if err != nil {
		return fmt.Errorf("updating late fee: %w", err)
	}

	return nil
}

// AddPayment persists the payment row, the invoice's new balance and
// status, and the advanced plan position in a single transaction.
func (s *Store) AddPayment(ctx context.Context, inv *invoice.Invoice, p *invoice.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	paymentQuery := `
		INSERT INTO payments (invoice_id, date, amount, installment_number, method, attachment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, paymentQuery,
		inv.ID,
		p.Date,
		p.Amount,
		p.InstallmentNumber,
		p.Method,
		p.Attachment,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	invoiceQuery := `
		UPDATE invoices
		SET remaining_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	if _, err := tx.ExecContext(ctx, invoiceQuery, inv.RemainingAmount, inv.Status, inv.ID); err != nil {
		return fmt.Errorf("updating invoice balance: %w", err)
	}

	if inv.Plan != nil {
		planQuery := `
			UPDATE payment_plans
			SET paid_installments = $1, next_payment_date = $2
			WHERE invoice_id = $3
		`

		if _, err := tx.ExecContext(ctx, planQuery, inv.Plan.PaidInstallments, inv.Plan.NextPaymentDate, inv.ID); err != nil {
			return fmt.Errorf("updating payment plan: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE invoices
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

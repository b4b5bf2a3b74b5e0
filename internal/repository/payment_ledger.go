package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

type paymentLedger struct {
	db *sqlx.DB
}

// NewPaymentLedger stores payments in Postgres. Rows are never updated.
func NewPaymentLedger(db *sqlx.DB) PaymentRepository {
	return &paymentLedger{db: db}
}

func (r *paymentLedger) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, student_id, student_name, amount, status, payment_date, due_date, transaction_id, receipt_url, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.StudentID,
		payment.StudentName,
		payment.Amount,
		payment.Status,
		payment.PaymentDate,
		payment.DueDate,
		payment.TransactionID,
		payment.ReceiptURL,
		payment.OrderID,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentLedger) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := `
		SELECT id, student_id, student_name, amount, status, payment_date, due_date, transaction_id, receipt_url, order_id, created_at
		FROM payments
		WHERE 1 = 1`

	var args []interface{}
	where := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}

	if filter.StudentID != "" {
		where("student_id = $%d", filter.StudentID)
	}
	if filter.Status != "" {
		where("LOWER(status) = LOWER($%d)", filter.Status)
	}
	if filter.From != nil {
		where("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		where("created_at <= $%d", *filter.To)
	}
	if filter.Query != "" {
		where("(student_name ILIKE $%[1]d OR transaction_id ILIKE $%[1]d)", "%"+filter.Query+"%")
	}
	query += " ORDER BY created_at"

	payments := []domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}

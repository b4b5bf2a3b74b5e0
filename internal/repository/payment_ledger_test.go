package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// setupLedgerDB connects to TEST_DATABASE_URL and applies scripts/init.sql.
func setupLedgerDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../scripts/init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	_, err = db.Exec("DELETE FROM payments")
	require.NoError(t, err)
	return db
}

func TestPaymentLedger_CreateAndList(t *testing.T) {
	db := setupLedgerDB(t)
	ledger := NewPaymentLedger(db)
	ctx := context.Background()

	created := time.Now().UTC().Truncate(time.Second)
	paid := &domain.Payment{
		ID:            uuid.NewString(),
		StudentID:     "1",
		StudentName:   "Rahul Sharma",
		Amount:        decimal.RequireFromString("560.00"),
		Status:        domain.PaymentStatusPaid,
		PaymentDate:   "2025-01-15",
		DueDate:       "2025-01-31",
		TransactionID: "pay_123",
		ReceiptURL:    "/api/payments/7/receipt",
		OrderID:       "order_abc",
		CreatedAt:     created,
	}
	failed := &domain.Payment{
		ID:          uuid.NewString(),
		StudentID:   "2",
		StudentName: "Priya Singh",
		Amount:      decimal.NewFromInt(56000),
		Status:      domain.PaymentStatusFailed,
		DueDate:     "2025-01-31",
		OrderID:     "order_def",
		CreatedAt:   created.Add(time.Second),
	}

	require.NoError(t, ledger.Create(ctx, paid))
	require.NoError(t, ledger.Create(ctx, failed))

	all, err := ledger.List(ctx, domain.PaymentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, paid.ID, all[0].ID)
	assert.True(t, all[0].Amount.Equal(decimal.NewFromInt(560)))

	onlyPaid, err := ledger.List(ctx, domain.PaymentFilter{Status: "PAID"})
	require.NoError(t, err)
	require.Len(t, onlyPaid, 1)
	assert.Equal(t, "pay_123", onlyPaid[0].TransactionID)

	byName, err := ledger.List(ctx, domain.PaymentFilter{Query: "priya"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].StudentID)

	from := created.Add(500 * time.Millisecond)
	later, err := ledger.List(ctx, domain.PaymentFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, later, 1)
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses as shown to payers and admins.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// Payment is an append-only record of a fee payment. Dates are YYYY-MM-DD;
// PaymentDate is only set when Status is paid.
type Payment struct {
	ID            string          `json:"id" db:"id"`
	StudentID     string          `json:"studentId" db:"student_id"`
	StudentName   string          `json:"studentName" db:"student_name"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        string          `json:"status" db:"status"`
	PaymentDate   string          `json:"paymentDate,omitempty" db:"payment_date"`
	DueDate       string          `json:"dueDate" db:"due_date"`
	TransactionID string          `json:"transactionId,omitempty" db:"transaction_id"`
	ReceiptURL    string          `json:"receiptUrl,omitempty" db:"receipt_url"`
	OrderID       string          `json:"orderId,omitempty" db:"order_id"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// PaymentFilter narrows a payment listing. Zero fields match everything.
type PaymentFilter struct {
	StudentID string
	Status    string
	From      *time.Time
	To        *time.Time
	Query     string
}

// Matches reports whether p passes every set field of f. Query is a
// case-insensitive substring match on student name and transaction id.
func (f PaymentFilter) Matches(p Payment) bool {
	if f.StudentID != "" && p.StudentID != f.StudentID {
		return false
	}
	if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
		return false
	}
	if f.From != nil && p.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && p.CreatedAt.After(*f.To) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.StudentName), q) &&
			!strings.Contains(strings.ToLower(p.TransactionID), q) {
			return false
		}
	}
	return true
}

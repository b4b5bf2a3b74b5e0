package gateway

import (
	"fmt"
	"strings"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

// NormalizeStatus maps backend payment statuses onto paid, failed or pending.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "captured", "success", "paid":
		return domain.PaymentStatusPaid
	case "failed":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}

// FallbackStudentName is shown when a payer's name cannot be resolved.
func FallbackStudentName(studentID string) string {
	return fmt.Sprintf("Student #%s", studentID)
}

// ReceiptPath is the backend route serving a paid invoice's receipt.
func ReceiptPath(invoiceID string) string {
	return fmt.Sprintf("%s/payments/%s/receipt", apiPrefix, invoiceID)
}

func normalizePayment(row backendPayment) domain.Payment {
	status := NormalizeStatus(row.Status)
	studentID := row.StudentID.String()

	p := domain.Payment{
		ID:            row.ID.String(),
		StudentID:     studentID,
		StudentName:   FallbackStudentName(studentID),
		Amount:        utils.FromSubunits(row.Amount),
		Status:        status,
		DueDate:       row.CreatedAt,
		TransactionID: row.RazorpayPaymentID,
		OrderID:       row.RazorpayOrderID,
	}

	if created, ok := utils.ParseTimestamp(row.CreatedAt); ok {
		p.CreatedAt = created
	}

	if status == domain.PaymentStatusPaid {
		p.PaymentDate = row.UpdatedAt
		if p.PaymentDate == "" {
			p.PaymentDate = row.CreatedAt
		}
		if row.InvoiceID != "" {
			p.ReceiptURL = ReceiptPath(row.InvoiceID.String())
		}
	}
	return p
}

func normalizeStudent(row backendStudent) domain.Student {
	roll := row.Regno
	if roll == "" {
		roll = row.RollNumber
	}
	return domain.Student{
		ID:          row.ID.String(),
		Name:        row.Name,
		Email:       row.Email,
		RollNumber:  roll,
		Course:      row.Course,
		Year:        row.Year,
		Branch:      row.Branch,
		Phone:       row.Phone,
		Address:     row.Address,
		Outstanding: row.Outstanding,
	}
}

func normalizeFee(row backendFee) domain.FeeComponent {
	return domain.FeeComponent{
		ID:        row.ID.String(),
		Component: row.Component,
		Amount:    utils.FromSubunits(row.Amount),
		Mandatory: row.Mandatory,
	}
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// SeedStudents is the demo dataset served while the backend is unreachable.
func SeedStudents() []domain.Student {
	return []domain.Student{
		{
			ID:         "1",
			Name:       "Rahul Sharma",
			Email:      "rahul@example.com",
			RollNumber: "CS2021001",
			Course:     "B.Tech",
			Year:       "3rd Year",
			Branch:     "Computer Science",
			Phone:      "+91 9876543210",
			Address:    "Mumbai, Maharashtra",
		},
		{
			ID:         "2",
			Name:       "Priya Singh",
			Email:      "priya@example.com",
			RollNumber: "EC2021045",
			Course:     "B.Tech",
			Year:       "3rd Year",
			Branch:     "Electronics",
			Phone:      "+91 9876543211",
			Address:    "Delhi, India",
		},
		{
			ID:         "3",
			Name:       "Amit Patel",
			Email:      "amit@example.com",
			RollNumber: "ME2022012",
			Course:     "B.Tech",
			Year:       "2nd Year",
			Branch:     "Mechanical",
			Phone:      "+91 9876543212",
			Address:    "Ahmedabad, Gujarat",
		},
	}
}

func SeedFees() []domain.FeeComponent {
	return []domain.FeeComponent{
		{ID: "1", Component: "Tuition Fee", Amount: decimal.NewFromInt(45000), Mandatory: true},
		{ID: "2", Component: "Hostel Fee", Amount: decimal.NewFromInt(25000)},
		{ID: "3", Component: "Lab Fee", Amount: decimal.NewFromInt(8000), Mandatory: true},
		{ID: "4", Component: "Library Fee", Amount: decimal.NewFromInt(3000), Mandatory: true},
		{ID: "5", Component: "Sports Fee", Amount: decimal.NewFromInt(2000)},
		{ID: "6", Component: "Late Fee", Amount: decimal.NewFromInt(500)},
	}
}

func SeedPayments() []domain.Payment {
	opened := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Payment{
		{
			ID:            "1",
			StudentID:     "1",
			StudentName:   "Rahul Sharma",
			Amount:        decimal.NewFromInt(56000),
			Status:        domain.PaymentStatusPaid,
			PaymentDate:   "2025-01-15",
			DueDate:       "2025-01-31",
			TransactionID: "TXN001234567",
			ReceiptURL:    "/receipts/receipt_001.pdf",
			CreatedAt:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			StudentID:   "2",
			StudentName: "Priya Singh",
			Amount:      decimal.NewFromInt(56000),
			Status:      domain.PaymentStatusPending,
			DueDate:     "2025-01-31",
			CreatedAt:   opened,
		},
		{
			ID:          "3",
			StudentID:   "3",
			StudentName: "Amit Patel",
			Amount:      decimal.NewFromInt(56000),
			Status:      domain.PaymentStatusPending,
			DueDate:     "2025-01-31",
			CreatedAt:   opened,
		},
	}
}

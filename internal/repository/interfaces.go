package repository

import (
	"context"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// StudentRepository defines the interface for local student records
type StudentRepository interface {
	// List returns every student in insertion order
	List(ctx context.Context) ([]domain.Student, error)

	// Get retrieves a student by id
	Get(ctx context.Context, id string) (*domain.Student, error)

	// Save inserts the student or replaces the record with the same id
	Save(ctx context.Context, student *domain.Student) error

	// Delete removes a student; unknown ids are ignored
	Delete(ctx context.Context, id string) error
}

// FeeRepository defines the interface for the fee catalogue
type FeeRepository interface {
	List(ctx context.Context) ([]domain.FeeComponent, error)
	Get(ctx context.Context, id string) (*domain.FeeComponent, error)
	Save(ctx context.Context, fee *domain.FeeComponent) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines the interface for the append-only payment log
type PaymentRepository interface {
	// Create appends a payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// List returns payments matching the filter
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

// OrderRegistry holds in-flight payment attempts keyed by order id
type OrderRegistry interface {
	Save(ctx context.Context, attempt *domain.PaymentAttempt) error

	// Get returns ErrOrderNotFound for unknown or expired orders
	Get(ctx context.Context, orderID string) (*domain.PaymentAttempt, error)
}

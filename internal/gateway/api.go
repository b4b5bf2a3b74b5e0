package gateway

import (
	"context"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// API is the fee backend as seen by the services. Each call either returns
// data or a *GatewayError; it never substitutes data of its own.
type API interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error)
	UpdateStudent(ctx context.Context, id string, s domain.Student) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	ListFees(ctx context.Context) ([]domain.FeeComponent, error)
	CreateFee(ctx context.Context, in domain.FeeInput) (*domain.FeeComponent, error)
	UpdateFee(ctx context.Context, id string, patch domain.FeePatch) (*domain.FeeComponent, error)
	DeleteFee(ctx context.Context, id string) error

	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.PaymentOrder, error)
	VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error)

	GetReport(ctx context.Context, from, to string) (*ReportData, error)
	ExportReport(ctx context.Context, req domain.ExportRequest) (*domain.ExportDocument, error)

	Ping(ctx context.Context) error
}

var _ API = (*Client)(nil)

package handler

import (
	"context"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.OrderResult, error)
	VerifyPayment(ctx context.Context, orderID string, cb domain.GatewayCallback) (*domain.Payment, error)
	Attempt(ctx context.Context, orderID string) (*domain.PaymentAttempt, error)
}

type DirectoryService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error)
	UpdateStudent(ctx context.Context, id string, patch domain.StudentPatch) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	ListFees(ctx context.Context) ([]domain.FeeComponent, error)
	CreateFee(ctx context.Context, in domain.FeeInput) (*domain.FeeComponent, error)
	UpdateFee(ctx context.Context, id string, patch domain.FeePatch) (*domain.FeeComponent, error)
	DeleteFee(ctx context.Context, id string) error
	BuildSelection(ctx context.Context, feeIDs []string) (*domain.FeeSelection, error)

	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

type ReportService interface {
	Dashboard(ctx context.Context) (*domain.ReportSnapshot, error)
	Defaulters(ctx context.Context) ([]domain.Defaulter, error)
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportDocument, error)
}

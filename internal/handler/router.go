package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/channabasavaballolli/Edu-Pay/internal/auth"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Student *StudentHandler
	Payment *PaymentHandler
	Admin   *AdminHandler
	Report  *ReportHandler
}

// NewRouter wires the portal routes. Everything under /api/v1 except login
// requires a bearer token.
func NewRouter(h Handlers, tokens *auth.TokenIssuer) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	secured := api.NewRoute().Subrouter()
	secured.Use(auth.Middleware(tokens))

	// Student routes
	secured.HandleFunc("/me", auth.RequireStudent(h.Student.Me)).Methods(http.MethodGet)
	secured.HandleFunc("/me/payments", auth.RequireStudent(h.Student.MyPayments)).Methods(http.MethodGet)
	secured.HandleFunc("/fees", auth.RequireStudent(h.Student.Fees)).Methods(http.MethodGet)
	secured.HandleFunc("/payments/orders", auth.RequireStudent(h.Payment.CreateOrder)).Methods(http.MethodPost)
	secured.HandleFunc("/payments/orders/{orderId}", auth.RequireStudent(h.Payment.GetOrder)).Methods(http.MethodGet)
	secured.HandleFunc("/payments/orders/{orderId}/verify", auth.RequireStudent(h.Payment.VerifyPayment)).Methods(http.MethodPost)

	// Admin routes
	admin := secured.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/students", auth.RequireAdmin(h.Admin.ListStudents)).Methods(http.MethodGet)
	admin.HandleFunc("/students", auth.RequireAdmin(h.Admin.CreateStudent)).Methods(http.MethodPost)
	admin.HandleFunc("/students/{id}", auth.RequireAdmin(h.Admin.GetStudent)).Methods(http.MethodGet)
	admin.HandleFunc("/students/{id}", auth.RequireAdmin(h.Admin.UpdateStudent)).Methods(http.MethodPut)
	admin.HandleFunc("/students/{id}", auth.RequireAdmin(h.Admin.DeleteStudent)).Methods(http.MethodDelete)
	admin.HandleFunc("/students/{id}/payments", auth.RequireAdmin(h.Admin.StudentPayments)).Methods(http.MethodGet)
	admin.HandleFunc("/fees", auth.RequireAdmin(h.Admin.ListFees)).Methods(http.MethodGet)
	admin.HandleFunc("/fees", auth.RequireAdmin(h.Admin.CreateFee)).Methods(http.MethodPost)
	admin.HandleFunc("/fees/{id}", auth.RequireAdmin(h.Admin.UpdateFee)).Methods(http.MethodPut)
	admin.HandleFunc("/fees/{id}", auth.RequireAdmin(h.Admin.DeleteFee)).Methods(http.MethodDelete)
	admin.HandleFunc("/payments", auth.RequireAdmin(h.Admin.ListPayments)).Methods(http.MethodGet)
	admin.HandleFunc("/reports/dashboard", auth.RequireAdmin(h.Report.Dashboard)).Methods(http.MethodGet)
	admin.HandleFunc("/reports/defaulters", auth.RequireAdmin(h.Report.Defaulters)).Methods(http.MethodGet)
	admin.HandleFunc("/reports/export", auth.RequireAdmin(h.Report.Export)).Methods(http.MethodGet)

	return router
}

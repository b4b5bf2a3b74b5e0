package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/auth"
	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/mocks"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

type fixture struct {
	router       http.Handler
	auth         *mocks.MockAuthService
	payments     *mocks.MockPaymentService
	directory    *mocks.MockDirectoryService
	reports      *mocks.MockReportService
	backend      *mocks.MockBackend
	studentToken string
	adminToken   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := auth.NewTokenIssuer(&config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"}})

	f := &fixture{
		auth:      &mocks.MockAuthService{},
		payments:  &mocks.MockPaymentService{},
		directory: &mocks.MockDirectoryService{},
		reports:   &mocks.MockReportService{},
		backend:   &mocks.MockBackend{},
	}
	f.router = NewRouter(Handlers{
		Health:  NewHealthHandler(f.backend, nil, nil, time.Second),
		Auth:    NewAuthHandler(f.auth),
		Student: NewStudentHandler(f.directory),
		Payment: NewPaymentHandler(f.payments, f.directory),
		Admin:   NewAdminHandler(f.directory),
		Report:  NewReportHandler(f.reports),
	}, tokens)

	var err error
	f.studentToken, err = tokens.Issue(domain.StudentSession{StudentID: "1", Name: "Rahul Sharma", Email: "rahul@example.com"})
	require.NoError(t, err)
	f.adminToken, err = tokens.Issue(domain.AdminSession{AdminID: "admin1", Name: "Admin User"})
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			body: map[string]string{"email": "rahul@example.com", "password": "student123"},
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "rahul@example.com", "student123").
					Return(&domain.LoginResult{Token: "t", Role: domain.RoleStudent, Name: "Rahul Sharma", UserID: "1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "bad credentials",
			body: map[string]string{"email": "rahul@example.com", "password": "nope"},
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "rahul@example.com", "nope").Return(nil, customError.WrapInvalidCredentials())
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   customError.ErrCodeInvalidCredentials,
		},
		{
			name: "backend down",
			body: map[string]string{"email": "rahul@example.com", "password": "pw"},
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, customError.WrapBackendUnavailable(errors.New("dial tcp")))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   customError.ErrCodeTransportFailure,
		},
		{
			name:           "missing password",
			body:           map[string]string{"email": "rahul@example.com"},
			setupMock:      func(m *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMock(f.auth)

			rec := f.do(http.MethodPost, "/api/v1/auth/login", "", tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, decode(t, rec).Code)
			}
			f.auth.AssertExpectations(t)
		})
	}
}

func seedSelection(t *testing.T, ids ...string) *domain.FeeSelection {
	t.Helper()
	selection := domain.NewFeeSelection([]domain.FeeComponent{
		{ID: "1", Component: "Tuition Fee", Amount: decimal.NewFromInt(45000), Mandatory: true},
		{ID: "2", Component: "Hostel Fee", Amount: decimal.NewFromInt(25000)},
	})
	for _, id := range ids {
		require.NoError(t, selection.Select(id))
	}
	return selection
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	t.Run("opens order for server-computed total", func(t *testing.T) {
		f := newFixture(t)
		f.directory.On("BuildSelection", mock.Anything, []string{"2"}).Return(seedSelection(t, "2"), nil)
		f.directory.On("GetStudent", mock.Anything, "1").Return(&domain.Student{ID: "1", Name: "Rahul Sharma", Email: "rahul@example.com"}, nil)
		f.payments.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req domain.CreateOrderRequest) bool {
			return req.StudentID == "1" && req.Amount.Equal(decimal.NewFromInt(70000)) && len(req.Items) == 2
		})).Return(&domain.OrderResult{
			Order:    &domain.PaymentOrder{OrderID: "order_1", AmountSubunits: 7000000, Currency: "INR"},
			Checkout: &domain.CheckoutOptions{OrderID: "order_1", Amount: 7000000},
		}, nil)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders", f.studentToken, map[string]interface{}{"feeIds": []string{"2"}})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var result domain.OrderResult
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
		assert.Equal(t, "order_1", result.Checkout.OrderID)
		f.payments.AssertExpectations(t)
	})

	t.Run("nothing to pay is a notice", func(t *testing.T) {
		f := newFixture(t)
		f.directory.On("BuildSelection", mock.Anything, []string(nil)).Return(domain.NewFeeSelection(nil), nil)
		f.directory.On("GetStudent", mock.Anything, "1").Return(nil, customError.WrapStudentNotFound("1"))
		f.payments.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&domain.OrderResult{NothingToPay: true, Notice: "Select at least one fee to pay"}, nil)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders", f.studentToken, map[string]interface{}{})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Select at least one fee to pay", decode(t, rec).Message)
	})

	t.Run("unknown fee", func(t *testing.T) {
		f := newFixture(t)
		f.directory.On("BuildSelection", mock.Anything, []string{"9"}).Return(nil, customError.WrapFeeNotFound("9"))

		rec := f.do(http.MethodPost, "/api/v1/payments/orders", f.studentToken, map[string]interface{}{"feeIds": []string{"9"}})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		f.payments.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("admins cannot pay", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders", f.adminToken, map[string]interface{}{})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders", "", map[string]interface{}{})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	callback := domain.GatewayCallback{PaymentID: "pay_1", OrderID: "order_1", Signature: "sig"}
	owned := &domain.PaymentAttempt{OrderID: "order_1", StudentID: "1", State: domain.AttemptGatewayOpen}

	t.Run("paid", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("Attempt", mock.Anything, "order_1").Return(owned, nil)
		f.payments.On("VerifyPayment", mock.Anything, "order_1", callback).
			Return(&domain.Payment{ID: "p1", Status: domain.PaymentStatusPaid, TransactionID: "pay_1"}, nil)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders/order_1/verify", f.studentToken, callback)

		assert.Equal(t, http.StatusOK, rec.Code)
		var payment domain.Payment
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &payment))
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	})

	t.Run("mismatch returns failed payment", func(t *testing.T) {
		f := newFixture(t)
		mismatched := domain.GatewayCallback{PaymentID: "pay_1", OrderID: "order_2"}
		f.payments.On("Attempt", mock.Anything, "order_1").Return(owned, nil)
		f.payments.On("VerifyPayment", mock.Anything, "order_1", mismatched).
			Return(&domain.Payment{ID: "p1", Status: domain.PaymentStatusFailed}, customError.WrapSignatureOrOrderMismatch("order_1", "order_2"))

		rec := f.do(http.MethodPost, "/api/v1/payments/orders/order_1/verify", f.studentToken, mismatched)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, customError.ErrCodeSignatureOrOrderMismatch, env.Code)
		var payment domain.Payment
		require.NoError(t, json.Unmarshal(env.Data, &payment))
		assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	})

	t.Run("another student's order", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("Attempt", mock.Anything, "order_1").
			Return(&domain.PaymentAttempt{OrderID: "order_1", StudentID: "2"}, nil)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders/order_1/verify", f.studentToken, callback)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		f.payments.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("incomplete callback", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("Attempt", mock.Anything, "order_1").Return(owned, nil)

		rec := f.do(http.MethodPost, "/api/v1/payments/orders/order_1/verify", f.studentToken, map[string]string{"razorpay_order_id": "order_1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("repeat verification", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("Attempt", mock.Anything, "order_1").Return(owned, nil)
		f.payments.On("VerifyPayment", mock.Anything, "order_1", callback).
			Return(nil, customError.WrapInvalidTransition("paid", "verifying"))

		rec := f.do(http.MethodPost, "/api/v1/payments/orders/order_1/verify", f.studentToken, callback)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPaymentHandler_GetOrder(t *testing.T) {
	f := newFixture(t)
	f.payments.On("Attempt", mock.Anything, "order_x").Return(nil, customError.WrapOrderNotFound("order_x"))

	rec := f.do(http.MethodGet, "/api/v1/payments/orders/order_x", f.studentToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, customError.ErrCodeOrderNotFound, decode(t, rec).Code)
}

func TestStudentHandler_MyPaymentsIsSelfScoped(t *testing.T) {
	f := newFixture(t)
	f.directory.On("ListPayments", mock.Anything, domain.PaymentFilter{StudentID: "1"}).
		Return([]domain.Payment{{ID: "1", StudentID: "1"}}, nil)

	rec := f.do(http.MethodGet, "/api/v1/me/payments?studentId=2", f.studentToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.directory.AssertExpectations(t)
}

func TestAdminHandler_ListPayments(t *testing.T) {
	f := newFixture(t)
	f.directory.On("ListPayments", mock.Anything, mock.MatchedBy(func(filter domain.PaymentFilter) bool {
		return filter.Status == "paid" &&
			filter.Query == "rahul" &&
			filter.From != nil && filter.From.Format("2006-01-02") == "2025-01-01" &&
			filter.To != nil && filter.To.Format("2006-01-02") == "2025-01-31"
	})).Return([]domain.Payment{}, nil)

	rec := f.do(http.MethodGet, "/api/v1/admin/payments?status=paid&q=rahul&from=2025-01-01&to=2025-01-31", f.adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.directory.AssertExpectations(t)

	rec = f.do(http.MethodGet, "/api/v1/admin/payments?from=01-01-2025", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/admin/payments", f.studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminHandler_Students(t *testing.T) {
	t.Run("create validates input", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/admin/students", f.adminToken, map[string]string{"name": "No Email"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.directory.AssertNotCalled(t, "CreateStudent", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture(t)
		in := domain.StudentInput{Name: "Kiran Desai", Email: "kiran@example.com", RollNumber: "CV2023007", Course: "B.E."}
		f.directory.On("CreateStudent", mock.Anything, in).Return(&domain.Student{ID: "4", Name: "Kiran Desai"}, nil)

		rec := f.do(http.MethodPost, "/api/v1/admin/students", f.adminToken, in)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("update unknown", func(t *testing.T) {
		f := newFixture(t)
		f.directory.On("UpdateStudent", mock.Anything, "99", mock.Anything).Return(nil, customError.WrapStudentNotFound("99"))

		rec := f.do(http.MethodPut, "/api/v1/admin/students/99", f.adminToken, map[string]string{"phone": "1"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.directory.On("DeleteStudent", mock.Anything, "3").Return(nil)

		rec := f.do(http.MethodDelete, "/api/v1/admin/students/3", f.adminToken, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminHandler_Fees(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/admin/fees", f.adminToken, map[string]interface{}{"component": "Bus Fee", "amount": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.directory.On("CreateFee", mock.Anything, mock.MatchedBy(func(in domain.FeeInput) bool {
		return in.Component == "Bus Fee" && in.Amount.Equal(decimal.NewFromInt(4000))
	})).Return(&domain.FeeComponent{ID: "7", Component: "Bus Fee", Amount: decimal.NewFromInt(4000)}, nil)

	rec = f.do(http.MethodPost, "/api/v1/admin/fees", f.adminToken, map[string]interface{}{"component": "Bus Fee", "amount": 4000})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReportHandler_Export(t *testing.T) {
	t.Run("download", func(t *testing.T) {
		f := newFixture(t)
		req := domain.ExportRequest{Type: domain.ReportDaily, Format: domain.FormatCSV}
		f.reports.On("Export", mock.Anything, req).Return(&domain.ExportDocument{
			Filename:    "BEC_daily_report.csv",
			ContentType: "text/csv; charset=utf-8",
			Body:        []byte("Section,Key,Value\n"),
			Source:      "local",
		}, nil)

		rec := f.do(http.MethodGet, "/api/v1/admin/reports/export?type=daily&format=csv", f.adminToken, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="BEC_daily_report.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Section,Key,Value\n", rec.Body.String())
	})

	t.Run("invalid type", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/admin/reports/export?type=monthly", f.adminToken, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.reports.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})
}

func TestReportHandler_Dashboard(t *testing.T) {
	f := newFixture(t)
	f.reports.On("Dashboard", mock.Anything).Return(&domain.ReportSnapshot{
		TotalCollection: decimal.NewFromInt(56000),
		TotalStudents:   3,
		StudentsPaid:    1,
		StudentsNotPaid: 2,
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/admin/reports/dashboard", f.adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var snap domain.ReportSnapshot
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &snap))
	assert.Equal(t, 2, snap.StudentsNotPaid)
}

func TestHealthHandler(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/health", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ready with backend down", func(t *testing.T) {
		f := newFixture(t)
		f.backend.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		rec := f.do(http.MethodGet, "/health/ready", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &status))
		assert.Equal(t, "disabled", status.Checks["database"])
		assert.Contains(t, status.Checks["backend"], "failed")
	})

	t.Run("ready", func(t *testing.T) {
		f := newFixture(t)
		f.backend.On("Ping", mock.Anything).Return(nil)

		rec := f.do(http.MethodGet, "/health/ready", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

package app

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

type flowEnvelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, h http.Handler, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil {
		var env flowEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, out))
		}
	}
	return rec.Code
}

// With the backend unreachable, a student can still pay in offline mode and
// the admin dashboard reflects it.
func TestOfflinePaymentFlow(t *testing.T) {
	cfg := inMemoryConfig()
	cfg.Gateway.KeySecret = "secret"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()
	h := a.Handler()

	var student domain.LoginResult
	status := call(t, h, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "rahul@example.com", "password": "student123"}, &student)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, domain.RoleStudent, student.Role)

	var order domain.OrderResult
	status = call(t, h, http.MethodPost, "/api/v1/payments/orders", student.Token,
		map[string]interface{}{"feeIds": []string{"2"}}, &order)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, order.Order)
	assert.True(t, order.Order.Degraded)
	assert.Equal(t, int64(8100000), order.Checkout.Amount)
	assert.Equal(t, "Rahul Sharma", order.Checkout.Prefill.Name)

	orderID := order.Order.OrderID
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(orderID + "|pay_demo1"))

	var payment domain.Payment
	status = call(t, h, http.MethodPost, "/api/v1/payments/orders/"+orderID+"/verify", student.Token,
		domain.GatewayCallback{PaymentID: "pay_demo1", OrderID: orderID, Signature: hex.EncodeToString(mac.Sum(nil))}, &payment)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(81000)))

	var attempt domain.PaymentAttempt
	status = call(t, h, http.MethodGet, "/api/v1/payments/orders/"+orderID, student.Token, nil, &attempt)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.AttemptPaid, attempt.State)

	var mine []domain.Payment
	status = call(t, h, http.MethodGet, "/api/v1/me/payments?status=paid", student.Token, nil, &mine)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, mine, 2)

	var admin domain.LoginResult
	status = call(t, h, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "admin@edupay.com", "password": "admin123"}, &admin)
	require.Equal(t, http.StatusOK, status)

	var snap domain.ReportSnapshot
	status = call(t, h, http.MethodGet, "/api/v1/admin/reports/dashboard", admin.Token, nil, &snap)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, snap.TotalCollection.Equal(decimal.NewFromInt(137000)))
	assert.Equal(t, 1, snap.StudentsPaid)
}

func TestOfflineFlow_MismatchedCallback(t *testing.T) {
	a, err := New(context.Background(), inMemoryConfig())
	require.NoError(t, err)
	defer a.Close()
	h := a.Handler()

	var student domain.LoginResult
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "rahul@example.com", "password": "student123"}, &student))

	var order domain.OrderResult
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/api/v1/payments/orders", student.Token,
		map[string]interface{}{}, &order))

	var failed domain.Payment
	status := call(t, h, http.MethodPost, "/api/v1/payments/orders/"+order.Order.OrderID+"/verify", student.Token,
		domain.GatewayCallback{PaymentID: "pay_x", OrderID: "order_other"}, &failed)

	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, domain.PaymentStatusFailed, failed.Status)
}

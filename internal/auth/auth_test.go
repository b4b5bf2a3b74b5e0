package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

func newIssuer() *TokenIssuer {
	return NewTokenIssuer(&config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"}})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newIssuer()

	token, err := issuer.Issue(domain.StudentSession{StudentID: "1", Name: "Rahul Sharma", Email: "rahul@example.com", Token: "backend"})
	require.NoError(t, err)

	session, err := issuer.Parse(token)
	require.NoError(t, err)

	student, ok := session.(domain.StudentSession)
	require.True(t, ok)
	assert.Equal(t, "1", student.StudentID)
	assert.Equal(t, "Rahul Sharma", student.Name)
	assert.Equal(t, "rahul@example.com", student.Email)
	assert.Equal(t, "backend", student.Token)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := newIssuer()
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.Issue(domain.AdminSession{AdminID: "admin1", Name: "Admin User"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	other := NewTokenIssuer(&config.Config{Auth: config.AuthConfig{JWTSecret: "other", TokenTTL: "1h"}})
	token, err := other.Issue(domain.AdminSession{AdminID: "admin1"})
	require.NoError(t, err)

	_, err = newIssuer().Parse(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	issuer := newIssuer()
	studentToken, err := issuer.Issue(domain.StudentSession{StudentID: "1", Name: "Rahul Sharma"})
	require.NoError(t, err)
	adminToken, err := issuer.Issue(domain.AdminSession{AdminID: "admin1", Name: "Admin User"})
	require.NoError(t, err)

	studentOnly := Middleware(issuer)(RequireStudent(func(w http.ResponseWriter, r *http.Request, s domain.StudentSession) {
		_, _ = w.Write([]byte(s.StudentID))
	}))
	adminOnly := Middleware(issuer)(RequireAdmin(func(w http.ResponseWriter, r *http.Request, s domain.AdminSession) {
		_, _ = w.Write([]byte(s.AdminID))
	}))

	tests := []struct {
		name       string
		handler    http.Handler
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing token", studentOnly, "", http.StatusUnauthorized, ""},
		{"garbage token", studentOnly, "Bearer nope", http.StatusUnauthorized, ""},
		{"student on student route", studentOnly, "Bearer " + studentToken, http.StatusOK, "1"},
		{"admin on student route", studentOnly, "Bearer " + adminToken, http.StatusForbidden, ""},
		{"admin on admin route", adminOnly, "Bearer " + adminToken, http.StatusOK, "admin1"},
		{"student on admin route", adminOnly, "Bearer " + studentToken, http.StatusForbidden, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			tc.handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

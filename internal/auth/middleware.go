package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by Middleware, if any.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// Middleware authenticates the bearer token once per request. The session and
// its backend token are placed on the request context.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			session, err := issuer.Parse(tokenString)
			if err != nil {
				logger.Info(r.Context(), "rejected session token", zap.Error(err))
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := WithSession(r.Context(), session)
			ctx = gateway.WithToken(ctx, session.BackendToken())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStudent passes the student session to next, or answers 403.
func RequireStudent(next func(http.ResponseWriter, *http.Request, domain.StudentSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFrom(r.Context())
		student, ok := session.(domain.StudentSession)
		if !ok {
			response.Forbidden(w, "Student access only")
			return
		}
		next(w, r, student)
	}
}

// RequireAdmin passes the admin session to next, or answers 403.
func RequireAdmin(next func(http.ResponseWriter, *http.Request, domain.AdminSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFrom(r.Context())
		admin, ok := session.(domain.AdminSession)
		if !ok {
			response.Forbidden(w, "Admin access only")
			return
		}
		next(w, r, admin)
	}
}

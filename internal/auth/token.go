package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

const issuer = "edupay-portal"

// Claims is the portal session as carried in the bearer token. BackendToken
// is the fee backend's own token, replayed on backend calls.
type Claims struct {
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BackendToken string `json:"bt,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies portal session tokens with HS256.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    cfg.GetTokenTTL(),
		now:    time.Now,
	}
}

func (i *TokenIssuer) Issue(session domain.Session) (string, error) {
	now := i.now()

	var email string
	switch s := session.(type) {
	case domain.StudentSession:
		email = s.Email
	case domain.AdminSession:
		email = s.Email
	}

	claims := Claims{
		Role:         session.Role(),
		Name:         session.DisplayName(),
		Email:        email,
		BackendToken: session.BackendToken(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Subject(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates a token and rebuilds the session it describes.
func (i *TokenIssuer) Parse(tokenString string) (domain.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	session, err := domain.NewSession(domain.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, claims.BackendToken)
	if err != nil {
		return nil, fmt.Errorf("token role: %w", err)
	}
	return session, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/auth"
	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/internal/repository"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
)

// Authenticator checks credentials that the backend could not.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

var _ Authenticator = (*repository.AccountStore)(nil)

type AuthService struct {
	backend  gateway.API
	accounts Authenticator
	tokens   *auth.TokenIssuer
	config   *config.Config
}

func NewAuthService(backend gateway.API, accounts Authenticator, tokens *auth.TokenIssuer, config *config.Config) *AuthService {
	return &AuthService{
		backend:  backend,
		accounts: accounts,
		tokens:   tokens,
		config:   config,
	}
}

// Login authenticates against the backend. Demo accounts are only consulted
// in offline mode.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, backendToken, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if !s.config.Mode.Offline {
			if gateway.IsRejection(err) {
				return nil, customError.WrapInvalidCredentials()
			}
			return nil, customError.WrapBackendUnavailable(err)
		}

		logger.Warn(ctx, "backend login failed, checking demo accounts",
			zap.String("kind", string(gateway.KindOf(err))),
			zap.Error(err),
		)
		user, err = s.accounts.Authenticate(ctx, email, password)
		if err != nil {
			return nil, err
		}
		backendToken = ""
	}

	session, err := domain.NewSession(*user, backendToken)
	if err != nil {
		return nil, customError.WrapForbidden(err.Error())
	}

	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", zap.String("userId", user.ID), zap.String("role", user.Role))
	return &domain.LoginResult{
		Token:  token,
		Role:   session.Role(),
		Name:   session.DisplayName(),
		UserID: session.Subject(),
	}, nil
}

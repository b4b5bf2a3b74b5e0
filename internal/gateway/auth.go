package gateway

import (
	"context"
	"net/http"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// Login exchanges credentials for the backend user and its bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "login"

	var out loginResponse
	if err := c.do(ctx, op, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, "", err
	}
	if out.Token == "" || out.User.ID == "" {
		return nil, "", newError(KindShape, op, http.StatusOK, "login response missing user or token", nil)
	}

	return &domain.User{
		ID:    out.User.ID.String(),
		Email: out.User.Email,
		Name:  out.User.Name,
		Role:  out.User.Role,
	}, out.Token, nil
}

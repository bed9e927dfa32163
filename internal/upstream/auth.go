package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

// AuthResponse is what login and register return.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthClient wraps the auth, user and email endpoints.
type AuthClient struct {
	gw *Client
}

func NewAuthClient(gw *Client) *AuthClient {
	return &AuthClient{gw: gw}
}

func (c *AuthClient) Login(ctx context.Context, body any) (AuthResponse, error) {
	return writeJSON[AuthResponse](ctx, c.gw, http.MethodPost, "/auth/login", body)
}

func (c *AuthClient) Register(ctx context.Context, body any) (AuthResponse, error) {
	return writeJSON[AuthResponse](ctx, c.gw, http.MethodPost, "/auth/register", body)
}

func (c *AuthClient) Me(ctx context.Context) (domain.User, error) {
	return getJSON[domain.User](ctx, c.gw, "/users/me", nil)
}

func (c *AuthClient) UpdateUser(ctx context.Context, id int64, body any) (domain.User, error) {
	return writeJSON[domain.User](ctx, c.gw, http.MethodPut, fmt.Sprintf("/users/%d", id), body)
}

// ListUsers supports the user picker: search plus an includeOnlyRole filter.
func (c *AuthClient) ListUsers(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.User], error) {
	return getJSON[domain.Page[domain.User]](ctx, c.gw, "/users", pageQuery(req))
}

func (c *AuthClient) VerifyEmail(ctx context.Context, token string) error {
	q := url.Values{"token": {token}}
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, "/email/verify?"+q.Encode(), nil)
	return err
}

func (c *AuthClient) ResendEmail(ctx context.Context, body any) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, "/email/resend", body)
	return err
}

func (c *AuthClient) RequestPasswordReset(ctx context.Context, body any) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, "/email/reset-password", body)
	return err
}

func (c *AuthClient) VerifyPasswordReset(ctx context.Context, body any) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, "/email/reset-password/verify", body)
	return err
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	zlog "github.com/rs/zerolog/log"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

type AuthGateway interface {
	Login(ctx context.Context, body any) (upstream.AuthResponse, error)
	Register(ctx context.Context, body any) (upstream.AuthResponse, error)
	Me(ctx context.Context) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, body any) (domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendEmail(ctx context.Context, body any) error
	RequestPasswordReset(ctx context.Context, body any) error
	VerifyPasswordReset(ctx context.Context, body any) error
}

// Session is the process-wide login state as the handlers see it.
type Session interface {
	Login(token string, user domain.User) error
	Logout() error
	IsAuthenticated() bool
	User() (domain.User, bool)
	Role() domain.Role
	UpdateUser(user domain.User) error
	Theme() string
	SetTheme(theme string) error
}

// CacheResetter drops every cached read. Login and logout go through it so a
// session change never serves the previous session's data.
type CacheResetter interface {
	Reset(ctx context.Context) error
}

type AuthHandler struct {
	gateway AuthGateway
	session Session
	cache   CacheResetter
}

func NewAuthHandler(gateway AuthGateway, session Session, cache CacheResetter) *AuthHandler {
	return &AuthHandler{gateway: gateway, session: session, cache: cache}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Firstname  string `json:"firstname" validate:"required,max=100"`
	Lastname   string `json:"lastname" validate:"required,max=100"`
	Patronymic string `json:"patronymic" validate:"max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,password_strength"`
}

type sessionResponse struct {
	User  domain.User `json:"user"`
	Theme string      `json:"theme"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.gateway.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			sendError(w, r, "invalid_credentials", "invalid email or password", http.StatusUnauthorized)
			return
		}
		handleUpstreamError(w, r, err, "login failed")
		return
	}

	h.establish(w, r, resp)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.gateway.Register(r.Context(), req)
	if err != nil {
		handleUpstreamError(w, r, err, "registration failed")
		return
	}

	h.establish(w, r, resp)
}

// establish commits a fresh token: persist the session, then flush the cache
// so nothing read under the previous session survives.
func (h *AuthHandler) establish(w http.ResponseWriter, r *http.Request, resp upstream.AuthResponse) {
	if err := h.session.Login(resp.Token, resp.User); err != nil {
		sendError(w, r, "internal_error", "failed to persist session", http.StatusInternalServerError)
		return
	}
	if err := h.cache.Reset(r.Context()); err != nil {
		zlog.Warn().Err(err).Msg("cache reset after login failed")
	}

	render.JSON(w, r, sessionResponse{User: resp.User, Theme: h.session.Theme()})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(); err != nil {
		sendError(w, r, "internal_error", "failed to clear session", http.StatusInternalServerError)
		return
	}
	if err := h.cache.Reset(r.Context()); err != nil {
		zlog.Warn().Err(err).Msg("cache reset after logout failed")
	}

	render.NoContent(w, r)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !h.session.IsAuthenticated() {
		sendError(w, r, "unauthorized", "not logged in", http.StatusUnauthorized)
		return
	}

	user, err := h.gateway.Me(r.Context())
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load profile")
		return
	}
	if err := h.session.UpdateUser(user); err != nil {
		zlog.Warn().Err(err).Msg("session user refresh failed")
	}

	render.JSON(w, r, user)
}

type UpdateProfileRequest struct {
	Firstname  string `json:"firstname" validate:"required,max=100"`
	Lastname   string `json:"lastname" validate:"required,max=100"`
	Patronymic string `json:"patronymic" validate:"max=100"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid user id", http.StatusBadRequest)
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.gateway.UpdateUser(r.Context(), id, req)
	if err != nil {
		handleUpstreamError(w, r, err, "profile update failed")
		return
	}

	if current, ok := h.session.User(); ok && current.ID == user.ID {
		if err := h.session.UpdateUser(user); err != nil {
			zlog.Warn().Err(err).Msg("session user refresh failed")
		}
	}

	render.JSON(w, r, user)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		sendError(w, r, "validation_failed", "token is required", http.StatusBadRequest)
		return
	}

	if err := h.gateway.VerifyEmail(r.Context(), token); err != nil {
		handleUpstreamError(w, r, err, "email verification failed")
		return
	}
	render.NoContent(w, r)
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.gateway.ResendEmail(r.Context(), req); err != nil {
		handleUpstreamError(w, r, err, "failed to resend verification email")
		return
	}
	render.NoContent(w, r)
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.gateway.RequestPasswordReset(r.Context(), req); err != nil {
		handleUpstreamError(w, r, err, "failed to request password reset")
		return
	}
	render.NoContent(w, r)
}

type PasswordResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,password_strength"`
}

func (h *AuthHandler) VerifyPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.gateway.VerifyPasswordReset(r.Context(), req); err != nil {
		handleUpstreamError(w, r, err, "password reset failed")
		return
	}
	render.NoContent(w, r)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
)

type DisciplinesFeature interface {
	List(ctx context.Context) ([]domain.Discipline, error)
}

// SettingsHandler serves the theme preference and the discipline reference
// list the settings and event-creation forms need.
type SettingsHandler struct {
	session     Session
	disciplines DisciplinesFeature
}

func NewSettingsHandler(session Session, disciplines DisciplinesFeature) *SettingsHandler {
	return &SettingsHandler{session: session, disciplines: disciplines}
}

type settingsResponse struct {
	Theme         string       `json:"theme"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := settingsResponse{
		Theme:         h.session.Theme(),
		Authenticated: h.session.IsAuthenticated(),
	}
	if user, ok := h.session.User(); ok {
		resp.User = &user
	}
	render.JSON(w, r, resp)
}

type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.session.SetTheme(req.Theme); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, map[string]string{"theme": req.Theme})
}

func (h *SettingsHandler) Disciplines(w http.ResponseWriter, r *http.Request) {
	disciplines, err := h.disciplines.List(r.Context())
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load disciplines")
		return
	}
	render.JSON(w, r, disciplines)
}

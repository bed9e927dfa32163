package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
	"github.com/fsp-platform/console-bff/middleware"
)

func sendError(w http.ResponseWriter, r *http.Request, code string, message string, status int) {
	resp := domain.APIError{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.RequestID = middleware.GetRequestID(r.Context())

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// handleUpstreamError maps the gateway's error taxonomy onto this service's
// responses. A StatusError carries the upstream's own code and message
// through unchanged.
func handleUpstreamError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	var se *upstream.StatusError
	switch {
	case errors.As(err, &se):
		sendError(w, r, se.Code, se.Message, se.StatusCode)
	case errors.Is(err, upstream.ErrNotFound):
		sendError(w, r, "resource_not_found", "resource not found", http.StatusNotFound)
	case errors.Is(err, upstream.ErrUnauthorized):
		sendError(w, r, "unauthorized", "authentication required or token rejected", http.StatusUnauthorized)
	case errors.Is(err, upstream.ErrTimeout):
		sendError(w, r, "upstream_timeout", "federation API timeout", http.StatusGatewayTimeout)
	case errors.Is(err, upstream.ErrUnavailable):
		sendError(w, r, "upstream_unavailable", "federation API unavailable", http.StatusBadGateway)
	default:
		sendError(w, r, "internal_error", defaultMsg, http.StatusBadGateway)
	}
}

func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// pageRequest reads the pagination params; every other query param becomes a
// filter and therefore part of the cache fingerprint.
func pageRequest(r *http.Request) querycache.PageRequest {
	q := r.URL.Query()

	req := querycache.PageRequest{Filters: make(map[string]string)}
	for key, values := range q {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		switch key {
		case "page":
			if n, err := strconv.Atoi(values[0]); err == nil && n >= 0 {
				req.Page = n
			}
		case "size":
			if n, err := strconv.Atoi(values[0]); err == nil && n > 0 {
				req.Size = n
			}
		case "direction":
			req.Direction = values[0]
		default:
			req.Filters[key] = values[0]
		}
	}
	return req
}

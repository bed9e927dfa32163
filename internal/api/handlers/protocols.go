package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

// maxProtocolSize caps an uploaded protocol file at 20 MiB.
const maxProtocolSize = 20 << 20

type ProtocolsFeature interface {
	Fetch(ctx context.Context, eventBaseID, regionID int64) ([]byte, error)
	Upload(ctx context.Context, eventBaseID, regionID int64, filename string, content []byte) error
	Delete(ctx context.Context, eventBaseID, regionID int64) error
}

type ProtocolsHandler struct {
	protocols ProtocolsFeature
	session   Session
}

func NewProtocolsHandler(protocols ProtocolsFeature, session Session) *ProtocolsHandler {
	return &ProtocolsHandler{protocols: protocols, session: session}
}

func (h *ProtocolsHandler) ids(w http.ResponseWriter, r *http.Request) (eventBaseID, regionID int64, ok bool) {
	eventBaseID, ok = urlID(r, "eventBaseId")
	if !ok {
		sendError(w, r, "validation_failed", "invalid event id", http.StatusBadRequest)
		return 0, 0, false
	}
	regionID, ok = urlID(r, "regionId")
	if !ok {
		sendError(w, r, "validation_failed", "invalid region id", http.StatusBadRequest)
		return 0, 0, false
	}
	return eventBaseID, regionID, true
}

// Fetch streams the decoded protocol file back as a binary body.
func (h *ProtocolsHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	eventBaseID, regionID, ok := h.ids(w, r)
	if !ok {
		return
	}

	content, err := h.protocols.Fetch(r.Context(), eventBaseID, regionID)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load protocol")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="protocol.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

func (h *ProtocolsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageProtocols() {
		sendError(w, r, "forbidden", "insufficient role to manage protocols", http.StatusForbidden)
		return
	}

	eventBaseID, regionID, ok := h.ids(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProtocolSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, r, "validation_failed", "multipart field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		sendError(w, r, "validation_failed", "failed to read uploaded file", http.StatusBadRequest)
		return
	}

	if err := h.protocols.Upload(r.Context(), eventBaseID, regionID, header.Filename, content); err != nil {
		handleUpstreamError(w, r, err, "protocol upload failed")
		return
	}
	render.NoContent(w, r)
}

func (h *ProtocolsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageProtocols() {
		sendError(w, r, "forbidden", "insufficient role to manage protocols", http.StatusForbidden)
		return
	}

	eventBaseID, regionID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.protocols.Delete(r.Context(), eventBaseID, regionID); err != nil {
		handleUpstreamError(w, r, err, "protocol delete failed")
		return
	}
	render.NoContent(w, r)
}

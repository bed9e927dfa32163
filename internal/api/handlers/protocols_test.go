package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fsp-platform/console-bff/internal/domain"
)

type mockProtocolsFeature struct {
	mock.Mock
}

func (m *mockProtocolsFeature) Fetch(ctx context.Context, eventBaseID, regionID int64) ([]byte, error) {
	args := m.Called(ctx, eventBaseID, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockProtocolsFeature) Upload(ctx context.Context, eventBaseID, regionID int64, filename string, content []byte) error {
	return m.Called(ctx, eventBaseID, regionID, filename, content).Error(0)
}

func (m *mockProtocolsFeature) Delete(ctx context.Context, eventBaseID, regionID int64) error {
	return m.Called(ctx, eventBaseID, regionID).Error(0)
}

func protocolsRouter(h *ProtocolsHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/event-protocols/{eventBaseId}/region/{regionId}", func(r chi.Router) {
		r.Get("/", h.Fetch)
		r.Post("/upload", h.Upload)
		r.Delete("/", h.Delete)
	})
	return r
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProtocolsHandler_FetchStreamsBinary(t *testing.T) {
	feature := new(mockProtocolsFeature)
	feature.On("Fetch", mock.Anything, int64(5), int64(2)).Return([]byte("pdf body"), nil)

	h := NewProtocolsHandler(feature, loggedIn(domain.RoleUser))
	req := httptest.NewRequest("GET", "/event-protocols/5/region/2/", nil)
	rec := httptest.NewRecorder()
	protocolsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pdf body", rec.Body.String())
}

func TestProtocolsHandler_UploadRoleGate(t *testing.T) {
	feature := new(mockProtocolsFeature)
	h := NewProtocolsHandler(feature, loggedIn(domain.RoleUser))

	body, contentType := multipartBody(t, "p.pdf", []byte("x"))
	req := httptest.NewRequest("POST", "/event-protocols/5/region/2/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	protocolsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	feature.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProtocolsHandler_Upload(t *testing.T) {
	feature := new(mockProtocolsFeature)
	feature.On("Upload", mock.Anything, int64(5), int64(2), "итоги.pdf", []byte("results")).Return(nil)

	h := NewProtocolsHandler(feature, loggedIn(domain.RoleRegionAdmin))
	body, contentType := multipartBody(t, "итоги.pdf", []byte("results"))
	req := httptest.NewRequest("POST", "/event-protocols/5/region/2/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	protocolsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	feature.AssertExpectations(t)
}

func TestProtocolsHandler_UploadMissingFile(t *testing.T) {
	feature := new(mockProtocolsFeature)
	h := NewProtocolsHandler(feature, loggedIn(domain.RoleFSPAdmin))

	req := httptest.NewRequest("POST", "/event-protocols/5/region/2/upload", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	protocolsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertErrorCode(t, rec, "validation_failed")
}

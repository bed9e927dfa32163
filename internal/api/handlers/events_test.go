package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type mockEventsFeature struct {
	mock.Mock
}

func (m *mockEventsFeature) Requests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.EventRequest]), args.Error(1)
}

func (m *mockEventsFeature) MyRequests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.EventRequest]), args.Error(1)
}

func (m *mockEventsFeature) Published(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Event], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.Event]), args.Error(1)
}

func (m *mockEventsFeature) Request(ctx context.Context, id int64) (domain.EventRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.EventRequest), args.Error(1)
}

func (m *mockEventsFeature) Create(ctx context.Context, body any) (domain.EventRequest, error) {
	args := m.Called(ctx, body)
	return args.Get(0).(domain.EventRequest), args.Error(1)
}

func (m *mockEventsFeature) Approve(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEventsFeature) Reject(ctx context.Context, id int64, comment string) error {
	return m.Called(ctx, id, comment).Error(0)
}

func eventsRouter(h *EventsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/event-requests", h.ListRequests)
	r.Post("/event-requests", h.Create)
	r.Post("/event-requests/{id}/approve", h.Approve)
	r.Post("/event-requests/{id}/reject", h.Reject)
	return r
}

func TestEventsHandler_ListRequests(t *testing.T) {
	feature := new(mockEventsFeature)
	feature.On("Requests", mock.Anything, mock.MatchedBy(func(req querycache.PageRequest) bool {
		return req.Page == 1 && req.Filters["search"] == "кубок"
	})).Return(domain.Page[domain.EventRequest]{
		Content: []domain.EventRequest{{ID: 4, Name: "Кубок округа"}},
		Last:    true,
	}, nil)

	h := NewEventsHandler(feature, loggedIn(domain.RoleUser))
	req := httptest.NewRequest("GET", "/event-requests?page=1&search=кубок", nil)
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var page domain.Page[domain.EventRequest]
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Content, 1)
	feature.AssertExpectations(t)
}

func TestEventsHandler_ApproveRequiresModerator(t *testing.T) {
	feature := new(mockEventsFeature)
	h := NewEventsHandler(feature, loggedIn(domain.RoleRegionAdmin))

	req := httptest.NewRequest("POST", "/event-requests/4/approve", nil)
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assertErrorCode(t, rec, "forbidden")
	feature.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestEventsHandler_ApproveAsFSPAdmin(t *testing.T) {
	feature := new(mockEventsFeature)
	feature.On("Approve", mock.Anything, int64(4)).Return(nil)

	h := NewEventsHandler(feature, loggedIn(domain.RoleFSPAdmin))
	req := httptest.NewRequest("POST", "/event-requests/4/approve", nil)
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	feature.AssertExpectations(t)
}

func TestEventsHandler_RejectRequiresComment(t *testing.T) {
	feature := new(mockEventsFeature)
	h := NewEventsHandler(feature, loggedIn(domain.RoleFSPAdmin))

	req := httptest.NewRequest("POST", "/event-requests/4/reject", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertErrorCode(t, rec, "validation_failed")
}

func TestEventsHandler_CreateRequiresRegionAdmin(t *testing.T) {
	feature := new(mockEventsFeature)
	h := NewEventsHandler(feature, loggedIn(domain.RoleUser))

	body := `{"name":"Турнир","gender":"ANY","location":"Казань","disciplineIds":[1],"startDate":"2026-10-01","endDate":"2026-10-02","maxParticipants":64}`
	req := httptest.NewRequest("POST", "/event-requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEventsHandler_CreateValid(t *testing.T) {
	feature := new(mockEventsFeature)
	feature.On("Create", mock.Anything, mock.Anything).Return(domain.EventRequest{ID: 9, Status: domain.StatusPending}, nil)

	h := NewEventsHandler(feature, loggedIn(domain.RoleRegionAdmin))
	body := `{"name":"Турнир","gender":"ANY","location":"Казань","disciplineIds":[1],"startDate":"2026-10-01","endDate":"2026-10-02","maxParticipants":64}`
	req := httptest.NewRequest("POST", "/event-requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	eventsRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	feature.AssertExpectations(t)
}

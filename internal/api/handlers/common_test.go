package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fsp-platform/console-bff/internal/domain"
)

// fakeSession is a minimal in-memory Session for handler tests.
type fakeSession struct {
	token string
	user  *domain.User
	theme string
}

func (s *fakeSession) Login(token string, user domain.User) error {
	s.token = token
	s.user = &user
	return nil
}

func (s *fakeSession) Logout() error {
	s.token = ""
	s.user = nil
	return nil
}

func (s *fakeSession) IsAuthenticated() bool { return s.token != "" }

func (s *fakeSession) User() (domain.User, bool) {
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *fakeSession) Role() domain.Role {
	if s.user == nil {
		return ""
	}
	return s.user.Role.Name
}

func (s *fakeSession) UpdateUser(user domain.User) error {
	s.user = &user
	return nil
}

func (s *fakeSession) Theme() string {
	if s.theme == "" {
		return "light"
	}
	return s.theme
}

func (s *fakeSession) SetTheme(theme string) error {
	s.theme = theme
	return nil
}

func loggedIn(role domain.Role) *fakeSession {
	return &fakeSession{
		token: "tok",
		user:  &domain.User{ID: 1, Firstname: "Анна", Lastname: "Иванова", Role: domain.RoleRef{ID: 1, Name: role}},
	}
}

type fakeResetter struct {
	resets int
}

func (f *fakeResetter) Reset(context.Context) error {
	f.resets++
	return nil
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	assert.Contains(t, rec.Body.String(), code)
}

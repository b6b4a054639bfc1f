package adapthttp

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"motors/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		sessions: newSessionManager(testCodec(t), false),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// identityProbe records what the downstream handler observed.
type identityProbe struct {
	called   bool
	identity domain.Identity
	anon     bool
}

func (p *identityProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		id, ok := IdentityFrom(r.Context())
		p.identity, p.anon = id, !ok
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_NoCookiePassesAnonymous(t *testing.T) {
	s := gateServer(t)
	probe := &identityProbe{}

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	s.authenticate(probe.handler()).ServeHTTP(rr, req)

	assert.True(t, probe.called, "gate must never block by itself")
	assert.True(t, probe.anon)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthenticate_ValidCookieIdentifies(t *testing.T) {
	s := gateServer(t)
	probe := &identityProbe{}

	id := domain.Identity{ID: 7, FirstName: "Ada", Email: "a@example.com", Role: domain.RoleAdmin}
	tok, err := s.sessions.codec.Issue(id)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tok})
	rr := httptest.NewRecorder()
	s.authenticate(probe.handler()).ServeHTTP(rr, req)

	assert.True(t, probe.called)
	assert.False(t, probe.anon)
	assert.Equal(t, id, probe.identity)
}

func TestAuthenticate_BadCookieDegradesAndClears(t *testing.T) {
	s := gateServer(t)
	probe := &identityProbe{}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tampered.token.value"})
	rr := httptest.NewRecorder()
	s.authenticate(probe.handler()).ServeHTTP(rr, req)

	assert.True(t, probe.called, "invalid token degrades to anonymous, never blocks")
	assert.True(t, probe.anon)

	cleared := findCookie(t, rr.Result(), sessionCookieName)
	require.NotNil(t, cleared, "stale cookie must be cleared")
	assert.Equal(t, -1, cleared.MaxAge)
	assert.NotNil(t, findCookie(t, rr.Result(), noticeCookieName))
}

func TestRequireLogin_AnonymousRedirects(t *testing.T) {
	s := gateServer(t)
	probe := &identityProbe{}

	req := httptest.NewRequest("GET", "/account/", nil)
	rr := httptest.NewRecorder()
	s.requireLogin(probe.handler()).ServeHTTP(rr, req)

	assert.False(t, probe.called)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/account/login", rr.Header().Get("Location"))
	assert.NotNil(t, findCookie(t, rr.Result(), noticeCookieName))
}

func TestRequireLogin_IdentifiedPasses(t *testing.T) {
	s := gateServer(t)
	probe := &identityProbe{}

	req := httptest.NewRequest("GET", "/account/", nil)
	req = req.WithContext(withIdentity(req.Context(), domain.Identity{ID: 7, Role: domain.RoleClient}))
	rr := httptest.NewRecorder()
	s.requireLogin(probe.handler()).ServeHTTP(rr, req)

	assert.True(t, probe.called)
}

func TestRequireElevated(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		anon bool
		pass bool
	}{
		{name: "anonymous fails closed", anon: true},
		{name: "client denied", role: domain.RoleClient},
		{name: "employee passes", role: domain.RoleEmployee, pass: true},
		{name: "admin passes", role: domain.RoleAdmin, pass: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gateServer(t)
			probe := &identityProbe{}

			req := httptest.NewRequest("GET", "/inv/", nil)
			if !tt.anon {
				req = req.WithContext(withIdentity(req.Context(), domain.Identity{ID: 1, Role: tt.role}))
			}
			rr := httptest.NewRecorder()
			s.requireElevated(probe.handler()).ServeHTTP(rr, req)

			if tt.pass {
				assert.True(t, probe.called)
				return
			}
			assert.False(t, probe.called)
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/account/login", rr.Header().Get("Location"))
		})
	}
}

func TestLogRequestsRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest("GET", "/test-path", nil)
	rr := httptest.NewRecorder()
	s.logRequests(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	out := buf.String()
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "/test-path")
	assert.Contains(t, out, "418")
}

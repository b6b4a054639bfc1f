package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"motors/internal/token"
)

// authenticate is the global authentication gate. It never terminates a
// request: with no cookie the request proceeds anonymously; with a
// cookie that fails verification the stale cookie is cleared, a notice
// is set, and the request proceeds anonymously; on success the verified
// identity is attached to the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		id, err := s.sessions.codec.Verify(c.Value)
		if err != nil {
			// Expired, tampered, malformed: all degrade to anonymous.
			if errors.Is(err, token.ErrInvalid) {
				s.sessions.clear(w)
				setNotice(w, "Your session has ended. Please log in again.")
				s.logger.Info("session token rejected", "reason", err.Error())
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// requireLogin short-circuits anonymous requests with a redirect to the
// login view and a notice.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			setNotice(w, "Please log in.")
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireElevated short-circuits requests whose identity does not hold
// an elevated role. Anonymous requests fail the same way, so the gate
// fails closed regardless of chain order.
func (s *Server) requireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.Role.Elevated() {
			setNotice(w, "You are not authorized to view that page.")
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request and feeds the request counter.
// Token values and form bodies are never logged.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observeRequest(rec.status)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

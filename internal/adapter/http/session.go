package adapthttp

import (
	"net/http"

	"motors/internal/domain"
	"motors/internal/token"
)

// sessionCookieName is the single fixed name of the session cookie.
const sessionCookieName = "jwt"

// sessionManager binds session tokens to an HTTP cookie. The Secure flag
// is resolved once at startup: on in production, off in development so
// plain-HTTP localhost still works.
type sessionManager struct {
	codec  *token.Codec
	secure bool
}

func newSessionManager(codec *token.Codec, secure bool) *sessionManager {
	return &sessionManager{codec: codec, secure: secure}
}

// mint sets the session cookie carrying tok. Max-Age matches the token
// TTL so the browser drops the cookie when the token is already useless.
func (m *sessionManager) mint(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.codec.TTL().Seconds()),
	})
}

// clear instructs the client to delete the session cookie immediately.
// Clearing an already-absent cookie is a no-op on the client, so calling
// this twice is harmless.
func (m *sessionManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// refresh issues a fresh token for id and mints it. Called after any
// profile mutation so the client's cached identity tracks storage
// without a re-login.
func (m *sessionManager) refresh(w http.ResponseWriter, id domain.Identity) error {
	tok, err := m.codec.Issue(id)
	if err != nil {
		return err
	}
	m.mint(w, tok)
	return nil
}

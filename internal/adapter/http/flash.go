package adapthttp

import (
	"encoding/base64"
	"net/http"
)

// noticeCookieName carries a one-shot human-readable notice across a
// redirect, read and cleared on the next page render.
const noticeCookieName = "notice"

func setNotice(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popNotice returns the pending notice, if any, and clears it.
func popNotice(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(noticeCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	msg, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

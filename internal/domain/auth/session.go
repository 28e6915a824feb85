package auth

import (
	"net/http"
	"time"
)

// SessionCookies reads and writes the authentication cookie. The
// cookie is the only session state in the system; the server keeps
// nothing per-session.
type SessionCookies struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Issue sets the session cookie. HttpOnly keeps scripts away from the
// token, SameSite=Lax blocks cross-site POSTs from carrying it, and
// Max-Age matches the token TTL so browser and token expire together.
func (sc SessionCookies) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately.
func (sc SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the token from the request cookie, or "" when absent.
func (sc SessionCookies) Read(r *http.Request) string {
	cookie, err := r.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

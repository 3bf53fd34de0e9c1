package auth

import (
	"context"
	"net/http"
)

// CookieName is the session credential cookie.
const CookieName = "token"

// SessionFromRequest resolves the session carried by the request's cookie.
// A missing cookie returns (nil, false) without touching the token service.
func (t *TokenService) SessionFromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return t.Verify(cookie.Value)
}

// SetSessionCookie sets the session cookie on a response. The cookie is
// HTTP-only and same-site restricted; Secure is dropped only in dev mode so
// local plain-HTTP development keeps working.
func SetSessionCookie(w http.ResponseWriter, token string, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !dev,
	})
}

// ClearSessionCookie clears the session cookie. Logout is client-side only;
// the token itself stays valid until it expires.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession adds a session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext retrieves the session from a request context, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey).(*Session)
	return s
}

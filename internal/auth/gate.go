package auth

import "net/http"

// Denial is a structured authorization failure, ready to write as a
// response. It is generated locally and never wraps a collaborator error.
type Denial struct {
	Status  int
	Message string
}

func (d *Denial) Error() string {
	return d.Message
}

// Gate enforces the authentication requirements of API routes. Every route
// that reads or writes engine state calls RequireAuth or RequireAdmin before
// doing any engine work.
type Gate struct {
	tokens *TokenService
}

// NewGate creates a gate over the given token service.
func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Session resolves the request's session without enforcing anything.
func (g *Gate) Session(r *http.Request) (*Session, bool) {
	return g.tokens.SessionFromRequest(r)
}

// RequireAuth returns the request's session, or a 401 denial. Expired and
// tampered credentials are indistinguishable from absent ones.
func (g *Gate) RequireAuth(r *http.Request) (*Session, *Denial) {
	sess, ok := g.tokens.SessionFromRequest(r)
	if !ok {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: "not authenticated"}
	}
	return sess, nil
}

// RequireAdmin returns the request's session if it carries the admin role,
// or a 401/403 denial.
func (g *Gate) RequireAdmin(r *http.Request) (*Session, *Denial) {
	sess, denial := g.RequireAuth(r)
	if denial != nil {
		return nil, denial
	}
	if !sess.IsAdmin() {
		return nil, &Denial{Status: http.StatusForbidden, Message: "admin role required"}
	}
	return sess, nil
}

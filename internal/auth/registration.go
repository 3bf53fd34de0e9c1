package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/opentocoder/docker-panel/internal/logging"
	"github.com/opentocoder/docker-panel/internal/users"
)

// RegistrationPolicy decides whether a new account may be created and with
// what role. It is a two-state machine over the store's cardinality:
//
//   - empty store: registration is open to anyone and the account is
//     granted the admin role. This is the only path that ever creates an
//     admin without an existing admin.
//   - otherwise: registration requires an admin session and the account
//     gets the plain user role.
type RegistrationPolicy struct {
	store  users.Store
	logger *logging.Logger

	// Serializes registrations so two concurrent bootstrap requests cannot
	// both observe an empty store and both mint admins.
	mu sync.Mutex
}

// NewRegistrationPolicy creates a policy over the given store. A nil
// logger uses the process default.
func NewRegistrationPolicy(store users.Store, logger *logging.Logger) *RegistrationPolicy {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistrationPolicy{store: store, logger: logger.WithComponent("registration")}
}

// Register applies the policy and, if allowed, creates the account.
// sess is the caller's resolved session, nil when unauthenticated. On
// success it returns the created user and a human-readable message.
func (p *RegistrationPolicy) Register(ctx context.Context, sess *Session, username, password, confirm string) (users.User, string, *Denial) {
	p.mu.Lock()
	defer p.mu.Unlock()

	count, err := p.store.Count(ctx)
	if err != nil {
		p.logger.Error("user count failed", "error", err)
		return users.User{}, "", &Denial{Status: http.StatusInternalServerError, Message: "registration unavailable"}
	}

	if count > 0 {
		if sess == nil {
			return users.User{}, "", &Denial{Status: http.StatusForbidden, Message: "registration is closed, contact an administrator"}
		}
		if !sess.IsAdmin() {
			return users.User{}, "", &Denial{Status: http.StatusForbidden, Message: "only administrators can create users"}
		}
	}

	if username == "" || password == "" {
		return users.User{}, "", &Denial{Status: http.StatusBadRequest, Message: "username and password are required"}
	}
	if password != confirm {
		return users.User{}, "", &Denial{Status: http.StatusBadRequest, Message: "passwords do not match"}
	}
	if err := ValidatePassword(password); err != nil {
		return users.User{}, "", &Denial{Status: http.StatusBadRequest, Message: err.Error()}
	}

	// Pre-check for a friendlier message; the store's unique constraint
	// below remains the authority under concurrent registration.
	if _, exists, err := p.store.FindByUsername(ctx, username); err != nil {
		p.logger.Error("user lookup failed", "username", username, "error", err)
		return users.User{}, "", &Denial{Status: http.StatusInternalServerError, Message: "registration unavailable"}
	} else if exists {
		return users.User{}, "", &Denial{Status: http.StatusBadRequest, Message: "username already exists"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		p.logger.Error("password hash failed", "error", err)
		return users.User{}, "", &Denial{Status: http.StatusInternalServerError, Message: "registration failed"}
	}

	role := users.RoleUser
	message := "user created"
	if count == 0 {
		role = users.RoleAdmin
		message = "administrator account created"
	}

	u, err := p.store.Create(ctx, username, hash, role)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			return users.User{}, "", &Denial{Status: http.StatusBadRequest, Message: "username already exists"}
		}
		p.logger.Error("user insert failed", "username", username, "error", err)
		return users.User{}, "", &Denial{Status: http.StatusInternalServerError, Message: "registration failed"}
	}

	return u, message, nil
}

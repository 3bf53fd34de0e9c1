// Package users provides persistent credential records for panel accounts.
package users

import (
	"context"
	"errors"
	"time"
)

// Role defines user permission levels.
type Role string

const (
	RoleAdmin Role = "admin" // full access, may create users
	RoleUser  Role = "user"  // authenticated dashboard access
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a stored account. Records are created once at registration and
// never mutated afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrUsernameTaken is returned by Create when the username already exists.
// The storage layer's unique constraint is the authoritative guard; callers
// may pre-check for a friendlier message but must handle this error.
var ErrUsernameTaken = errors.New("username already exists")

// Store is the persistence boundary for accounts.
type Store interface {
	// FindByUsername returns the record for username, with found=false when
	// no such account exists.
	FindByUsername(ctx context.Context, username string) (User, bool, error)
	// Create inserts a new account and returns it with its assigned id.
	Create(ctx context.Context, username, passwordHash string, role Role) (User, error)
	// Count returns the total number of accounts.
	Count(ctx context.Context) (int, error)
}

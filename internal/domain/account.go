// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// Role is the access level attached to an account.
type Role string

const (
	// RoleClient is the default role assigned at registration.
	RoleClient Role = "Client"
	// RoleEmployee grants access to inventory management.
	RoleEmployee Role = "Employee"
	// RoleAdmin grants access to inventory management.
	RoleAdmin Role = "Admin"
)

// ParseRole maps a stored role string to a Role. Unknown values fail
// closed to RoleClient.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleEmployee:
		return RoleEmployee
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

// Elevated reports whether the role grants access to management routes.
func (r Role) Elevated() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Account represents a registered account in the system.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
}

// Public strips the account down to the fields that may leave the
// credential layer. The password hash never crosses this boundary.
func (a *Account) Public() Identity {
	return Identity{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// Identity is the public projection of an account carried by session
// tokens and request contexts.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

// AccountRepository defines the port for account persistence operations.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*Account, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context) ([]Account, error)
}

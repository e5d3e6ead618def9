// Package appctx provides request-scoped values extraction.
package appctx

import (
	"context"
)

// Role is a user role. Roles govern field visibility in sale
// projections and who may act on another user's sale.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// IsPrivileged reports whether the role may see cost/profit figures
// and act on sales created by other users.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// UserContext contains authenticated user information.
type UserContext struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      Role
}

// FullName returns the user's display name.
func (u *UserContext) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetRole returns the role from context or the zero value.
func GetRole(ctx context.Context) Role {
	if u := GetUser(ctx); u != nil {
		return u.Role
	}
	return ""
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role Role) bool {
	if u := GetUser(ctx); u != nil {
		return u.Role == role
	}
	return false
}

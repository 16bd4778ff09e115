// Package auth resolves who is calling the API and decides what they may do.
// Bearer tokens are HS256 JWTs; the permission policy is a static table
// from action to required capability.
package auth

import "context"

// Role is the caller's standing, ordered from least to most privileged.
type Role int

const (
	Anonymous Role = iota
	Authenticated
	Admin
)

func (r Role) String() string {
	switch r {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the resolved caller of a request. The zero value is anonymous.
type Identity struct {
	Subject string
	Role    Role
}

// IsAuthenticated reports whether the caller presented valid credentials.
func (i Identity) IsAuthenticated() bool {
	return i.Role >= Authenticated
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == Admin
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity, or an anonymous
// identity if there is none.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}

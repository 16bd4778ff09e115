package auth

import (
	"fmt"

	"github.com/pkordes/actorvote/internal/domain"
)

// Action names an operation a handler performs.
type Action string

const (
	ActionList     Action = "list"
	ActionRank     Action = "rank"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionDestroy  Action = "destroy"
	ActionUpvote   Action = "upvote"
	ActionDownvote Action = "downvote"
)

// Capability is what a caller must hold to perform an action.
type Capability int

const (
	RequireAuthenticated Capability = iota
	Public
	RequireAdmin
)

// policy lists the exceptions; any action not named here requires
// authentication.
var policy = map[Action]Capability{
	ActionCreate:  RequireAdmin,
	ActionDestroy: RequireAdmin,
	ActionList:    Public,
	ActionRank:    Public,
}

// Required returns the capability an action demands.
func Required(a Action) Capability {
	if c, ok := policy[a]; ok {
		return c
	}
	return RequireAuthenticated
}

// Authorize returns nil if id may perform a. An anonymous caller on a gated
// action gets domain.ErrUnauthenticated; an authenticated caller lacking the
// admin role gets domain.ErrForbidden.
func Authorize(a Action, id Identity) error {
	switch Required(a) {
	case Public:
		return nil
	case RequireAdmin:
		if !id.IsAuthenticated() {
			return domain.ErrUnauthenticated
		}
		if !id.IsAdmin() {
			return fmt.Errorf("%w: %s requires the admin role", domain.ErrForbidden, a)
		}
		return nil
	default:
		if !id.IsAuthenticated() {
			return domain.ErrUnauthenticated
		}
		return nil
	}
}

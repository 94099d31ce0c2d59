package memberkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// ProjectLookup resolves project projections. Implementations live in the
// caller's application; a missing project must yield an error matching
// ErrNotFound so the resolver can propagate it unchanged.
type ProjectLookup interface {
	GetProject(ctx context.Context, projectID string) (*Project, error)
}

// UserLookup resolves user projections. A missing user must yield an error
// matching ErrNotFound.
type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*User, error)
}

// RoleLookup resolves role definitions. GetRoleByName fails with ErrNotFound
// when the named role is not defined; GetRole returns (nil, nil) for an
// unknown id, which callers treat as a soft miss.
type RoleLookup interface {
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	GetRole(ctx context.Context, roleID string) (*Role, error)
}

// MembershipReader is the thin read path the resolver needs from the store.
type MembershipReader interface {
	GetRole(ctx context.Context, userID, projectID string) (*Role, error)
}

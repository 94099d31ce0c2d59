package memberkit

import (
	"context"

	"github.com/rs/zerolog"
)

// Resolver computes the single effective role for a (user, project) pair.
//
// Precedence, first match wins:
//
//  1. the user is the project's designated owner: administrator
//  2. the user shares the project's platform and holds platform-level
//     administrator standing: administrator
//  3. an explicit membership row exists for the pair: that row's role
//  4. otherwise: ErrNoRole
//
// Resolution is read-only. A missing project or user propagates as the
// collaborator's ErrNotFound, which callers must keep distinguishable from
// ErrNoRole.
type Resolver struct {
	memberships MembershipReader
	projects    ProjectLookup
	users       UserLookup
	roles       RoleLookup
	log         zerolog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used for resolution events.
func WithResolverLogger(log zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a role resolver over its collaborators. memberships
// is typically a *Store; projects and users are the caller's lookups.
func NewResolver(memberships MembershipReader, projects ProjectLookup, users UserLookup, roles RoleLookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		memberships: memberships,
		projects:    projects,
		users:       users,
		roles:       roles,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution is one step of the precedence chain. Steps run in order and
// lazily: a step's lookups only happen if every earlier step passed.
type resolution struct {
	name    string
	resolve func(ctx context.Context) (*Role, bool, error)
}

// ResolveRole returns the effective role for userID in projectID.
//
// Example:
//
//	role, err := resolver.ResolveRole(ctx, userID, projectID)
//	switch {
//	case memberkit.IsNotFound(err):
//	    // project or user does not exist
//	case memberkit.IsNoRole(err):
//	    // project exists, user has no access
//	}
func (r *Resolver) ResolveRole(ctx context.Context, userID, projectID string) (*Role, error) {
	project, err := r.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	steps := []resolution{
		{
			name: "project_owner",
			resolve: func(ctx context.Context) (*Role, bool, error) {
				if project.OwnerID != userID {
					return nil, false, nil
				}
				role, err := r.roles.GetRoleByName(ctx, RoleAdmin)
				return role, err == nil, err
			},
		},
		{
			name: "platform_admin",
			resolve: func(ctx context.Context) (*Role, bool, error) {
				user, err := r.users.GetUser(ctx, userID)
				if err != nil {
					return nil, false, err
				}
				if user.PlatformID != project.PlatformID || !user.PlatformAdmin {
					return nil, false, nil
				}
				role, err := r.roles.GetRoleByName(ctx, RoleAdmin)
				return role, err == nil, err
			},
		},
		{
			name: "explicit_membership",
			resolve: func(ctx context.Context) (*Role, bool, error) {
				role, err := r.memberships.GetRole(ctx, userID, projectID)
				if err != nil {
					return nil, false, err
				}
				return role, role != nil, nil
			},
		},
	}

	for _, step := range steps {
		role, ok, err := step.resolve(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			r.log.Debug().
				Str("user_id", userID).
				Str("project_id", projectID).
				Str("step", step.name).
				Str("role", role.Name).
				Msg("role resolved")
			return role, nil
		}
	}

	return nil, NewError(ErrNoRole, "no applicable role").
		WithProject(projectID).
		WithUser(userID)
}

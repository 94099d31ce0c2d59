// Package memberkit provides project membership storage, effective-role
// resolution and keyset pagination for multi-tenant applications.
//
// MemberKit owns one durable concept: the membership row, at most one per
// (project, user, platform) triple. Everything else it touches (projects,
// users, role definitions) is reached through small collaborator
// interfaces the host application implements.
//
// # Effective role
//
// A user's effective role in a project is computed by precedence, first
// match wins: the project's owner is administrator; a platform
// administrator on the project's platform is administrator; otherwise an
// explicit membership row decides; otherwise there is no role. The
// resolver keeps "project does not exist" (ErrNotFound) and "project
// exists, user has no access" (ErrNoRole) distinguishable.
//
//	role, err := resolver.ResolveRole(ctx, userID, projectID)
//
// # Keyset pagination
//
// Listings page with opaque, bidirectional cursors anchored to the
// (created, id) pair of the boundary row, so concurrent inserts and
// deletes of other rows never duplicate or skip rows already returned.
// Cursors are URL-safe strings minted fresh on every page and carry no
// server-side state.
//
//	page, err := store.List(ctx, projectID, "", 20)
//	next, err := store.List(ctx, projectID, page.Next, 20)
//
// # Enrichment
//
// A page of memberships can be joined with the users' public projections,
// one page at a time. A membership whose user has vanished fails the page
// with ErrIntegrityViolation instead of being dropped silently.
//
// Storage runs on PostgreSQL through dbkit and bun; the schema ships as
// dbkit migrations (see MigrationService).
package memberkit

package memberkit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
)

// membershipOrder fixes the listing order for memberships: creation time
// ascending with id ascending as tie-break. Changing it would invalidate
// every cursor in flight, so it is not configurable.
var membershipOrder = Order{Column: "pm.created", ID: "pm.id"}

// Store provides durable storage for project memberships on PostgreSQL.
//
// Error Handling:
// All database operations use dbkit's chainable error wrapping to provide
// detailed context about failed operations. Uniqueness races on the
// membership triple are absorbed inside Upsert; everything else propagates
// to the caller unchanged.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := memberkit.NewStore(db, projects)
type Store struct {
	db       Database
	projects ProjectLookup
	roles    RoleLookup
	order    Order
	log      zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for mutation events. The default is a
// no-op logger, keeping the library silent unless wired.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithRoleLookup replaces the role definition source used by GetRole.
// The default is a RoleStore over the same database.
func WithRoleLookup(roles RoleLookup) StoreOption {
	return func(s *Store) {
		s.roles = roles
	}
}

// WithPageSizes overrides the default and maximum page sizes for List.
// Callers requesting more than the maximum receive the maximum, never an
// error.
func WithPageSizes(defaultSize, maxSize int) StoreOption {
	return func(s *Store) {
		s.order.DefaultLimit = defaultSize
		s.order.MaxLimit = maxSize
	}
}

// NewStore creates a new membership store. The project lookup collaborator
// is required: Upsert resolves the project's platform through it.
func NewStore(db Database, projects ProjectLookup, opts ...StoreOption) *Store {
	s := &Store{
		db:       db,
		projects: projects,
		roles:    NewRoleStore(db),
		order:    membershipOrder,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// MEMBERSHIP OPERATIONS
// ============================================================================

// Upsert creates or updates the membership for (user, project), idempotent
// by the (project, user, platform) triple. A new row gets a fresh id with
// created and updated set to the same instant; an existing row keeps its id
// and created, and gets the new role and a bumped updated timestamp.
//
// The write is a single atomic INSERT ... ON CONFLICT DO UPDATE on the
// unique triple, never a read-then-write pair, so concurrent callers for
// the same triple cannot corrupt the row; the last committed role wins.
//
// Example:
//
//	m, err := store.Upsert(ctx, userID, projectID, editorRole.ID)
func (s *Store) Upsert(ctx context.Context, userID, projectID, roleID string) (*Membership, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Millisecond precision keeps the stored value identical to what a
	// cursor minted from this row will carry.
	now := time.Now().UTC().Truncate(time.Millisecond)
	m := &Membership{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		UserID:     userID,
		PlatformID: project.PlatformID,
		RoleID:     roleID,
		Created:    now,
		Updated:    now,
	}

	// RETURNING repopulates id and created from the stored row when the
	// triple already existed.
	_, err = s.db.NewInsert().
		Model(m).
		On("CONFLICT (project_id, user_id, platform_id) DO UPDATE").
		Set("role_id = EXCLUDED.role_id").
		Set("updated = EXCLUDED.updated").
		Returning("*").
		Exec(ctx)
	err = dbkit.WithErr1(err, "UpsertProjectMember").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			// A concurrent writer won the insert between conflict
			// detection and our write. Upsert is idempotent, so retry
			// once as an update in place.
			return s.updateExisting(ctx, userID, projectID, project.PlatformID, roleID, now)
		}
		return nil, NewError(ErrDatabaseError, "failed to upsert membership").
			WithProject(projectID).
			WithUser(userID).
			WithRole(roleID)
	}

	s.log.Debug().
		Str("membership_id", m.ID).
		Str("project_id", projectID).
		Str("user_id", userID).
		Str("role_id", roleID).
		Str("request_id", GetRequestID(ctx)).
		Msg("membership upserted")

	return m, nil
}

// updateExisting is the Conflict retry path: the row for the triple exists,
// so mutate it in place and return the stored projection.
func (s *Store) updateExisting(ctx context.Context, userID, projectID, platformID, roleID string, now time.Time) (*Membership, error) {
	var m Membership
	res, err := s.db.NewUpdate().
		Model(&m).
		Set("role_id = ?", roleID).
		Set("updated = ?", now).
		Where("project_id = ? AND user_id = ? AND platform_id = ?", projectID, userID, platformID).
		Returning("*").
		Exec(ctx)
	err = dbkit.WithErr(res, err, "UpdateProjectMember").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to update membership after conflict").
			WithProject(projectID).
			WithUser(userID).
			WithRole(roleID)
	}
	return &m, nil
}

// List returns one page of a project's memberships ordered by (created, id)
// ascending, honoring the keyset cursor protocol. The cursor token must
// come from a previous List for the same project; an undecodable token
// fails with ErrInvalidCursor.
//
// Example:
//
//	page, err := store.List(ctx, projectID, "", 20)
//	for page.Next != "" {
//	    page, err = store.List(ctx, projectID, page.Next, 20)
//	}
func (s *Store) List(ctx context.Context, projectID, cursor string, limit int) (*Page[Membership], error) {
	cur, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	return Paginate[Membership](ctx, s.db, s.order, cur, limit, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pm.project_id = ?", projectID)
	})
}

// GetRole returns the role assigned by an explicit membership row for
// (user, project), or nil when no row exists. nil is not an error: the
// resolver uses it to fall through to "no role".
func (s *Store) GetRole(ctx context.Context, userID, projectID string) (*Role, error) {
	var m Membership
	err := s.db.NewSelect().
		Model(&m).
		Where("pm.project_id = ? AND pm.user_id = ?", projectID, userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbkit.IsNotFound(err) {
			return nil, nil
		}
		return nil, dbkit.WithErr1(err, "GetMembershipRole").Err()
	}

	// A membership pointing at a role definition that has been removed
	// behaves like no explicit assignment.
	return s.roles.GetRole(ctx, m.RoleID)
}

// Delete removes a membership from a project by its id. Deleting a row that
// does not exist is not an error.
//
// Example:
//
//	err := store.Delete(ctx, projectID, invitation.MembershipID)
func (s *Store) Delete(ctx context.Context, projectID, membershipID string) error {
	res, err := s.db.NewDelete().
		Table("project_members").
		Where("project_id = ? AND id = ?", projectID, membershipID).
		Exec(ctx)
	err = dbkit.WithErr(res, err, "DeleteProjectMember").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to delete membership").
			WithProject(projectID).
			WithMembership(membershipID)
	}

	s.log.Debug().
		Str("membership_id", membershipID).
		Str("project_id", projectID).
		Str("request_id", GetRequestID(ctx)).
		Msg("membership deleted")

	return nil
}

// Count returns the total number of memberships for a project. Used by
// collaborators for quota and seat-limit checks.
func (s *Store) Count(ctx context.Context, projectID string) (int, error) {
	return dbkit.Count[Membership](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pm.project_id = ?", projectID)
	})
}

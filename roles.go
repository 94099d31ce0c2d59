package memberkit

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fernandezvara/dbkit"
)

// RoleStore provides access to role definitions stored in the database.
// The default definitions are seeded by the migrations; applications can
// add their own rows alongside them.
type RoleStore struct {
	db Database
}

// NewRoleStore creates a role definition store.
func NewRoleStore(db Database) *RoleStore {
	return &RoleStore{db: db}
}

// GetRoleByName returns the role definition with the given name.
// Fails with ErrNotFound when the role is not defined: callers asking by
// name (the resolver asking for the administrator role) depend on the
// definition existing.
func (rs *RoleStore) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := rs.db.NewSelect().
		Model(&role).
		Where("pr.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotFound, "role definition not found").WithRole(name)
		}
		return nil, dbkit.WithErr1(err, "GetRoleByName").Err()
	}
	return &role, nil
}

// GetRole returns the role definition with the given id, or nil when no
// such definition exists. The soft miss lets a membership referencing a
// removed definition degrade to "no explicit role" instead of erroring.
func (rs *RoleStore) GetRole(ctx context.Context, roleID string) (*Role, error) {
	var role Role
	err := rs.db.NewSelect().
		Model(&role).
		Where("pr.id = ?", roleID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbkit.IsNotFound(err) {
			return nil, nil
		}
		return nil, dbkit.WithErr1(err, "GetRole").Err()
	}
	return &role, nil
}

package memberkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAdminRole  = Role{ID: "role-admin", Name: RoleAdmin, Permissions: []string{"*"}, Default: true}
	testEditorRole = Role{ID: "role-editor", Name: RoleEditor, Permissions: []string{"flows.*"}, Default: true}
)

type resolverFixture struct {
	resolver    *Resolver
	projects    *fakeProjects
	users       *fakeUsers
	memberships *fakeMemberships
}

func newResolverFixture() *resolverFixture {
	projects := &fakeProjects{projects: map[string]Project{
		"p1": {ID: "p1", OwnerID: "owner1", PlatformID: "t1"},
	}}
	users := &fakeUsers{users: map[string]User{
		"owner1":     {ID: "owner1", PlatformID: "t1"},
		"platadmin1": {ID: "platadmin1", PlatformID: "t1", PlatformAdmin: true},
		"platadmin2": {ID: "platadmin2", PlatformID: "t2", PlatformAdmin: true},
		"member1":    {ID: "member1", PlatformID: "t1"},
		"nobody1":    {ID: "nobody1", PlatformID: "t1"},
	}}
	memberships := &fakeMemberships{roles: map[string]*Role{
		"p1/member1": &testEditorRole,
	}}

	return &resolverFixture{
		resolver:    NewResolver(memberships, projects, users, newFakeRoles(testAdminRole, testEditorRole)),
		projects:    projects,
		users:       users,
		memberships: memberships,
	}
}

// TestResolveRoleProjectOwner tests that the owner gets administrator
// without any user or membership lookup
func TestResolveRoleProjectOwner(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "owner1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role.Name)

	// Ownership short-circuits: no user fetch, no store read
	assert.Zero(t, f.users.calls)
	assert.Zero(t, f.memberships.calls)
}

// TestResolveRoleOwnerIgnoresMembershipRow tests that ownership wins over
// an explicit membership row
func TestResolveRoleOwnerIgnoresMembershipRow(t *testing.T) {
	f := newResolverFixture()
	f.memberships.roles["p1/owner1"] = &testEditorRole

	role, err := f.resolver.ResolveRole(context.Background(), "owner1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role.Name)
}

// TestResolveRolePlatformAdmin tests the same-platform admin shortcut
func TestResolveRolePlatformAdmin(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "platadmin1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role.Name)
	assert.Zero(t, f.memberships.calls)
}

// TestResolveRolePlatformAdminOtherPlatform tests that admin standing on a
// different platform grants nothing
func TestResolveRolePlatformAdminOtherPlatform(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "platadmin2", "p1")
	assert.Nil(t, role)
	assert.True(t, IsNoRole(err))
}

// TestResolveRoleExplicitMembership tests fallback to the membership row
func TestResolveRoleExplicitMembership(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "member1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role.Name)
	assert.Equal(t, 1, f.memberships.calls)
}

// TestResolveRoleNoRole tests that no shortcut and no row means ErrNoRole,
// not ErrNotFound
func TestResolveRoleNoRole(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "nobody1", "p1")
	assert.Nil(t, role)
	assert.True(t, IsNoRole(err))
	assert.False(t, IsNotFound(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "p1", e.ProjectID)
	assert.Equal(t, "nobody1", e.UserID)
}

// TestResolveRoleMissingProject tests that a missing project propagates the
// collaborator's NotFound unchanged
func TestResolveRoleMissingProject(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "member1", "ghost")
	assert.Nil(t, role)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNoRole(err))
}

// TestResolveRoleMissingUser tests that a missing non-owner user propagates
// NotFound from the user lookup
func TestResolveRoleMissingUser(t *testing.T) {
	f := newResolverFixture()

	role, err := f.resolver.ResolveRole(context.Background(), "ghost", "p1")
	assert.Nil(t, role)
	assert.True(t, IsNotFound(err))
}

// TestResolveRoleUserLookupFailure tests that unexpected collaborator
// failures are not swallowed into NoRole
func TestResolveRoleUserLookupFailure(t *testing.T) {
	f := newResolverFixture()
	f.users.err = assert.AnError

	role, err := f.resolver.ResolveRole(context.Background(), "member1", "p1")
	assert.Nil(t, role)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestResolveRoleScenario walks a full access story: owner, stranger, then
// stranger after an explicit assignment
func TestResolveRoleScenario(t *testing.T) {
	f := newResolverFixture()
	ctx := context.Background()

	role, err := f.resolver.ResolveRole(ctx, "owner1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role.Name)

	_, err = f.resolver.ResolveRole(ctx, "nobody1", "p1")
	assert.True(t, IsNoRole(err))

	f.memberships.roles["p1/nobody1"] = &testEditorRole

	role, err = f.resolver.ResolveRole(ctx, "nobody1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role.Name)
}

package memberkit

import (
	"context"
)

// In-memory collaborator fakes for unit tests that must not touch the
// database.

type fakeProjects struct {
	projects map[string]Project
	calls    int
}

func (f *fakeProjects) GetProject(_ context.Context, projectID string) (*Project, error) {
	f.calls++
	p, ok := f.projects[projectID]
	if !ok {
		return nil, NewError(ErrNotFound, "project not found").WithProject(projectID)
	}
	return &p, nil
}

type fakeUsers struct {
	users map[string]User
	calls int
	err   error
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, NewError(ErrNotFound, "user not found").WithUser(userID)
	}
	return &u, nil
}

type fakeRoles struct {
	byName map[string]Role
	byID   map[string]Role
}

func newFakeRoles(roles ...Role) *fakeRoles {
	f := &fakeRoles{byName: make(map[string]Role), byID: make(map[string]Role)}
	for _, r := range roles {
		f.byName[r.Name] = r
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRoles) GetRoleByName(_ context.Context, name string) (*Role, error) {
	r, ok := f.byName[name]
	if !ok {
		return nil, NewError(ErrNotFound, "role definition not found").WithRole(name)
	}
	return &r, nil
}

func (f *fakeRoles) GetRole(_ context.Context, roleID string) (*Role, error) {
	r, ok := f.byID[roleID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

type fakeMemberships struct {
	roles map[string]*Role // "projectID/userID" -> role
	calls int
}

func (f *fakeMemberships) GetRole(_ context.Context, userID, projectID string) (*Role, error) {
	f.calls++
	return f.roles[projectID+"/"+userID], nil
}

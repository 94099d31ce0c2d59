package memberkit

import (
	"time"

	"github.com/uptrace/bun"
)

// Membership links a user to a project within a platform with a single role.
// At most one membership exists per (project, user, platform) triple; the
// unique constraint on that triple is what makes Upsert safe under
// concurrent writers.
type Membership struct {
	bun.BaseModel `bun:"table:project_members,alias:pm"`

	ID         string    `bun:"id,pk,type:uuid" json:"id"`
	ProjectID  string    `bun:"project_id,notnull" json:"projectId"`
	UserID     string    `bun:"user_id,notnull" json:"userId"`
	PlatformID string    `bun:"platform_id,notnull" json:"platformId"`
	RoleID     string    `bun:"role_id,notnull" json:"roleId"`
	Created    time.Time `bun:"created,notnull,default:current_timestamp" json:"created"`
	Updated    time.Time `bun:"updated,notnull,default:current_timestamp" json:"updated"`
}

// PaginationKey returns the (order key, id) pair that positions this
// membership in the listing order. Created is stored at millisecond
// precision so the pair round-trips exactly through a Cursor.
func (m Membership) PaginationKey() (time.Time, string) {
	return m.Created, m.ID
}

// Role is a role definition referenced by memberships through RoleID.
// The administrator role is returned by the resolver for project owners
// and platform administrators without a membership row.
type Role struct {
	bun.BaseModel `bun:"table:project_roles,alias:pr"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Permissions []string  `bun:"permissions,type:text[]" json:"permissions"`
	Default     bool      `bun:"is_default,notnull,default:false" json:"default"`
	Created     time.Time `bun:"created,notnull,default:current_timestamp" json:"created"`
	Updated     time.Time `bun:"updated,notnull,default:current_timestamp" json:"updated"`
}

// Default role names seeded by the migrations.
const (
	RoleAdmin    = "admin"
	RoleEditor   = "editor"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Project is the projection of a project returned by the ProjectLookup
// collaborator. Projects themselves are owned by the caller's application,
// not by this library.
type Project struct {
	ID         string `json:"id"`
	OwnerID    string `json:"ownerId"`
	PlatformID string `json:"platformId"`
}

// User is the projection of a user returned by the UserLookup collaborator.
type User struct {
	ID            string `json:"id"`
	PlatformID    string `json:"platformId"`
	PlatformAdmin bool   `json:"platformAdmin"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

// Public returns the user fields safe to attach to a listing response.
func (u *User) Public() MembershipUser {
	return MembershipUser{
		ID:            u.ID,
		PlatformID:    u.PlatformID,
		PlatformAdmin: u.PlatformAdmin,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
	}
}

// MembershipUser is the public user projection attached to an enriched
// membership.
type MembershipUser struct {
	ID            string `json:"id"`
	PlatformID    string `json:"platformId"`
	PlatformAdmin bool   `json:"platformAdmin"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

// MembershipWithUser is a membership joined with its user's public
// projection, produced page by page by the Enricher.
type MembershipWithUser struct {
	Membership
	User MembershipUser `json:"user"`
}

// Page is one unit of a listing response: the rows in presentation order
// plus the opaque cursors to continue in either direction. Empty cursor
// strings mean there is nothing further that way.
type Page[T any] struct {
	Data     []T    `json:"data"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

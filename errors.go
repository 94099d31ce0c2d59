package memberkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for MemberKit operations.
var (
	// ErrNotFound is returned when a referenced project, user or role
	// definition does not exist. It is distinct from ErrNoRole: callers
	// branching on "unknown resource" vs "known resource, no access"
	// must be able to tell them apart with errors.Is.
	ErrNotFound = errors.New("memberkit: not found")

	// ErrNoRole is returned when role resolution finds no applicable role
	// for an existing user and project.
	ErrNoRole = errors.New("memberkit: no role")

	// ErrConflict marks a uniqueness violation on the membership triple.
	// It is retried inside the store and never surfaces from Upsert.
	ErrConflict = errors.New("memberkit: conflict")

	// ErrIntegrityViolation is returned when enrichment finds a membership
	// referencing a user that no longer exists.
	ErrIntegrityViolation = errors.New("memberkit: integrity violation")

	// ErrInvalidCursor is returned when a cursor token cannot be decoded.
	ErrInvalidCursor = errors.New("memberkit: invalid cursor")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("memberkit: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err          error  // Underlying sentinel error
	Message      string // Additional context
	ProjectID    string // Project involved (if applicable)
	UserID       string // User involved (if applicable)
	MembershipID string // Membership involved (if applicable)
	Role         string // Role involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithProject adds project information to the error.
func (e *Error) WithProject(projectID string) *Error {
	e.ProjectID = projectID
	return e
}

// WithUser adds user information to the error.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithMembership adds membership information to the error.
func (e *Error) WithMembership(membershipID string) *Error {
	e.MembershipID = membershipID
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// IsNotFound checks if an error means a referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoRole checks if an error means the user has no role in the project.
func IsNoRole(err error) bool {
	return errors.Is(err, ErrNoRole)
}

// IsIntegrityViolation checks if an error is a referential-integrity failure.
func IsIntegrityViolation(err error) bool {
	return errors.Is(err, ErrIntegrityViolation)
}

// IsInvalidCursor checks if an error is due to an undecodable cursor token.
func IsInvalidCursor(err error) bool {
	return errors.Is(err, ErrInvalidCursor)
}

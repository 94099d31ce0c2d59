package memberkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorWrapping tests the Error wrapper with context
func TestErrorWrapping(t *testing.T) {
	err := NewError(ErrNoRole, "no applicable role").
		WithProject("proj1").
		WithUser("user1")

	assert.Equal(t, "memberkit: no role: no applicable role", err.Error())
	assert.Equal(t, "proj1", err.ProjectID)
	assert.Equal(t, "user1", err.UserID)
	assert.ErrorIs(t, err, ErrNoRole)
	assert.Equal(t, ErrNoRole, errors.Unwrap(err))
}

// TestErrorWithoutMessage tests that a bare wrapper renders the sentinel
func TestErrorWithoutMessage(t *testing.T) {
	err := NewError(ErrNotFound, "")
	assert.Equal(t, "memberkit: not found", err.Error())
}

// TestErrorBuilders tests the remaining context builders
func TestErrorBuilders(t *testing.T) {
	err := NewError(ErrIntegrityViolation, "dangling user").
		WithMembership("m1").
		WithRole("editor")

	assert.Equal(t, "m1", err.MembershipID)
	assert.Equal(t, "editor", err.Role)
}

// TestErrorPredicates tests the Is* helpers
func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewError(ErrNotFound, "x")))
	assert.True(t, IsNoRole(NewError(ErrNoRole, "x")))
	assert.True(t, IsIntegrityViolation(NewError(ErrIntegrityViolation, "x")))
	assert.True(t, IsInvalidCursor(NewError(ErrInvalidCursor, "x")))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNoRole(fmt.Errorf("other")))
}

// TestNotFoundAndNoRoleAreDistinct tests that the two taxonomies never
// match each other: callers branch on the difference
func TestNotFoundAndNoRoleAreDistinct(t *testing.T) {
	notFound := NewError(ErrNotFound, "project gone").WithProject("p1")
	noRole := NewError(ErrNoRole, "no access").WithProject("p1").WithUser("u1")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNoRole(notFound))

	assert.True(t, IsNoRole(noRole))
	assert.False(t, IsNotFound(noRole))
}

// TestErrorWrappedFurther tests matching through additional wrapping
func TestErrorWrappedFurther(t *testing.T) {
	inner := NewError(ErrNoRole, "no access")
	outer := fmt.Errorf("resolving: %w", inner)

	assert.True(t, IsNoRole(outer))

	var e *Error
	assert.True(t, errors.As(outer, &e))
	assert.Equal(t, inner, e)
}

package rbac

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-institute/lumiere/internal/shared"
	"github.com/lumiere-institute/lumiere/internal/token"
)

type stubPermissionSource struct {
	perms map[string][]string
	err   error
}

func (s *stubPermissionSource) PermissionsForRoleName(ctx context.Context, roleName string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	perms, ok := s.perms[roleName]
	if !ok {
		return nil, shared.ErrRoleNotFound
	}
	return perms, nil
}

func newTestGuard(source PermissionSource) (*Guard, *token.Codec) {
	codec := token.NewCodec("guard-test-secret", 0)
	return NewGuard(codec, source), codec
}

func issueFor(t *testing.T, codec *token.Codec, role string) string {
	t.Helper()
	raw, err := codec.Issue(token.Identity{ID: 7, Email: "user@lumiere.test", Name: "User", Role: role})
	require.NoError(t, err)
	return raw
}

func TestAuthorizeGranted(t *testing.T) {
	source := &stubPermissionSource{perms: map[string][]string{
		"Instructor": {"read", "update", "manage_courses", "view_students"},
	}}
	guard, codec := newTestGuard(source)

	decision, err := guard.Authorize(context.Background(), issueFor(t, codec, "Instructor"), "manage_courses")
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	require.NotNil(t, decision.Identity)
	assert.Equal(t, "Instructor", decision.Identity.Role)
	assert.NoError(t, decision.Err())
}

func TestAuthorizeForbidden(t *testing.T) {
	source := &stubPermissionSource{perms: map[string][]string{
		"Student": {"read", "update_profile"},
	}}
	guard, codec := newTestGuard(source)

	decision, err := guard.Authorize(context.Background(), issueFor(t, codec, "Student"), "manage_courses")
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonForbidden, decision.Reason)
	assert.ErrorIs(t, decision.Err(), shared.ErrForbidden)
	assert.NotNil(t, decision.Identity, "denied-with-identity keeps claims for audit logging")
}

func TestAuthorizeMissingToken(t *testing.T) {
	guard, _ := newTestGuard(&stubPermissionSource{})

	decision, err := guard.Authorize(context.Background(), "", "read")
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
	assert.ErrorIs(t, decision.Err(), shared.ErrUnauthenticated)
}

func TestAuthorizeExpiredEqualsMalformed(t *testing.T) {
	source := &stubPermissionSource{perms: map[string][]string{"Student": {"read"}}}
	guard, _ := newTestGuard(source)

	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiredCodec := token.NewCodec("guard-test-secret", 0).WithClock(func() time.Time { return issued })
	expired, err := expiredCodec.Issue(token.Identity{ID: 7, Role: "Student"})
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"expired":   expired,
		"malformed": "not.a.token",
	} {
		decision, err := guard.Authorize(context.Background(), raw, "read")
		require.NoError(t, err, name)
		assert.False(t, decision.Granted, name)
		assert.Equal(t, ReasonUnauthenticated, decision.Reason, name)
	}
}

func TestAuthorizeUnknownRoleDeniesForbidden(t *testing.T) {
	guard, codec := newTestGuard(&stubPermissionSource{perms: map[string][]string{}})

	decision, err := guard.Authorize(context.Background(), issueFor(t, codec, "Ghost"), "read")
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonForbidden, decision.Reason)
}

func TestAuthorizeBackendUnavailable(t *testing.T) {
	source := &stubPermissionSource{err: errors.New("connection refused")}
	guard, codec := newTestGuard(source)

	_, err := guard.Authorize(context.Background(), issueFor(t, codec, "Student"), "read")
	assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
}

func TestAuthorizeRole(t *testing.T) {
	guard, codec := newTestGuard(&stubPermissionSource{})

	decision, err := guard.AuthorizeRole(context.Background(), issueFor(t, codec, "Admin"), "admin")
	require.NoError(t, err)
	assert.True(t, decision.Granted, "role name match is case-insensitive")

	decision, err = guard.AuthorizeRole(context.Background(), issueFor(t, codec, "Student"), "Admin")
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonForbidden, decision.Reason)

	decision, err = guard.AuthorizeRole(context.Background(), "garbage", "Admin")
	require.NoError(t, err)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
}

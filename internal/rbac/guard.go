package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumiere-institute/lumiere/internal/shared"
	"github.com/lumiere-institute/lumiere/internal/token"
)

// Reason classifies a denial.
type Reason string

const (
	// ReasonUnauthenticated covers missing, malformed, and expired tokens.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonForbidden covers a valid identity lacking the required permission.
	ReasonForbidden Reason = "forbidden"
)

// Decision is the outcome of an authorization check. Denial is an ordinary
// value, not an error; the error return of the guard is reserved for the role
// store being unreachable.
type Decision struct {
	Granted  bool
	Reason   Reason
	Identity *token.Identity
}

// Err converts a denial into its sentinel error for HTTP mapping.
func (d Decision) Err() error {
	if d.Granted {
		return nil
	}
	if d.Reason == ReasonForbidden {
		return shared.ErrForbidden
	}
	return shared.ErrUnauthenticated
}

// PermissionSource resolves a role name to its permission set.
type PermissionSource interface {
	PermissionsForRoleName(ctx context.Context, roleName string) ([]string, error)
}

// Guard decides whether a bearer token may perform an action.
type Guard struct {
	codec  *token.Codec
	source PermissionSource
}

// NewGuard constructs a Guard.
func NewGuard(codec *token.Codec, source PermissionSource) *Guard {
	return &Guard{codec: codec, source: source}
}

// Authorize verifies the token and checks the decoded role's permission set
// for the required permission. An expired token is treated identically to a
// malformed one; a role that no longer exists denies as forbidden.
func (g *Guard) Authorize(ctx context.Context, rawToken, requiredPermission string) (Decision, error) {
	identity := g.codec.Verify(rawToken)
	if identity == nil {
		return Decision{Reason: ReasonUnauthenticated}, nil
	}
	perms, err := g.source.PermissionsForRoleName(ctx, identity.Role)
	if err != nil {
		if errors.Is(err, shared.ErrRoleNotFound) {
			return Decision{Reason: ReasonForbidden, Identity: identity}, nil
		}
		return Decision{}, fmt.Errorf("%w: %v", shared.ErrBackendUnavailable, err)
	}
	required := strings.ToLower(strings.TrimSpace(requiredPermission))
	for _, p := range perms {
		if strings.ToLower(p) == required {
			return Decision{Granted: true, Identity: identity}, nil
		}
	}
	return Decision{Reason: ReasonForbidden, Identity: identity}, nil
}

// AuthorizeRole is the coarse variant used by admin-only surfaces: it matches
// the decoded role claim's name directly, without consulting the role store.
func (g *Guard) AuthorizeRole(ctx context.Context, rawToken, requiredRoleName string) (Decision, error) {
	identity := g.codec.Verify(rawToken)
	if identity == nil {
		return Decision{Reason: ReasonUnauthenticated}, nil
	}
	if strings.EqualFold(identity.Role, requiredRoleName) {
		return Decision{Granted: true, Identity: identity}, nil
	}
	return Decision{Reason: ReasonForbidden, Identity: identity}, nil
}

package shared

import "errors"

var (
	// ErrUnauthenticated indicates a missing, malformed, or expired session token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates a valid identity without the required permission.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrRoleNotFound indicates the referenced role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrDuplicateRole indicates a role name collision (case-insensitive).
	ErrDuplicateRole = errors.New("duplicate role name")
	// ErrInvalidPermission indicates a permission id outside the registry catalog.
	ErrInvalidPermission = errors.New("invalid permission")
	// ErrInvalidInput indicates a payload that parsed but fails a domain rule.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProtectedRole indicates an attempted mutation of the protected Admin role.
	ErrProtectedRole = errors.New("protected role")
	// ErrBackendUnavailable indicates the backing store could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

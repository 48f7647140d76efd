package rbac

import (
	"log/slog"
	"net/http"

	"github.com/lumiere-institute/lumiere/internal/platform/httpx"
	"github.com/lumiere-institute/lumiere/internal/token"
)

// DenialCounter records authorization denials, usually a metrics collector.
type DenialCounter interface {
	CountDenial(reason string)
}

// Middleware wires authorization checks into HTTP handlers.
type Middleware struct {
	Guard   *Guard
	Logger  *slog.Logger
	Denials DenialCounter
}

// RequirePermission denies the request unless the bearer token's role carries
// the permission. The granted identity is stored in the request context for
// downstream handlers.
func (m Middleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return m.wrap(func(r *http.Request) (Decision, error) {
		return m.Guard.Authorize(r.Context(), token.FromRequest(r), permission)
	})
}

// RequireRole denies the request unless the bearer token carries the role
// name. Reserved for admin-only surfaces.
func (m Middleware) RequireRole(roleName string) func(http.Handler) http.Handler {
	return m.wrap(func(r *http.Request) (Decision, error) {
		return m.Guard.AuthorizeRole(r.Context(), token.FromRequest(r), roleName)
	})
}

func (m Middleware) wrap(check func(*http.Request) (Decision, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := check(r)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("authorization check", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			if !decision.Granted {
				if m.Denials != nil {
					m.Denials.CountDenial(string(decision.Reason))
				}
				httpx.RespondError(w, decision.Err())
				return
			}
			ctx := token.ContextWithIdentity(r.Context(), decision.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

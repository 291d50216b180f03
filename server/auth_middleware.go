package server

import (
	"context"
	"fmt"
	"net/http"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/sessions"
	"github.com/jrsteele09/staff-directory/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the identity resolved from the session cookie
const ContextKeyIdentity ContextKey = "identity"

// IdentityFromContext returns the identity placed on the request by RequireAuth or RequireAdmin
func IdentityFromContext(ctx context.Context) (users.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(users.Identity)
	return identity, ok && !identity.IsZero()
}

// RequireAuth rejects requests without a live session with 401.
// The resolved identity is injected into the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireIdentity(func(identity users.Identity, ok bool) error {
		if !ok {
			return fmt.Errorf("[Server RequireAuth] %w", direrrors.ErrUnauthenticated)
		}
		return nil
	})
}

// RequireAdmin rejects anyone who is not a signed-in administrator with 403,
// including callers without a session.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireIdentity(func(identity users.Identity, ok bool) error {
		if !ok || !identity.IsAdmin() {
			return fmt.Errorf("[Server RequireAdmin] %w", direrrors.ErrForbidden)
		}
		return nil
	})
}

func (s *Server) requireIdentity(allow func(identity users.Identity, ok bool) error) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok, err := s.sessionIdentity(r)
			if err == nil {
				err = allow(identity, ok)
			}
			if err != nil {
				writeServiceError(w, r, err, "")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionIdentity resolves the request's session cookie without side effects
func (s *Server) sessionIdentity(r *http.Request) (users.Identity, bool, error) {
	session, err := s.sessionStore.Get(r, SessionCookieName)
	if err != nil {
		return users.Identity{}, false, err
	}
	identity, ok := sessions.IdentityFrom(session)
	return identity, ok, nil
}

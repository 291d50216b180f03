package sessions

import (
	"time"

	"github.com/jrsteele09/staff-directory/users"
)

// Session binds an opaque token to the identity snapshot taken at login.
// The role is not re-read from the user store while the session is live.
type Session struct {
	Token     string
	Identity  users.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has reached its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

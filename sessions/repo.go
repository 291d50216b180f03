package sessions

import (
	"context"
	"time"
)

// Repo defines the interface for session storage operations.
type Repo interface {
	// Upsert creates or replaces the session keyed by its token
	Upsert(ctx context.Context, session *Session) error

	// Get retrieves a session by token, returning errors.ErrSessionNotFound when absent
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token; deleting an absent token is not an error
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions expiring at or before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/users"
	"github.com/rs/zerolog/log"
)

const DefaultTTL = 24 * time.Hour

// Manager issues, resolves and destroys server-side sessions.
// Expiry is absolute: a session lives for the TTL from creation and is never extended.
type Manager struct {
	repo    Repo
	ttl     time.Duration
	nowTime func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(repo Repo, ttl time.Duration, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[sessions NewManager] session repo is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		repo:    repo,
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session for the identity and returns its token.
func (m *Manager) Create(ctx context.Context, identity users.Identity) (string, error) {
	if identity.IsZero() {
		return "", errors.New("[sessions Create] identity is required")
	}

	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("[sessions Create] failed to generate token: %w", err)
	}

	now := m.nowTime().UTC()
	session := &Session{
		Token:     token.String(),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Upsert(ctx, session); err != nil {
		return "", fmt.Errorf("[sessions Create] %w", err)
	}
	return session.Token, nil
}

// Resolve returns the identity bound to the token.
// It returns ErrSessionNotFound for unknown tokens and ErrSessionExpired for sessions past their TTL,
// which are removed from the store as they are found.
func (m *Manager) Resolve(ctx context.Context, token string) (users.Identity, error) {
	if token == "" {
		return users.Identity{}, direrrors.ErrSessionNotFound
	}

	session, err := m.repo.Get(ctx, token)
	if err != nil {
		return users.Identity{}, fmt.Errorf("[sessions Resolve] %w", err)
	}

	if session.Expired(m.nowTime()) {
		if err := m.repo.Delete(ctx, token); err != nil {
			log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return users.Identity{}, direrrors.ErrSessionExpired
	}

	return session.Identity, nil
}

// Destroy removes the session. Destroying an unknown token succeeds.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("[sessions Destroy] %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session and returns how many were removed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.repo.DeleteExpired(ctx, m.nowTime().UTC())
	if err != nil {
		return 0, fmt.Errorf("[sessions PurgeExpired] %w", err)
	}
	return n, nil
}

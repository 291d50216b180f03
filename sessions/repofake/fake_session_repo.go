package fakesessionrepo

import (
	"context"
	"sync"
	"time"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]sessions.Session
	lock     sync.RWMutex

	// Err, when set, is returned by every operation to simulate a failing store
	Err error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]sessions.Session),
	}
}

func (sr *FakeSessionRepo) Upsert(_ context.Context, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Err != nil {
		return sr.Err
	}
	sr.sessions[session.Token] = *session
	return nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, token string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	if sr.Err != nil {
		return nil, sr.Err
	}
	session, ok := sr.sessions[token]
	if !ok {
		return nil, direrrors.ErrSessionNotFound
	}
	return &session, nil
}

func (sr *FakeSessionRepo) Delete(_ context.Context, token string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Err != nil {
		return sr.Err
	}
	delete(sr.sessions, token)
	return nil
}

func (sr *FakeSessionRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Err != nil {
		return 0, sr.Err
	}
	var n int64
	for token, session := range sr.sessions {
		if session.Expired(before) {
			delete(sr.sessions, token)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.sessions)
}

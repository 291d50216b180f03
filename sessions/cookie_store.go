package sessions

import (
	"net/http"

	gsessions "github.com/gorilla/sessions"
	"github.com/gorilla/securecookie"
	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/users"
)

type contextKey int

// identityKey is the gorilla session Values key holding the users.Identity
const identityKey contextKey = 0

var _ gsessions.Store = (*CookieStore)(nil)

// CookieStore is a gorilla sessions.Store whose cookie carries only a signed session token.
// The identity lives in the Manager's repo so that logout invalidates a copied cookie.
type CookieStore struct {
	manager *Manager
	codecs  []securecookie.Codec
	Options *gsessions.Options
}

// NewCookieStore creates a store signing tokens with the given hash/block key pairs.
// The cookie MaxAge defaults to the manager's TTL.
func NewCookieStore(manager *Manager, secure bool, keyPairs ...[]byte) *CookieStore {
	codecs := securecookie.CodecsFromPairs(keyPairs...)
	maxAge := int(manager.TTL().Seconds())
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(maxAge)
		}
	}

	return &CookieStore{
		manager: manager,
		codecs:  codecs,
		Options: &gsessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the session cached for the request, resolving it on first use.
func (s *CookieStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New resolves the request cookie into a session.
// A missing, tampered, unknown or expired token yields a new empty session and no error;
// only a failing session repo is reported.
func (s *CookieStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var token string
	if err := securecookie.DecodeMulti(name, cookie.Value, &token, s.codecs...); err != nil {
		return session, nil
	}

	identity, err := s.manager.Resolve(r.Context(), token)
	if err != nil {
		if direrrors.Is(err, direrrors.ErrSessionNotFound) || direrrors.Is(err, direrrors.ErrSessionExpired) {
			return session, nil
		}
		return session, err
	}

	session.ID = token
	session.Values[identityKey] = identity
	session.IsNew = false
	return session, nil
}

// Save persists a newly authenticated session and writes its cookie.
// A negative MaxAge destroys the session and expires the cookie.
// Saving an existing session does not extend its expiry.
func (s *CookieStore) Save(r *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	if session.Options.MaxAge < 0 {
		if err := s.manager.Destroy(r.Context(), session.ID); err != nil {
			return err
		}
		session.ID = ""
		delete(session.Values, identityKey)
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	identity, ok := IdentityFrom(session)
	if !ok || session.ID != "" {
		return nil
	}

	token, err := s.manager.Create(r.Context(), identity)
	if err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), token, s.codecs...)
	if err != nil {
		if destroyErr := s.manager.Destroy(r.Context(), token); destroyErr != nil {
			return destroyErr
		}
		return err
	}

	session.ID = token
	session.IsNew = false
	http.SetCookie(w, gsessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// IdentityFrom returns the identity bound to the session, if any
func IdentityFrom(session *gsessions.Session) (users.Identity, bool) {
	if session == nil {
		return users.Identity{}, false
	}
	identity, ok := session.Values[identityKey].(users.Identity)
	if !ok || identity.IsZero() {
		return users.Identity{}, false
	}
	return identity, true
}

// SetIdentity binds an identity to a session that has not been persisted yet.
// Any token the session already carried is dropped so Save issues a fresh one.
func SetIdentity(session *gsessions.Session, identity users.Identity) {
	session.ID = ""
	session.Values[identityKey] = identity
}

package sessions_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/sessions"
	"github.com/stretchr/testify/require"
)

const cookieName = "directory_session"

func setupStore(t *testing.T) (*sessions.CookieStore, *sessions.Manager) {
	t.Helper()

	m, _, _ := setupManager(t)
	return sessions.NewCookieStore(m, false, securecookie.GenerateRandomKey(32)), m
}

// login saves an authenticated session and returns the cookie the browser would hold
func login(t *testing.T, store *sessions.CookieStore) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	w := httptest.NewRecorder()

	session, err := store.Get(r, cookieName)
	require.NoError(t, err)
	require.True(t, session.IsNew)

	sessions.SetIdentity(session, testIdentity)
	require.NoError(t, session.Save(r, w))
	require.NotEmpty(t, session.ID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	cookie := login(t, store)

	require.Equal(t, cookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.AddCookie(cookie)

	session, err := store.Get(r, cookieName)
	require.NoError(t, err)
	require.False(t, session.IsNew)

	identity, ok := sessions.IdentityFrom(session)
	require.True(t, ok)
	require.Equal(t, testIdentity, identity)
}

func TestCookieStore_NoCookie(t *testing.T) {
	store, _ := setupStore(t)

	session, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil), cookieName)
	require.NoError(t, err)
	require.True(t, session.IsNew)

	_, ok := sessions.IdentityFrom(session)
	require.False(t, ok)
}

func TestCookieStore_TamperedCookie(t *testing.T) {
	store, _ := setupStore(t)
	cookie := login(t, store)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: cookie.Value + "x"})

	session, err := store.Get(r, cookieName)
	require.NoError(t, err)
	require.True(t, session.IsNew)
}

func TestCookieStore_ForeignKey(t *testing.T) {
	store, _ := setupStore(t)
	cookie := login(t, store)

	other, _ := setupStore(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	session, err := other.Get(r, cookieName)
	require.NoError(t, err)
	require.True(t, session.IsNew)
}

func TestCookieStore_Logout(t *testing.T) {
	store, _ := setupStore(t)
	cookie := login(t, store)

	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()

	session, err := store.Get(r, cookieName)
	require.NoError(t, err)
	session.Options.MaxAge = -1
	require.NoError(t, session.Save(r, w))

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Empty(t, cleared[0].Value)
	require.Negative(t, cleared[0].MaxAge)

	// the old cookie no longer resolves
	r = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.AddCookie(cookie)
	session, err = store.Get(r, cookieName)
	require.NoError(t, err)
	require.True(t, session.IsNew)
}

func TestCookieStore_SaveExistingDoesNotReissue(t *testing.T) {
	store, _ := setupStore(t)
	cookie := login(t, store)

	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()

	session, err := store.Get(r, cookieName)
	require.NoError(t, err)
	require.NoError(t, session.Save(r, w))
	require.Empty(t, w.Result().Cookies())
}

func TestCookieStore_StoreError(t *testing.T) {
	m, repo, _ := setupManager(t)
	store := sessions.NewCookieStore(m, false, securecookie.GenerateRandomKey(32))
	cookie := login(t, store)

	repo.Err = direrrors.ErrStore

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	_, err := store.Get(r, cookieName)
	require.ErrorIs(t, err, direrrors.ErrStore)
}

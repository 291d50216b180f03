package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	fakecontactrepo "github.com/jrsteele09/staff-directory/contacts/repofake"
	"github.com/jrsteele09/staff-directory/internal/config"
	"github.com/jrsteele09/staff-directory/server"
	fakesessionrepo "github.com/jrsteele09/staff-directory/sessions/repofake"
	"github.com/jrsteele09/staff-directory/users"
	fakeuserrepo "github.com/jrsteele09/staff-directory/users/repofake"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const (
	adminUsername  = "admin"
	adminPassword  = "admin123"
	viewerUsername = "viewer"
	viewerPassword = "viewer123"
)

type testEnv struct {
	server   *httptest.Server
	users    *fakeuserrepo.FakeUserRepo
	contacts *fakecontactrepo.FakeContactRepo
	sessions *fakesessionrepo.FakeSessionRepo
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	v := viper.New()
	v.Set("ENV", "TEST")
	v.Set("SESSION_SECRET", "test-session-secret-0123456789abcdef")
	cfg := config.NewFromViper(v)

	env := &testEnv{
		users:    fakeuserrepo.NewFakeUserRepo(),
		contacts: fakecontactrepo.NewFakeContactRepo(),
		sessions: fakesessionrepo.NewFakeSessionRepo(),
	}

	ctx := context.Background()
	s, err := server.New(ctx, cfg, server.Repos{
		Users:    env.users,
		Contacts: env.contacts,
		Sessions: env.sessions,
	})
	require.NoError(t, err)

	userService, err := users.NewService(env.users)
	require.NoError(t, err)
	_, err = userService.EnsureUser(ctx, viewerUsername, viewerPassword, users.RoleViewer)
	require.NoError(t, err)

	env.server = httptest.NewServer(s)
	t.Cleanup(env.server.Close)
	return env
}

// client is a browser-like HTTP client that keeps the session cookie between requests
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (env *testEnv) newClient(t *testing.T) *client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: env.server.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body interface{}) (int, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, data
}

func (c *client) login(username, password string) {
	c.t.Helper()

	status, body := c.do(http.MethodPost, server.RouteAPILogin, map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, status, string(body))
}

func (c *client) sessionCookie() *http.Cookie {
	c.t.Helper()

	u, err := url.Parse(c.base)
	require.NoError(c.t, err)
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == server.SessionCookieName {
			return cookie
		}
	}
	c.t.Fatal("no session cookie")
	return nil
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type identityBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type contactBody struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

func contactNames(list []contactBody) []string {
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	return names
}

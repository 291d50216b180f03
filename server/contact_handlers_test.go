package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/server"
	"github.com/stretchr/testify/require"
)

func contactPath(id int64) string {
	return fmt.Sprintf("%s/%d", server.RouteAPIContacts, id)
}

func (env *testEnv) contactCount(t *testing.T) int64 {
	t.Helper()

	n, err := env.contacts.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestContacts_Unauthenticated(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, server.RouteAPIContacts},
		{http.MethodGet, contactPath(1)},
		{http.MethodGet, server.RouteAPIDepartments},
	} {
		status, body := c.do(req.method, req.path, nil)
		require.Equal(t, http.StatusUnauthorized, status, req.method+" "+req.path)
		require.JSONEq(t, `{"error":"Authentication required"}`, string(body))
	}

	// Writes are admin-only, so a caller without a session is forbidden rather than unauthenticated
	for _, req := range []struct{ method, path string }{
		{http.MethodPost, server.RouteAPIContacts},
		{http.MethodPut, contactPath(1)},
		{http.MethodDelete, contactPath(1)},
	} {
		status, body := c.do(req.method, req.path, contactBody{Name: "Eve", Role: "Intruder", Department: "IT"})
		require.Equal(t, http.StatusForbidden, status, req.method+" "+req.path)
		require.JSONEq(t, `{"error":"Admin privileges required"}`, string(body))
	}
	require.EqualValues(t, 5, env.contactCount(t))

	status, body := c.do(http.MethodGet, contactPath(1), nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"error":"Authentication required"}`, string(body))
}

func TestContacts_SeededDirectory(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(viewerUsername, viewerPassword)

	status, body := c.do(http.MethodGet, server.RouteAPIDepartments, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []string{"Finance", "Human Resources", "IT", "Marketing", "Sales"}, decode[[]string](t, body))

	status, body = c.do(http.MethodGet, server.RouteAPIContacts, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]contactBody](t, body)
	require.Equal(t, []string{"David Wilson", "John Smith", "Lisa Chen", "Mike Davis", "Sarah Johnson"}, contactNames(list))
}

func TestContacts_ListFilters(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, _ := c.do(http.MethodPost, server.RouteAPIContacts, map[string]string{"name": "Aaron Brooks", "role": "Account Executive", "department": "Sales", "status": "busy"})
	require.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodPost, server.RouteAPIContacts, map[string]string{"name": "Anna Sale", "role": "Analyst", "department": "sales"})
	require.Equal(t, http.StatusOK, status)

	list := func(query url.Values) []contactBody {
		status, body := c.do(http.MethodGet, server.RouteAPIContacts+"?"+query.Encode(), nil)
		require.Equal(t, http.StatusOK, status)
		return decode[[]contactBody](t, body)
	}

	t.Run("department exact match ordered by name", func(t *testing.T) {
		got := list(url.Values{"department": {"Sales"}})
		require.Equal(t, []string{"Aaron Brooks", "Mike Davis"}, contactNames(got))
		for _, contact := range got {
			require.Equal(t, "Sales", contact.Department)
		}
	})

	t.Run("search name or role", func(t *testing.T) {
		require.Equal(t, []string{"Anna Sale", "Mike Davis"}, contactNames(list(url.Values{"search": {"sale"}})))
		require.Equal(t, []string{"Lisa Chen"}, contactNames(list(url.Values{"search": {"marketing"}})))
	})

	t.Run("status", func(t *testing.T) {
		require.Equal(t, []string{"Aaron Brooks", "Sarah Johnson"}, contactNames(list(url.Values{"status": {"busy"}})))
	})

	t.Run("combined", func(t *testing.T) {
		require.Equal(t, []string{"Mike Davis"}, contactNames(list(url.Values{"department": {"Sales"}, "status": {"available"}})))
	})

	t.Run("no match", func(t *testing.T) {
		status, body := c.do(http.MethodGet, server.RouteAPIContacts+"?search=nobody", nil)
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `[]`, string(body))
	})
}

func TestContacts_GetContact(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(viewerUsername, viewerPassword)

	status, body := c.do(http.MethodGet, contactPath(1), nil)
	require.Equal(t, http.StatusOK, status)
	contact := decode[contactBody](t, body)
	require.Equal(t, "John Smith", contact.Name)
	require.Equal(t, "555-0101", *contact.Phone)
	require.Contains(t, string(body), `"created_at"`)

	for _, path := range []string{contactPath(999), server.RouteAPIContacts + "/abc"} {
		status, body = c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `{"error":"Contact not found"}`, string(body))
	}
}

func TestContacts_Create(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, body := c.do(http.MethodPost, server.RouteAPIContacts, map[string]interface{}{
		"name":       "Nora Patel",
		"role":       "Engineer",
		"department": "IT",
		"email":      "nora.patel@company.com",
	})
	require.Equal(t, http.StatusOK, status)
	created := decode[struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}](t, body)
	require.NotZero(t, created.ID)
	require.Equal(t, "Contact created successfully", created.Message)

	status, body = c.do(http.MethodGet, contactPath(created.ID), nil)
	require.Equal(t, http.StatusOK, status)
	contact := decode[contactBody](t, body)
	require.Equal(t, "available", contact.Status)
	require.Nil(t, contact.Phone)
	require.Equal(t, "nora.patel@company.com", *contact.Email)
}

func TestContacts_CreateEmptyNameRejected(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, body := c.do(http.MethodPost, server.RouteAPIContacts, map[string]string{"name": "", "role": "Engineer", "department": "IT"})
	require.Equal(t, http.StatusBadRequest, status)
	require.JSONEq(t, `{"error":"Name, role, and department are required"}`, string(body))

	_, body = c.do(http.MethodGet, server.RouteAPIContacts+"?department=IT", nil)
	require.Equal(t, []string{"John Smith"}, contactNames(decode[[]contactBody](t, body)))
	require.EqualValues(t, 5, env.contactCount(t))
}

func TestContacts_CreateInvalidBody(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+server.RouteAPIContacts, strings.NewReader(`{"name":`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContacts_CreateFormEncoded(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	resp, err := c.http.PostForm(env.server.URL+server.RouteAPIContacts, url.Values{
		"name":       {"Omar Reyes"},
		"role":       {"Recruiter"},
		"department": {"Human Resources"},
		"phone":      {"555-0199"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 6, env.contactCount(t))
}

func TestContacts_ViewerCannotMutate(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(viewerUsername, viewerPassword)

	status, body := c.do(http.MethodPost, server.RouteAPIContacts, map[string]string{"name": "Eve", "role": "Intruder", "department": "IT"})
	require.Equal(t, http.StatusForbidden, status)
	require.JSONEq(t, `{"error":"Admin privileges required"}`, string(body))

	status, _ = c.do(http.MethodPut, contactPath(1), map[string]string{"name": "Eve", "role": "Intruder", "department": "IT"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodDelete, contactPath(1), nil)
	require.Equal(t, http.StatusForbidden, status)

	require.EqualValues(t, 5, env.contactCount(t))
	_, body = c.do(http.MethodGet, contactPath(1), nil)
	require.Equal(t, "John Smith", decode[contactBody](t, body).Name)
}

func TestContacts_Update(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, body := c.do(http.MethodPut, contactPath(1), map[string]string{"name": "John Smith", "role": "Director", "department": "IT", "status": "busy"})
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"Contact updated successfully"}`, string(body))

	_, body = c.do(http.MethodGet, contactPath(1), nil)
	contact := decode[contactBody](t, body)
	require.Equal(t, "Director", contact.Role)
	require.Equal(t, "busy", contact.Status)
	require.Nil(t, contact.Phone)
	require.Nil(t, contact.Email)
	require.Nil(t, contact.Notes)

	status, _ = c.do(http.MethodPut, contactPath(1), map[string]string{"name": "John Smith"})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestContacts_UpdateMissing(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, body := c.do(http.MethodPut, contactPath(999), map[string]string{"name": "Ghost", "role": "None", "department": "Nowhere"})
	require.Equal(t, http.StatusNotFound, status)
	require.JSONEq(t, `{"error":"Contact not found"}`, string(body))
	require.EqualValues(t, 5, env.contactCount(t))
}

func TestContacts_DeleteThenGet(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	status, body := c.do(http.MethodDelete, contactPath(2), nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"Contact deleted successfully"}`, string(body))

	status, _ = c.do(http.MethodGet, contactPath(2), nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = c.do(http.MethodDelete, contactPath(2), nil)
	require.Equal(t, http.StatusNotFound, status)

	_, body = c.do(http.MethodGet, server.RouteAPIDepartments, nil)
	require.Equal(t, []string{"Finance", "IT", "Marketing", "Sales"}, decode[[]string](t, body))
}

func TestContacts_StoreError(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(viewerUsername, viewerPassword)

	env.contacts.Err = fmt.Errorf("%w: disk I/O error", direrrors.ErrStore)

	for _, path := range []string{server.RouteAPIContacts, server.RouteAPIDepartments} {
		status, body := c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusInternalServerError, status)
		require.JSONEq(t, `{"error":"Internal server error"}`, string(body))
	}
}

func TestContacts_SessionStoreError(t *testing.T) {
	env := setupServer(t)
	c := env.newClient(t)
	c.login(adminUsername, adminPassword)

	env.sessions.Err = fmt.Errorf("%w: connection refused", direrrors.ErrStore)

	status, body := c.do(http.MethodGet, server.RouteAPIContacts, nil)
	require.Equal(t, http.StatusInternalServerError, status)
	require.JSONEq(t, `{"error":"Internal server error"}`, string(body))

	status, body = c.do(http.MethodDelete, contactPath(1), nil)
	require.Equal(t, http.StatusInternalServerError, status)
	require.JSONEq(t, `{"error":"Internal server error"}`, string(body))

	env.sessions.Err = nil
	require.EqualValues(t, 5, env.contactCount(t))
}

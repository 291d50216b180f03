package server

import (
	"net/http"
	"net/url"
	"strings"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/sessions"
	"github.com/jrsteele09/staff-directory/users"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string         `json:"message"`
	User    users.Identity `json:"user"`
}

type userResponse struct {
	User users.Identity `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// LoginHandler verifies credentials and establishes a session.
// Unknown usernames and wrong passwords produce the same response.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		err := decodeRequest(w, r, &req, func(form url.Values) {
			req.Username = form.Get("username")
			req.Password = form.Get("password")
		})
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			writeJSONError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		identity, err := s.users.Verify(r.Context(), req.Username, req.Password)
		if err != nil {
			if direrrors.Is(err, direrrors.ErrUserNotFound) || direrrors.Is(err, direrrors.ErrPasswordMismatch) {
				log.Info().Str("username", req.Username).Msg("login rejected")
				err = direrrors.ErrInvalidCredentials
			}
			writeServiceError(w, r, err, "")
			return
		}

		session, err := s.sessionStore.Get(r, SessionCookieName)
		if err != nil {
			log.Err(err).Msg("failed to read session")
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		// A fresh token is issued on every login; any previous session is ended
		if !session.IsNew {
			if err := s.sessionManager.Destroy(r.Context(), session.ID); err != nil {
				log.Err(err).Msg("failed to destroy previous session")
				writeJSONError(w, http.StatusInternalServerError, msgInternalError)
				return
			}
		}

		sessions.SetIdentity(session, identity)
		if err := session.Save(r, w); err != nil {
			log.Err(err).Msg("failed to save session")
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		log.Info().Str("username", identity.Username).Str("role", string(identity.Role)).Msg("login succeeded")
		writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", User: identity})
	}
}

// LogoutHandler destroys the current session, if any, and clears the cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessionStore.Get(r, SessionCookieName)
		if err != nil {
			log.Err(err).Msg("failed to read session")
			writeJSONError(w, http.StatusInternalServerError, "Could not log out")
			return
		}

		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			log.Err(err).Msg("failed to destroy session")
			writeJSONError(w, http.StatusInternalServerError, "Could not log out")
			return
		}
		writeMessage(w, "Logout successful")
	}
}

// CurrentUserHandler returns the identity bound to the session, or 401 without one.
func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok, err := s.sessionIdentity(r)
		if err != nil {
			writeServiceError(w, r, err, "")
			return
		}
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		writeJSON(w, http.StatusOK, userResponse{User: identity})
	}
}

// ChangePasswordHandler replaces the signed-in administrator's password after re-checking the current one.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePasswordRequest
		err := decodeRequest(w, r, &req, func(form url.Values) {
			req.CurrentPassword = form.Get("currentPassword")
			req.NewPassword = form.Get("newPassword")
		})
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		identity, _ := IdentityFromContext(r.Context())
		err = s.users.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			if direrrors.Is(err, direrrors.ErrPasswordMismatch) {
				writeJSONError(w, http.StatusUnauthorized, "Current password is incorrect")
				return
			}
			writeServiceError(w, r, err, "User not found")
			return
		}

		log.Info().Str("username", identity.Username).Msg("password changed")
		writeMessage(w, "Password changed successfully")
	}
}

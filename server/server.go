package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/jrsteele09/staff-directory/contacts"
	"github.com/jrsteele09/staff-directory/internal/config"
	"github.com/jrsteele09/staff-directory/sessions"
	"github.com/jrsteele09/staff-directory/users"
	"github.com/rs/zerolog/log"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "directory_session"

// Repos are the persistence dependencies of the server
type Repos struct {
	Users    users.UserRepo
	Contacts contacts.Repo
	Sessions sessions.Repo
}

type Server struct {
	env            string // Environment (e.g., "DEV", "PROD")
	mux            *http.ServeMux
	routes         []string
	config         config.Config
	users          *users.Service
	contacts       *contacts.Service
	sessionManager *sessions.Manager
	sessionStore   *sessions.CookieStore
}

func New(ctx context.Context, config config.Config, repos Repos) (*Server, error) {
	userService, err := users.NewService(repos.Users)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create user service: %w", err)
	}

	contactService, err := contacts.NewService(repos.Contacts)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create contact service: %w", err)
	}

	sessionManager, err := sessions.NewManager(repos.Sessions, config.GetSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session manager: %w", err)
	}

	s := &Server{
		env:            config.GetEnv(),
		mux:            http.NewServeMux(),
		config:         config,
		users:          userService,
		contacts:       contactService,
		sessionManager: sessionManager,
		sessionStore:   sessions.NewCookieStore(sessionManager, config.GetSessionCookieSecure(), sessionKey(config)),
	}

	// Bootstrap: ensure the administrator and sample directory exist
	if err := s.InitialiseSystem(ctx); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	log.Debug().Msgf("[%s] %s", methodColor(method)+paddedMethod+ResetColor, path)
}

// sessionKey returns the cookie signing key. Without a configured secret a random
// key is generated, so sessions do not survive a restart.
func sessionKey(config config.Config) []byte {
	if secret := config.GetSessionSecret(); secret != "" {
		return []byte(secret)
	}
	log.Warn().Msg("SESSION_SECRET is not set, using a random key for this process")
	return securecookie.GenerateRandomKey(32)
}

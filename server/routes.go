package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	// Pages
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteContacts, ChainMiddleware(s.ContactsPageHandler(), s.HTMLMiddleWare(s.RequireAuth())...))

	// Auth API
	s.RegisterRouteHandler("POST "+RouteAPILogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPILogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIUser, ChainMiddleware(s.CurrentUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIChangePassword, ChainMiddleware(s.ChangePasswordHandler(), s.APIMiddleware(s.RequireAdmin())...))

	// Directory API (reads need a session, writes need an administrator)
	s.RegisterRouteHandler("GET "+RouteAPIContacts, ChainMiddleware(s.ListContactsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteAPIContact, ChainMiddleware(s.GetContactHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIContacts, ChainMiddleware(s.CreateContactHandler(), s.APIMiddleware(s.RequireAdmin())...))
	s.RegisterRouteHandler("PUT "+RouteAPIContact, ChainMiddleware(s.UpdateContactHandler(), s.APIMiddleware(s.RequireAdmin())...))
	s.RegisterRouteHandler("DELETE "+RouteAPIContact, ChainMiddleware(s.DeleteContactHandler(), s.APIMiddleware(s.RequireAdmin())...))
	s.RegisterRouteHandler("GET "+RouteAPIDepartments, ChainMiddleware(s.DepartmentsHandler(), s.APIMiddleware(s.RequireAuth())...))

	// CORS preflight for the API
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamAsset(w, filePath); err != nil {
			log.Warn().Err(err).Str("path", filePath).Msg("static file not served")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

// PreflightHandler answers OPTIONS requests; the CORS middleware sets the headers.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	indexPage = "index.html"
	loginPage = "login.html"
)

type pageData struct {
	AppName string
}

// IndexPageHandler serves the directory to signed-in users and the login page to everyone else.
func (s *Server) IndexPageHandler() http.HandlerFunc {
	index := mustParseTemplate(indexPage)
	login := mustParseTemplate(loginPage)

	return func(w http.ResponseWriter, r *http.Request) {
		page := login
		_, ok, err := s.sessionIdentity(r)
		if err != nil {
			log.Err(err).Msg("failed to resolve session, serving login page")
		} else if ok {
			page = index
		}
		s.renderPage(w, page)
	}
}

// ContactsPageHandler serves the directory page. Chained after RequireAuth.
func (s *Server) ContactsPageHandler() http.HandlerFunc {
	index := mustParseTemplate(indexPage)

	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, index)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, tmpl *template.Template) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := tmpl.Execute(w, pageData{AppName: s.config.GetAppName()}); err != nil {
		log.Err(err).Str("page", tmpl.Name()).Msg("failed to render page")
	}
}

func mustParseTemplate(name string) *template.Template {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		panic("Failed to parse " + name + " template: " + err.Error())
	}
	return tmpl
}

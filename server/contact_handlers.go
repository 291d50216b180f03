package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/staff-directory/contacts"
)

type createContactResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ListContactsHandler returns contacts ordered by name, filtered by the search, department and status query parameters.
func (s *Server) ListContactsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := s.contacts.List(r.Context(), contacts.Filter{
			Search:     q.Get("search"),
			Department: q.Get("department"),
			Status:     q.Get("status"),
		})
		if err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contactID(r)
		if !ok {
			writeJSONError(w, http.StatusNotFound, msgContactNotFound)
			return
		}

		c, err := s.contacts.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func (s *Server) CreateContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, ok := decodeContactFields(w, r)
		if !ok {
			return
		}

		id, err := s.contacts.Create(r.Context(), fields)
		if err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeJSON(w, http.StatusOK, createContactResponse{ID: id, Message: "Contact created successfully"})
	}
}

// UpdateContactHandler replaces every mutable field; fields absent from the body are cleared.
func (s *Server) UpdateContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contactID(r)
		if !ok {
			writeJSONError(w, http.StatusNotFound, msgContactNotFound)
			return
		}

		fields, ok := decodeContactFields(w, r)
		if !ok {
			return
		}

		if err := s.contacts.Update(r.Context(), id, fields); err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeMessage(w, "Contact updated successfully")
	}
}

func (s *Server) DeleteContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contactID(r)
		if !ok {
			writeJSONError(w, http.StatusNotFound, msgContactNotFound)
			return
		}

		if err := s.contacts.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeMessage(w, "Contact deleted successfully")
	}
}

func (s *Server) DepartmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := s.contacts.Departments(r.Context())
		if err != nil {
			writeServiceError(w, r, err, msgContactNotFound)
			return
		}
		writeJSON(w, http.StatusOK, departments)
	}
}

// contactID parses the {id} path value; a malformed id cannot match any contact
func contactID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeContactFields(w http.ResponseWriter, r *http.Request) (contacts.Fields, bool) {
	var fields contacts.Fields
	err := decodeRequest(w, r, &fields, func(form url.Values) {
		fields = contacts.Fields{
			Name:       form.Get("name"),
			Role:       form.Get("role"),
			Department: form.Get("department"),
			Phone:      formString(form, "phone"),
			Email:      formString(form, "email"),
			Status:     form.Get("status"),
			Notes:      formString(form, "notes"),
		}
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidBody)
		return contacts.Fields{}, false
	}
	return fields, true
}

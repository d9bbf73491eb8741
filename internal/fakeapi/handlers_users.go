package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/go-chi/chi/v5"
)

const defaultLimit = 100

func validateIdentity(email, username string) []validationIssue {
	var issues []validationIssue
	if !strings.Contains(email, "@") {
		issues = append(issues, issue("body", "email", "value is not a valid email address", "value_error.email"))
	}
	if len(username) < 3 {
		issues = append(issues, issue("body", "username", "ensure this value has at least 3 characters", "value_error.any_str.min_length"))
	}
	return issues
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrUsernameTaken):
		writeDetail(w, http.StatusBadRequest, "Username already taken")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	skip, iss := queryInt(r, "skip", 0)
	if iss != nil {
		writeValidation(w, []validationIssue{*iss})
		return
	}
	limit, iss := queryInt(r, "limit", defaultLimit)
	if iss != nil {
		writeValidation(w, []validationIssue{*iss})
		return
	}

	writeJSON(w, http.StatusOK, s.store.ListUsers(UserFilter{
		Skip:   skip,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var p models.CreateUserPayload
	if !decodeBody(w, r, &p) {
		return
	}
	issues := validateIdentity(p.Email, p.Username)
	if p.Password == "" {
		issues = append(issues, issue("body", "password", "field required", "value_error.missing"))
	}
	if len(issues) > 0 {
		writeValidation(w, issues)
		return
	}

	u, err := s.store.CreateUser(p, false)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var p models.UpdateUserPayload
	if !decodeBody(w, r, &p) {
		return
	}
	if issues := validateIdentity(p.Email, p.Username); len(issues) > 0 {
		writeValidation(w, issues)
		return
	}

	u, err := s.store.UpdateUser(chi.URLParam(r, "id"), p)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

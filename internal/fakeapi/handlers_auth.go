package fakeapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/fakeapi/auth"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeDetail(w, http.StatusBadRequest, "There was an error parsing the body")
		return
	}

	username, password := r.FormValue("username"), r.FormValue("password")
	var issues []validationIssue
	if username == "" {
		issues = append(issues, issue("body", "username", "field required", "value_error.missing"))
	}
	if password == "" {
		issues = append(issues, issue("body", "password", "field required", "value_error.missing"))
	}
	if len(issues) > 0 {
		writeValidation(w, issues)
		return
	}

	u, ok := s.store.Authenticate(username, password)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if !u.IsActive {
		writeDetail(w, http.StatusBadRequest, "Inactive user")
		return
	}

	token, err := auth.GenerateToken(u.ID, u.IsAdmin, s.secret, s.ttl)
	if err != nil {
		s.logger.Error(r.Context(), "issue token", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      u.ID,
		Username:    u.Username,
		IsAdmin:     models.Bool(u.IsAdmin),
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r.Context()))
}

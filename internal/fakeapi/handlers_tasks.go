package fakeapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) writeTaskError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

func validateEnums(status models.TaskStatus, priority models.TaskPriority, where string) []validationIssue {
	var issues []validationIssue
	if _, err := models.ParseTaskStatus(string(status)); err != nil {
		issues = append(issues, issue(where, "status", "value is not a valid enumeration member", "type_error.enum"))
	}
	if _, err := models.ParseTaskPriority(string(priority)); err != nil {
		issues = append(issues, issue(where, "priority", "value is not a valid enumeration member", "type_error.enum"))
	}
	return issues
}

func (s *Server) taskFilter(w http.ResponseWriter, r *http.Request) (TaskFilter, bool) {
	q := r.URL.Query()
	f := TaskFilter{
		Status:     models.TaskStatus(q.Get("status")),
		Priority:   models.TaskPriority(q.Get("priority")),
		AssigneeID: q.Get("assignee_id"),
		Search:     q.Get("search"),
	}

	issues := validateEnums(f.Status, f.Priority, "query")
	var iss *validationIssue
	if f.Skip, iss = queryInt(r, "skip", 0); iss != nil {
		issues = append(issues, *iss)
	}
	if f.Limit, iss = queryInt(r, "limit", defaultLimit); iss != nil {
		issues = append(issues, *iss)
	}
	if len(issues) > 0 {
		writeValidation(w, issues)
		return TaskFilter{}, false
	}
	return f, true
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	f, ok := s.taskFilter(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.ListTasks(f))
}

// myTasks lists tasks assigned to or created by the caller.
func (s *Server) myTasks(w http.ResponseWriter, r *http.Request) {
	f, ok := s.taskFilter(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.ListTasks(TaskFilter{
		Skip:           f.Skip,
		Limit:          f.Limit,
		Status:         f.Status,
		InvolvedUserID: currentUser(r.Context()).ID,
	}))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var p models.CreateTaskPayload
	if !decodeBody(w, r, &p) {
		return
	}

	issues := validateEnums(p.Status, p.Priority, "body")
	if p.Status == "" {
		issues = append(issues, issue("body", "status", "field required", "value_error.missing"))
	}
	if p.Priority == "" {
		issues = append(issues, issue("body", "priority", "field required", "value_error.missing"))
	}
	if p.Title == "" {
		issues = append(issues, issue("body", "title", "field required", "value_error.missing"))
	}
	if _, err := models.ParseTime(p.DueDate); err != nil {
		issues = append(issues, issue("body", "due_date", "invalid datetime format", "value_error.datetime"))
	}
	if len(issues) > 0 {
		writeValidation(w, issues)
		return
	}

	t, err := s.store.CreateTask(p, currentUser(r.Context()).ID)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusBadRequest, "Assignee not found")
		return
	}
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// canEdit allows admins, the creator and the assignee.
func canEdit(u models.User, t models.Task) bool {
	return u.IsAdmin || t.CreatedBy == u.ID || (t.AssigneeID != nil && *t.AssigneeID == u.ID)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := s.store.Task(id)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	if !canEdit(currentUser(r.Context()), t) {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	var p models.UpdateTaskPayload
	if !decodeBody(w, r, &p) {
		return
	}
	issues := validateEnums(p.Status, p.Priority, "body")
	if p.Title == "" {
		issues = append(issues, issue("body", "title", "field required", "value_error.missing"))
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := models.ParseTime(*p.DueDate); err != nil {
			issues = append(issues, issue("body", "due_date", "invalid datetime format", "value_error.datetime"))
		}
	}
	if len(issues) > 0 {
		writeValidation(w, issues)
		return
	}

	updated, err := s.store.UpdateTask(id, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeDetail(w, http.StatusBadRequest, "Assignee not found")
			return
		}
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := s.store.Task(id)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	u := currentUser(r.Context())
	if !u.IsAdmin && t.CreatedBy != u.ID {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	if err := s.store.DeleteTask(id); err != nil {
		s.writeTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

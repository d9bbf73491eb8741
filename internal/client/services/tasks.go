package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

const (
	pathTasks   = "/api/v1/tasks/"
	pathMyTasks = "/api/v1/tasks/my/tasks"
)

type TasksService struct {
	http    *client.HTTPClient
	session Session
	now     func() time.Time
}

func NewTasksService(hc *client.HTTPClient, s Session) *TasksService {
	return &TasksService{http: hc, session: s, now: time.Now}
}

// ListUsers returns every user, for assignee pickers.
func (t *TasksService) ListUsers(ctx context.Context) ([]models.User, error) {
	return fetch[[]models.User](ctx, t.http, t.session, http.MethodGet, pathUsers, nil)
}

func (t *TasksService) List(ctx context.Context, p models.ListTasksParams) ([]models.Task, error) {
	return fetch[[]models.Task](ctx, t.http, t.session, http.MethodGet, withQuery(pathTasks, p.Values()), nil)
}

// MyTasks lists the tasks assigned to or created by the caller.
func (t *TasksService) MyTasks(ctx context.Context, p models.MyTasksParams) ([]models.Task, error) {
	return fetch[[]models.Task](ctx, t.http, t.session, http.MethodGet, withQuery(pathMyTasks, p.Values()), nil)
}

// Create submits a new task. A form without a due date is sent with the
// current time.
func (t *TasksService) Create(ctx context.Context, f models.CreateTaskForm) (models.Task, error) {
	return fetch[models.Task](ctx, t.http, t.session, http.MethodPost, pathTasks, f.Payload(t.now()))
}

func (t *TasksService) Update(ctx context.Context, id string, p models.UpdateTaskPayload) (models.Task, error) {
	return fetch[models.Task](ctx, t.http, t.session, http.MethodPut, taskPath(id), p)
}

// Delete removes a task. An empty reply body is a success.
func (t *TasksService) Delete(ctx context.Context, id string) error {
	resp, err := call[json.RawMessage](ctx, t.http, t.session, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return err
	}
	return resp.Err()
}

func taskPath(id string) string {
	return "/api/v1/tasks/" + url.PathEscape(id)
}

package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

var errDisk = errors.New("disk I/O error")

type fakeAdmin struct {
	admin bool
	err   error
}

func (f fakeAdmin) IsAdmin(context.Context) (bool, error) { return f.admin, f.err }

type fakeUsersAPI struct {
	users []models.User

	createErr error
	updateErr error
	listErr   error

	listCalls  []models.ListUsersParams
	created    []models.CreateUserPayload
	updatedIDs []string
}

func (f *fakeUsersAPI) Create(_ context.Context, p models.CreateUserPayload) (models.User, error) {
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	f.created = append(f.created, p)
	u := models.User{ID: "new-" + p.Username, Username: p.Username, Email: p.Email, FullName: p.FullName, IsActive: p.IsActive}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsersAPI) List(_ context.Context, p models.ListUsersParams) ([]models.User, error) {
	f.listCalls = append(f.listCalls, p)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUsersAPI) Update(_ context.Context, id string, p models.UpdateUserPayload) (models.User, error) {
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	f.updatedIDs = append(f.updatedIDs, id)
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].IsAdmin = p.IsAdmin
			f.users[i].FullName = p.FullName
			return f.users[i], nil
		}
	}
	return models.User{}, &client.APIError{Status: http.StatusNotFound, Message: "User not found"}
}

type fakeIdentity struct {
	user models.User
	err  error
}

func (f fakeIdentity) CurrentUser(context.Context) (models.User, error) { return f.user, f.err }

type fakeTasksAPI struct {
	tasks []models.Task
	users []models.User

	listErr   error
	usersErr  error
	createErr error
	updateErr error
	deleteErr error

	listCalls []models.ListTasksParams
	myCalls   []models.MyTasksParams
	created   []models.CreateTaskForm
	deleted   []string
}

func (f *fakeTasksAPI) ListUsers(context.Context) ([]models.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeTasksAPI) List(_ context.Context, p models.ListTasksParams) ([]models.Task, error) {
	f.listCalls = append(f.listCalls, p)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeTasksAPI) MyTasks(_ context.Context, p models.MyTasksParams) ([]models.Task, error) {
	f.myCalls = append(f.myCalls, p)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tasks[:1], nil
}

func (f *fakeTasksAPI) Create(_ context.Context, form models.CreateTaskForm) (models.Task, error) {
	if f.createErr != nil {
		return models.Task{}, f.createErr
	}
	f.created = append(f.created, form)
	t := models.Task{ID: "t-new", Title: form.Title, Status: form.Status, Priority: form.Priority}
	f.tasks = append([]models.Task{t}, f.tasks...)
	return t, nil
}

func (f *fakeTasksAPI) Update(_ context.Context, id string, p models.UpdateTaskPayload) (models.Task, error) {
	if f.updateErr != nil {
		return models.Task{}, f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = p.Title
			f.tasks[i].Status = p.Status
			return f.tasks[i], nil
		}
	}
	return models.Task{}, &client.APIError{Status: http.StatusNotFound, Message: "Task not found"}
}

func (f *fakeTasksAPI) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

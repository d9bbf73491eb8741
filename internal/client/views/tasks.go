package views

import (
	"context"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

const (
	MsgTaskCreated = "Task created successfully!"
	MsgTaskUpdated = "Task updated successfully!"
	MsgTaskDeleted = "Task deleted successfully!"

	Unassigned = "Unassigned"
)

type TasksAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	List(ctx context.Context, p models.ListTasksParams) ([]models.Task, error)
	MyTasks(ctx context.Context, p models.MyTasksParams) ([]models.Task, error)
	Create(ctx context.Context, f models.CreateTaskForm) (models.Task, error)
	Update(ctx context.Context, id string, p models.UpdateTaskPayload) (models.Task, error)
	Delete(ctx context.Context, id string) error
}

type Tab string

const (
	TabAll  Tab = "all"
	TabMine Tab = "my"
)

// TaskFilter narrows the "all" tab. Only Status applies to "my".
type TaskFilter struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	Search   string
}

type TasksView struct {
	api TasksAPI

	Tasks []models.Task
	Users []models.User

	Tab     Tab
	Filter  TaskFilter
	Page    int
	PerPage int

	CreateOpen bool
	CreateForm models.CreateTaskForm
	UpdateOpen bool
	UpdateForm *models.Task
	ViewOpen   bool
	Selected   *models.Task

	Banner Banner
}

func NewTasksView(api TasksAPI, perPage int) *TasksView {
	if perPage <= 0 {
		perPage = 10
	}
	return &TasksView{
		api:        api,
		Tab:        TabAll,
		PerPage:    perPage,
		CreateForm: models.NewCreateTaskForm(),
	}
}

// Refresh reloads the tasks of the active tab with the current filters.
// The user list used for assignee names is refreshed as well; when it
// cannot be loaded the previous one is kept.
func (v *TasksView) Refresh(ctx context.Context) error {
	v.Banner.Error = ""

	var (
		tasks []models.Task
		err   error
	)
	skip, limit := models.Int(v.Page*v.PerPage), models.Int(v.PerPage)
	if v.Tab == TabMine {
		tasks, err = v.api.MyTasks(ctx, models.MyTasksParams{Skip: skip, Limit: limit, Status: v.Filter.Status})
	} else {
		tasks, err = v.api.List(ctx, models.ListTasksParams{
			Skip:     skip,
			Limit:    limit,
			Status:   v.Filter.Status,
			Priority: v.Filter.Priority,
			Search:   v.Filter.Search,
		})
	}
	if err != nil {
		return v.Banner.report(err)
	}
	v.Tasks = tasks

	if users, err := v.api.ListUsers(ctx); err == nil {
		v.Users = users
	} else if !remote(err) {
		return err
	}
	return nil
}

func (v *TasksView) SetTab(ctx context.Context, tab Tab) error {
	v.Tab = tab
	v.Page = 0
	return v.Refresh(ctx)
}

func (v *TasksView) SetFilter(ctx context.Context, f TaskFilter) error {
	v.Filter = f
	v.Page = 0
	return v.Refresh(ctx)
}

func (v *TasksView) HasNextPage() bool {
	return len(v.Tasks) >= v.PerPage
}

func (v *TasksView) NextPage(ctx context.Context) error {
	if !v.HasNextPage() {
		return nil
	}
	v.Page++
	return v.Refresh(ctx)
}

func (v *TasksView) PrevPage(ctx context.Context) error {
	if v.Page == 0 {
		return nil
	}
	v.Page--
	return v.Refresh(ctx)
}

func (v *TasksView) OpenCreate() {
	v.CreateForm = models.NewCreateTaskForm()
	v.CreateOpen = true
}

func (v *TasksView) OpenUpdate(t models.Task) {
	v.UpdateForm = &t
	v.UpdateOpen = true
}

func (v *TasksView) OpenView(t models.Task) {
	v.Selected = &t
	v.ViewOpen = true
}

func (v *TasksView) CloseDialogs() {
	v.CreateOpen = false
	v.UpdateOpen = false
	v.ViewOpen = false
	v.UpdateForm = nil
	v.Selected = nil
}

func (v *TasksView) Create(ctx context.Context) error {
	v.Banner.Clear()
	if _, err := v.api.Create(ctx, v.CreateForm); err != nil {
		return v.Banner.absorb(err)
	}

	v.Banner.succeed(MsgTaskCreated)
	v.CreateForm = models.NewCreateTaskForm()
	v.CreateOpen = false
	return v.Refresh(ctx)
}

func (v *TasksView) Update(ctx context.Context) error {
	v.Banner.Clear()
	if v.UpdateForm == nil {
		return nil
	}
	if _, err := v.api.Update(ctx, v.UpdateForm.ID, v.UpdateForm.UpdatePayload()); err != nil {
		return v.Banner.absorb(err)
	}

	v.Banner.succeed(MsgTaskUpdated)
	v.UpdateOpen = false
	v.UpdateForm = nil
	return v.Refresh(ctx)
}

func (v *TasksView) Delete(ctx context.Context, id string) error {
	v.Banner.Clear()
	if err := v.api.Delete(ctx, id); err != nil {
		return v.Banner.absorb(err)
	}

	v.Banner.succeed(MsgTaskDeleted)
	if v.Selected != nil && v.Selected.ID == id {
		v.ViewOpen = false
		v.Selected = nil
	}
	if v.UpdateForm != nil && v.UpdateForm.ID == id {
		v.UpdateOpen = false
		v.UpdateForm = nil
	}
	return v.Refresh(ctx)
}

// Find returns the loaded task with the given id.
func (v *TasksView) Find(id string) (models.Task, bool) {
	for _, t := range v.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// AssigneeName resolves the display name of t's assignee from the embedded
// record, then from the loaded users, then falls back to the raw id.
func (v *TasksView) AssigneeName(t models.Task) string {
	if t.Assignee != nil {
		return t.Assignee.DisplayName()
	}
	if t.AssigneeID == nil || *t.AssigneeID == "" {
		return Unassigned
	}
	return v.UserName(*t.AssigneeID)
}

// UserName resolves a user id against the loaded users.
func (v *TasksView) UserName(id string) string {
	for _, u := range v.Users {
		if u.ID == id {
			return u.DisplayName()
		}
	}
	return id
}

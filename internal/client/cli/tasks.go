package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/client/views"
)

func statusOptions() []string {
	out := make([]string, len(models.TaskStatuses))
	for i, s := range models.TaskStatuses {
		out[i] = string(s)
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, len(models.TaskPriorities))
	for i, p := range models.TaskPriorities {
		out[i] = string(p)
	}
	return out
}

func (a *App) Tasks(ctx context.Context) error {
	return a.showTasks(a.tasks.SetTab(ctx, views.TabAll))
}

func (a *App) MyTasks(ctx context.Context) error {
	return a.showTasks(a.tasks.SetTab(ctx, views.TabMine))
}

// FilterTasks asks for status, priority and search text. Empty answers
// remove the corresponding filter.
func (a *App) FilterTasks(ctx context.Context) error {
	var f views.TaskFilter

	status, err := GetChoice(a.reader, "Status, empty for any", statusOptions(), "", a.out)
	if err != nil {
		return err
	}
	f.Status = models.TaskStatus(status)

	if a.tasks.Tab == views.TabAll {
		priority, err := GetChoice(a.reader, "Priority, empty for any", priorityOptions(), "", a.out)
		if err != nil {
			return err
		}
		f.Priority = models.TaskPriority(priority)

		if f.Search, err = getSimpleText(a.reader, "Search text, empty for none", a.out); err != nil {
			return err
		}
	}

	return a.showTasks(a.tasks.SetFilter(ctx, f))
}

func (a *App) showTasks(err error) error {
	if err != nil {
		return err
	}
	a.active = listTasks
	if a.tasks.Banner.Error != "" {
		fmt.Fprintln(a.out, "Error:", a.tasks.Banner.Error)
		return nil
	}
	renderTasks(a.out, a.tasks)
	return nil
}

// AddTask fills the create form interactively. Without a due date the
// task is due now.
func (a *App) AddTask(ctx context.Context) error {
	a.tasks.OpenCreate()
	defer a.tasks.CloseDialogs()
	f := &a.tasks.CreateForm

	var err error
	if f.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if f.Title == "" {
		fmt.Fprintln(a.out, "Title is required")
		return nil
	}
	if f.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}

	status, err := GetChoice(a.reader, "Status", statusOptions(), string(f.Status), a.out)
	if err != nil {
		return err
	}
	f.Status = models.TaskStatus(status)

	priority, err := GetChoice(a.reader, "Priority", priorityOptions(), string(f.Priority), a.out)
	if err != nil {
		return err
	}
	f.Priority = models.TaskPriority(priority)

	a.printAssignees()
	if f.AssigneeID, err = getSimpleText(a.reader, "Assignee id, empty for none", a.out); err != nil {
		return err
	}
	if f.DueDate, err = GetDate(a.reader, "Due date, empty for today", nil, a.out); err != nil {
		return err
	}

	if err := a.tasks.Create(ctx); err != nil {
		return err
	}
	return a.afterTaskMutation()
}

// EditTask edits a task from the loaded list. Empty answers keep the
// current values and "-" clears an optional one.
func (a *App) EditTask(ctx context.Context, id string) error {
	t, ok, err := a.findTask(ctx, id)
	if err != nil || !ok {
		return err
	}

	a.tasks.OpenUpdate(t)
	defer a.tasks.CloseDialogs()
	f := a.tasks.UpdateForm

	if f.Title, err = GetOptional(a.reader, "Title", f.Title, a.out); err != nil {
		return err
	}
	if f.Description, err = GetOptional(a.reader, "Description", f.Description, a.out); err != nil {
		return err
	}

	status, err := GetChoice(a.reader, "Status", statusOptions(), string(f.Status), a.out)
	if err != nil {
		return err
	}
	f.Status = models.TaskStatus(status)

	priority, err := GetChoice(a.reader, "Priority", priorityOptions(), string(f.Priority), a.out)
	if err != nil {
		return err
	}
	f.Priority = models.TaskPriority(priority)

	a.printAssignees()
	assignee, err := GetOptional(a.reader, "Assignee id", optionalID(f.AssigneeID), a.out)
	if err != nil {
		return err
	}
	f.AssigneeID = nil
	if assignee != "" {
		f.AssigneeID = &assignee
	}

	var current *time.Time
	if f.DueDate != nil && !f.DueDate.IsZero() {
		d := f.DueDate.Time
		current = &d
	}
	due, err := GetDate(a.reader, "Due date", current, a.out)
	if err != nil {
		return err
	}
	f.DueDate = nil
	if due != nil {
		ts := models.NewTimestamp(*due)
		f.DueDate = &ts
	}

	if err := a.tasks.Update(ctx); err != nil {
		return err
	}
	return a.afterTaskMutation()
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	t, ok, err := a.findTask(ctx, id)
	if err != nil || !ok {
		return err
	}

	confirmed, err := GetYesNo(a.reader, fmt.Sprintf("Delete task %q?", t.Title), false, a.out)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	return a.afterTaskMutation()
}

func (a *App) ShowTask(ctx context.Context, id string) error {
	t, ok, err := a.findTask(ctx, id)
	if err != nil || !ok {
		return err
	}

	a.tasks.OpenView(t)
	defer a.tasks.CloseDialogs()
	renderTask(a.out, a.tasks, *a.tasks.Selected)
	return nil
}

// findTask looks id up in the loaded list, reloading it once if needed.
func (a *App) findTask(ctx context.Context, id string) (models.Task, bool, error) {
	if t, ok := a.tasks.Find(id); ok {
		return t, true, nil
	}
	if err := a.tasks.Refresh(ctx); err != nil {
		return models.Task{}, false, err
	}
	if a.tasks.Banner.Error != "" {
		fmt.Fprintln(a.out, "Error:", a.tasks.Banner.Error)
		return models.Task{}, false, nil
	}
	if t, ok := a.tasks.Find(id); ok {
		return t, true, nil
	}
	fmt.Fprintf(a.out, "Task %s is not in the current list\n", id)
	return models.Task{}, false, nil
}

func (a *App) afterTaskMutation() error {
	a.printBanner(a.tasks.Banner)
	if a.tasks.Banner.Success != "" {
		a.active = listTasks
		if a.tasks.Banner.Error == "" {
			renderTasks(a.out, a.tasks)
		}
	}
	return nil
}

func (a *App) printAssignees() {
	if len(a.tasks.Users) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Users:")
	tw := newTable(a.out)
	for _, u := range a.tasks.Users {
		fmt.Fprintf(tw, "  %s\t%s\n", u.ID, u.DisplayName())
	}
	tw.Flush()
}

func optionalID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func (a *App) Next(ctx context.Context) error {
	switch a.active {
	case listUsers:
		if !a.users.HasNextPage() {
			fmt.Fprintln(a.out, "Already on the last page")
			return nil
		}
		return a.showUsers(a.users.NextPage(ctx))
	case listTasks:
		if !a.tasks.HasNextPage() {
			fmt.Fprintln(a.out, "Already on the last page")
			return nil
		}
		return a.showTasks(a.tasks.NextPage(ctx))
	}
	fmt.Fprintln(a.out, "Nothing to page through; list users or tasks first")
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	switch a.active {
	case listUsers:
		if a.users.Page == 0 {
			fmt.Fprintln(a.out, "Already on the first page")
			return nil
		}
		return a.showUsers(a.users.PrevPage(ctx))
	case listTasks:
		if a.tasks.Page == 0 {
			fmt.Fprintln(a.out, "Already on the first page")
			return nil
		}
		return a.showTasks(a.tasks.PrevPage(ctx))
	}
	fmt.Fprintln(a.out, "Nothing to page through; list users or tasks first")
	return nil
}

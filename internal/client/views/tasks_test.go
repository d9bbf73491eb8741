package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func seededTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Complete User Authentication", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, AssigneeID: strptr("user1")},
		{ID: "2", Title: "Design Task Management UI", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium, AssigneeID: strptr("user2")},
		{ID: "3", Title: "Setup Database Schema", Status: models.TaskStatusPending, Priority: models.TaskPriorityUrgent},
	}
}

func newTasksAPI() *fakeTasksAPI {
	return &fakeTasksAPI{
		tasks: seededTasks(),
		users: []models.User{{ID: "user1", FullName: "John Doe"}, {ID: "user2", Username: "jsmith"}},
	}
}

func TestTasksView_RefreshAllWithFilters(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)

	require.NoError(t, v.SetFilter(ctx, TaskFilter{Status: models.TaskStatusPending, Search: "schema"}))

	require.Len(t, api.listCalls, 1)
	call := api.listCalls[0]
	assert.Equal(t, models.TaskStatusPending, call.Status)
	assert.Equal(t, "schema", call.Search)
	assert.Equal(t, 0, *call.Skip)
	assert.Len(t, v.Tasks, 3)
	assert.Len(t, v.Users, 2)
}

func TestTasksView_MyTab(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	v.Filter = TaskFilter{Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh}

	require.NoError(t, v.SetTab(ctx, TabMine))

	assert.Empty(t, api.listCalls)
	require.Len(t, api.myCalls, 1)
	assert.Equal(t, models.TaskStatusInProgress, api.myCalls[0].Status)
	assert.Len(t, v.Tasks, 1)
}

func TestTasksView_UsersLoadIsBestEffort(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	require.NoError(t, v.Refresh(ctx))

	api.usersErr = &client.APIError{Status: http.StatusForbidden, Message: "Not enough permissions"}
	require.NoError(t, v.Refresh(ctx))
	assert.Empty(t, v.Banner.Error)
	assert.Len(t, v.Users, 2)

	api.usersErr = errDisk
	assert.ErrorIs(t, v.Refresh(ctx), errDisk)
}

func TestTasksView_CreateRefetches(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)

	v.OpenCreate()
	v.CreateForm.Title = "Write release notes"
	require.NoError(t, v.Create(ctx))

	assert.Equal(t, MsgTaskCreated, v.Banner.Success)
	assert.False(t, v.CreateOpen)
	assert.Equal(t, models.NewCreateTaskForm(), v.CreateForm)
	require.Len(t, v.Tasks, 4)
	assert.Equal(t, "Write release notes", v.Tasks[0].Title)
	require.Len(t, api.created, 1)
	assert.Nil(t, api.created[0].DueDate)
}

func TestTasksView_CreateFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	require.NoError(t, v.Refresh(ctx))

	api.createErr = &client.APIError{Status: http.StatusUnprocessableEntity, Message: "field required"}
	v.OpenCreate()
	require.NoError(t, v.Create(ctx))

	assert.Equal(t, "field required", v.Banner.Error)
	assert.True(t, v.CreateOpen)
	assert.Len(t, v.Tasks, 3)
	assert.Len(t, api.listCalls, 1)
}

func TestTasksView_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	require.NoError(t, v.Refresh(ctx))

	task, ok := v.Find("3")
	require.True(t, ok)
	v.OpenUpdate(task)
	v.UpdateForm.Status = models.TaskStatusCompleted
	v.UpdateForm.Title = "Setup DB"
	require.NoError(t, v.Update(ctx))
	assert.Equal(t, MsgTaskUpdated, v.Banner.Success)
	updated, _ := v.Find("3")
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)

	v.OpenView(updated)
	require.NoError(t, v.Delete(ctx, "3"))
	assert.Equal(t, MsgTaskDeleted, v.Banner.Success)
	assert.False(t, v.ViewOpen)
	assert.Nil(t, v.Selected)
	_, ok = v.Find("3")
	assert.False(t, ok)

	api.deleteErr = &client.APIError{Status: http.StatusNotFound, Message: "Task not found"}
	require.NoError(t, v.Delete(ctx, "99"))
	assert.Equal(t, "Task not found", v.Banner.Error)
	assert.Empty(t, v.Banner.Success)
}

func TestTasksView_MutationKeepsSuccessWhenReloadFails(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	require.NoError(t, v.Refresh(ctx))

	api.listErr = &client.APIError{Status: http.StatusServiceUnavailable, Message: "upstream down"}
	v.OpenCreate()
	v.CreateForm.Title = "Write release notes"
	require.NoError(t, v.Create(ctx))
	assert.Equal(t, MsgTaskCreated, v.Banner.Success)
	assert.Equal(t, "upstream down", v.Banner.Error)
	assert.Len(t, v.Tasks, 3)

	require.NoError(t, v.Delete(ctx, "1"))
	assert.Equal(t, MsgTaskDeleted, v.Banner.Success)
	assert.Equal(t, "upstream down", v.Banner.Error)

	api.listErr = errDisk
	assert.ErrorIs(t, v.Delete(ctx, "2"), errDisk)
	assert.Equal(t, MsgTaskDeleted, v.Banner.Success)
}

func TestTasksView_DeleteClosesEditDialog(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 10)
	require.NoError(t, v.Refresh(ctx))

	edited, _ := v.Find("2")
	v.OpenUpdate(edited)
	require.NoError(t, v.Delete(ctx, "1"))
	assert.True(t, v.UpdateOpen, "editing another task is left alone")
	require.NotNil(t, v.UpdateForm)
	assert.Equal(t, "2", v.UpdateForm.ID)

	require.NoError(t, v.Delete(ctx, "2"))
	assert.False(t, v.UpdateOpen)
	assert.Nil(t, v.UpdateForm)

	require.NoError(t, v.Update(ctx), "update after delete is a no-op")
	assert.Empty(t, v.Banner.Error)
}

func TestTasksView_AssigneeName(t *testing.T) {
	v := NewTasksView(newTasksAPI(), 10)
	require.NoError(t, v.Refresh(context.Background()))

	assert.Equal(t, "John Doe", v.AssigneeName(v.Tasks[0]))
	assert.Equal(t, "jsmith", v.AssigneeName(v.Tasks[1]))
	assert.Equal(t, Unassigned, v.AssigneeName(v.Tasks[2]))
	assert.Equal(t, "ghost", v.AssigneeName(models.Task{AssigneeID: strptr("ghost")}))
	assert.Equal(t, "Embedded", v.AssigneeName(models.Task{Assignee: &models.User{FullName: "Embedded"}}))
}

func TestTasksView_Paging(t *testing.T) {
	ctx := context.Background()
	api := newTasksAPI()
	v := NewTasksView(api, 3)
	require.NoError(t, v.Refresh(ctx))

	require.NoError(t, v.NextPage(ctx))
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 3, *api.listCalls[1].Skip)

	require.NoError(t, v.PrevPage(ctx))
	require.NoError(t, v.PrevPage(ctx))
	assert.Equal(t, 0, v.Page)
}

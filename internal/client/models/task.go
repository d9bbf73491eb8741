package models

import (
	"fmt"
	"net/url"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

// ParseTaskStatus validates s. The empty string is accepted and means "any".
func ParseTaskStatus(s string) (TaskStatus, error) {
	if s == "" {
		return "", nil
	}
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// ParseTaskPriority validates s. The empty string is accepted and means "any".
func ParseTaskPriority(s string) (TaskPriority, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range TaskPriorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown task priority %q", s)
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  *string      `json:"assignee_id"`
	DueDate     *Timestamp   `json:"due_date"`
	CreatedBy   string       `json:"created_by"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   Timestamp    `json:"updated_at"`
	Assignee    *User        `json:"assignee,omitempty"`
}

// UpdatePayload returns the editable fields of t.
func (t Task) UpdatePayload() UpdateTaskPayload {
	p := UpdateTaskPayload{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
	}
	if t.DueDate != nil && !t.DueDate.IsZero() {
		s := FormatISO(t.DueDate.Time)
		p.DueDate = &s
	}
	return p
}

// CreateTaskForm is what the user fills in. DueDate is optional here but
// never on the wire.
type CreateTaskForm struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  string
	DueDate     *time.Time
}

// NewCreateTaskForm returns a form with the default status and priority.
func NewCreateTaskForm() CreateTaskForm {
	return CreateTaskForm{Status: TaskStatusPending, Priority: TaskPriorityMedium}
}

type CreateTaskPayload struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  string       `json:"assignee_id"`
	DueDate     string       `json:"due_date"`
}

// Payload builds the wire payload. A missing due date becomes now.
func (f CreateTaskForm) Payload(now time.Time) CreateTaskPayload {
	due := now
	if f.DueDate != nil {
		due = *f.DueDate
	}
	return CreateTaskPayload{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
		AssigneeID:  f.AssigneeID,
		DueDate:     FormatISO(due),
	}
}

type UpdateTaskPayload struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  *string      `json:"assignee_id"`
	DueDate     *string      `json:"due_date"`
}

type ListTasksParams struct {
	Skip       *int
	Limit      *int
	Status     TaskStatus
	Priority   TaskPriority
	AssigneeID string
	Search     string
}

func (p ListTasksParams) Values() url.Values {
	v := url.Values{}
	setInt(v, "skip", p.Skip)
	setInt(v, "limit", p.Limit)
	setString(v, "status", string(p.Status))
	setString(v, "priority", string(p.Priority))
	setString(v, "assignee_id", p.AssigneeID)
	setString(v, "search", p.Search)
	return v
}

type MyTasksParams struct {
	Skip   *int
	Limit  *int
	Status TaskStatus
}

func (p MyTasksParams) Values() url.Values {
	v := url.Values{}
	setInt(v, "skip", p.Skip)
	setInt(v, "limit", p.Limit)
	setString(v, "status", string(p.Status))
	return v
}

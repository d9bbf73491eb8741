package fakeapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

// Demo credentials of the seeded accounts.
const (
	SeedAdminPassword = "admin"
	SeedUserPassword  = "password"
)

type seedUser struct {
	id, username, fullName string
	admin                  bool
	created                string
}

var seedUsers = []seedUser{
	{"admin", "admin", "Administrator", true, "2024-12-01T09:00:00Z"},
	{"user1", "jdoe", "John Doe", false, "2024-12-02T09:00:00Z"},
	{"user2", "jsmith", "Jane Smith", false, "2024-12-03T09:00:00Z"},
	{"user3", "bwilson", "Bob Wilson", false, "2024-12-04T09:00:00Z"},
}

type seedTask struct {
	id, title, description string
	status                 models.TaskStatus
	priority               models.TaskPriority
	assignee, createdBy    string
	due, created, updated  string
}

var seedTasks = []seedTask{
	{
		"1", "Complete User Authentication", "Implement login and registration functionality with JWT tokens",
		models.TaskStatusInProgress, models.TaskPriorityHigh, "user1", "admin",
		"2025-01-15T00:00:00Z", "2025-01-01T10:00:00Z", "2025-01-02T14:30:00Z",
	},
	{
		"2", "Design Task Management UI", "Create wireframes and mockups for the task management interface",
		models.TaskStatusCompleted, models.TaskPriorityMedium, "user2", "admin",
		"2025-01-10T00:00:00Z", "2024-12-28T09:00:00Z", "2025-01-05T16:45:00Z",
	},
	{
		"3", "Setup Database Schema", "Design and implement the database schema for users and tasks",
		models.TaskStatusPending, models.TaskPriorityUrgent, "user3", "user1",
		"2025-01-20T00:00:00Z", "2025-01-03T11:15:00Z", "2025-01-03T11:15:00Z",
	},
}

func mustTime(s string) models.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("seed time %q: %v", s, err))
	}
	return models.NewTimestamp(t)
}

// Seed loads the demo accounts and tasks. It is meant for an empty store.
func (s *Store) Seed() error {
	for _, su := range seedUsers {
		pw := SeedUserPassword
		if su.admin {
			pw = SeedAdminPassword
		}
		_, err := s.createUser(su.id, models.CreateUserPayload{
			Email:    su.username + "@example.com",
			Username: su.username,
			FullName: su.fullName,
			IsActive: true,
			Password: pw,
		}, su.admin)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, su := range seedUsers {
		created := mustTime(su.created)
		s.users[su.id].CreatedAt = created
		s.users[su.id].UpdatedAt = created
	}
	for _, st := range seedTasks {
		assignee := st.assignee
		due := mustTime(st.due)
		s.tasks[st.id] = &models.Task{
			ID:          st.id,
			Title:       st.title,
			Description: st.description,
			Status:      st.status,
			Priority:    st.priority,
			AssigneeID:  &assignee,
			DueDate:     &due,
			CreatedBy:   st.createdBy,
			IsActive:    true,
			CreatedAt:   mustTime(st.created),
			UpdatedAt:   mustTime(st.updated),
		}
	}
	return nil
}

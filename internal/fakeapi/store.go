package fakeapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/rs/xid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type userRecord struct {
	models.User
	PasswordHash []byte
}

// Store is the backend's in-memory state. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userRecord
	tasks map[string]*models.Task
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*userRecord),
		tasks: make(map[string]*models.Task),
		now:   time.Now,
	}
}

func newID() string {
	return xid.New().String()
}

func hashPassword(pw string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
}

// Authenticate returns the user whose username or email matches login and
// whose password is pw.
func (s *Store) Authenticate(login, pw string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username != login && !strings.EqualFold(u.Email, login) {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pw)) != nil {
			return models.User{}, false
		}
		return u.User, true
	}
	return models.User{}, false
}

func (s *Store) User(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u.User, nil
}

// uniqueLocked checks email and username against every user but exceptID.
func (s *Store) uniqueLocked(exceptID, email, username string) error {
	for id, u := range s.users {
		if id == exceptID {
			continue
		}
		if strings.EqualFold(u.Email, email) {
			return ErrEmailTaken
		}
		if u.Username == username {
			return ErrUsernameTaken
		}
	}
	return nil
}

func (s *Store) CreateUser(p models.CreateUserPayload, isAdmin bool) (models.User, error) {
	return s.createUser(newID(), p, isAdmin)
}

func (s *Store) createUser(id string, p models.CreateUserPayload, isAdmin bool) (models.User, error) {
	hash, err := hashPassword(p.Password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.uniqueLocked("", p.Email, p.Username); err != nil {
		return models.User{}, err
	}

	now := models.NewTimestamp(s.now())
	rec := &userRecord{
		User: models.User{
			ID:        id,
			Username:  p.Username,
			Email:     p.Email,
			FullName:  p.FullName,
			IsActive:  p.IsActive,
			IsAdmin:   isAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}
	s.users[id] = rec
	return rec.User, nil
}

func (s *Store) UpdateUser(id string, p models.UpdateUserPayload) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if err := s.uniqueLocked(id, p.Email, p.Username); err != nil {
		return models.User{}, err
	}

	rec.Email = p.Email
	rec.Username = p.Username
	rec.FullName = p.FullName
	rec.IsActive = p.IsActive
	rec.IsAdmin = p.IsAdmin
	rec.UpdatedAt = models.NewTimestamp(s.now())
	return rec.User, nil
}

type UserFilter struct {
	Skip   int
	Limit  int
	Search string
}

// ListUsers returns users ordered by creation time, then id.
func (s *Store) ListUsers(f UserFilter) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(f.Search)
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if q != "" && !containsAny(q, u.Username, u.Email, u.FullName) {
			continue
		}
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Skip, f.Limit)
}

type TaskFilter struct {
	Skip       int
	Limit      int
	Status     models.TaskStatus
	Priority   models.TaskPriority
	AssigneeID string
	Search     string
	// InvolvedUserID keeps only tasks assigned to or created by this user.
	InvolvedUserID string
}

func (s *Store) CreateTask(p models.CreateTaskPayload, createdBy string) (models.Task, error) {
	due, err := models.ParseTime(p.DueDate)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var assignee *string
	if p.AssigneeID != "" {
		if _, ok := s.users[p.AssigneeID]; !ok {
			return models.Task{}, ErrNotFound
		}
		a := p.AssigneeID
		assignee = &a
	}

	now := models.NewTimestamp(s.now())
	dueTS := models.NewTimestamp(due)
	t := &models.Task{
		ID:          newID(),
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		AssigneeID:  assignee,
		DueDate:     &dueTS,
		CreatedBy:   createdBy,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	return s.withAssigneeLocked(*t), nil
}

func (s *Store) Task(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return s.withAssigneeLocked(*t), nil
}

func (s *Store) UpdateTask(id string, p models.UpdateTaskPayload) (models.Task, error) {
	var due *models.Timestamp
	if p.DueDate != nil && *p.DueDate != "" {
		parsed, err := models.ParseTime(*p.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		ts := models.NewTimestamp(parsed)
		due = &ts
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	var assignee *string
	if p.AssigneeID != nil && *p.AssigneeID != "" {
		if _, ok := s.users[*p.AssigneeID]; !ok {
			return models.Task{}, ErrNotFound
		}
		a := *p.AssigneeID
		assignee = &a
	}

	t.Title = p.Title
	t.Description = p.Description
	t.Status = p.Status
	t.Priority = p.Priority
	t.AssigneeID = assignee
	t.DueDate = due
	t.UpdatedAt = models.NewTimestamp(s.now())
	return s.withAssigneeLocked(*t), nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// ListTasks returns matching tasks, newest first.
func (s *Store) ListTasks(f TaskFilter) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(f.Search)
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch {
		case f.Status != "" && t.Status != f.Status:
			continue
		case f.Priority != "" && t.Priority != f.Priority:
			continue
		case f.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != f.AssigneeID):
			continue
		case f.InvolvedUserID != "" && t.CreatedBy != f.InvolvedUserID &&
			(t.AssigneeID == nil || *t.AssigneeID != f.InvolvedUserID):
			continue
		case q != "" && !containsAny(q, t.Title, t.Description):
			continue
		}
		out = append(out, s.withAssigneeLocked(*t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.After(out[j].CreatedAt.Time)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Skip, f.Limit)
}

func (s *Store) withAssigneeLocked(t models.Task) models.Task {
	t.Assignee = nil
	if t.AssigneeID != nil {
		if u, ok := s.users[*t.AssigneeID]; ok {
			a := u.User
			t.Assignee = &a
		}
	}
	return t
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

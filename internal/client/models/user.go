package models

import (
	"net/url"
	"strconv"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile is the cached identity of the signed-in user. The login endpoint
// only returns id, username and the admin flag, so every other field may be
// absent. Absent means unknown, never false.
type Profile struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	FullName  *string    `json:"full_name,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
	IsAdmin   *bool      `json:"is_admin,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// Admin reports whether the admin flag is known and true.
func (p Profile) Admin() bool {
	return p.IsAdmin != nil && *p.IsAdmin
}

// User is a user record as returned by the users endpoints.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Profile converts a complete user record into a fully populated Profile.
func (u User) Profile() Profile {
	created, updated := u.CreatedAt, u.UpdatedAt
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     &u.Email,
		FullName:  &u.FullName,
		IsActive:  &u.IsActive,
		IsAdmin:   &u.IsAdmin,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type CreateUserPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	Password string `json:"password"`
}

type UpdateUserPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdatePayload returns the editable fields of u.
func (u User) UpdatePayload() UpdateUserPayload {
	return UpdateUserPayload{
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		IsActive: u.IsActive,
		IsAdmin:  u.IsAdmin,
	}
}

// ListUsersParams are the optional paging and search parameters of the
// users listing. Nil pointers and an empty search are left out of the query.
type ListUsersParams struct {
	Skip   *int
	Limit  *int
	Search string
}

func (p ListUsersParams) Values() url.Values {
	v := url.Values{}
	setInt(v, "skip", p.Skip)
	setInt(v, "limit", p.Limit)
	setString(v, "search", p.Search)
	return v
}

// Int returns a pointer to n, for the optional paging fields.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

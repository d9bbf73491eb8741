package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

const pathUsers = "/api/v1/users/"

// UsersService manages user accounts. The backend restricts it to admins.
type UsersService struct {
	http    *client.HTTPClient
	session Session
}

func NewUsersService(hc *client.HTTPClient, s Session) *UsersService {
	return &UsersService{http: hc, session: s}
}

func (u *UsersService) Create(ctx context.Context, p models.CreateUserPayload) (models.User, error) {
	return fetch[models.User](ctx, u.http, u.session, http.MethodPost, pathUsers, p)
}

func (u *UsersService) List(ctx context.Context, p models.ListUsersParams) ([]models.User, error) {
	return fetch[[]models.User](ctx, u.http, u.session, http.MethodGet, withQuery(pathUsers, p.Values()), nil)
}

func (u *UsersService) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.User, error) {
	return fetch[models.User](ctx, u.http, u.session, http.MethodPut, "/api/v1/users/"+url.PathEscape(id), p)
}

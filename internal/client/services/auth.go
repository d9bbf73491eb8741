package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/logging"
)

const (
	pathLogin = "/api/v1/auth/login"
	pathMe    = "/api/v1/users/me"
)

// SessionStore is the persistent session the auth service writes to.
type SessionStore interface {
	Session
	SaveLogin(ctx context.Context, token string, p models.Profile) error
	SetProfile(ctx context.Context, p models.Profile) error
	Clear(ctx context.Context) error
}

type AuthService struct {
	http   *client.HTTPClient
	store  SessionStore
	logger logging.Logger
}

func NewAuthService(hc *client.HTTPClient, store SessionStore, logger logging.Logger) *AuthService {
	return &AuthService{http: hc, store: store, logger: logger}
}

// Login exchanges credentials for a token. On success the token and the
// partial profile from the reply are stored, then the full profile is
// fetched. A failed profile fetch does not fail the login.
func (a *AuthService) Login(ctx context.Context, creds models.LoginCredentials) (*models.LoginResponse, error) {
	form := client.NewForm().
		Add("username", creds.Username).
		Add("password", creds.Password)

	resp := client.Do[models.LoginResponse](ctx, a.http, pathLogin, client.RequestOptions{
		Method: http.MethodPost,
		Form:   form,
	})
	lr, err := resp.Unwrap()
	if err != nil {
		return nil, err
	}
	if lr.AccessToken == "" {
		return nil, client.ErrMissingData
	}

	if err := a.store.SaveLogin(ctx, lr.AccessToken, lr.Profile()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if _, err := a.CurrentUser(ctx); err != nil {
		a.logger.Warn(ctx, "failed to fetch complete user data", "error", err)
	}
	return &lr, nil
}

// Logout forgets the local session. The backend is not contacted.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// CurrentUser fetches the signed-in identity and replaces the cached
// profile with it. On failure the cache is left as it was.
func (a *AuthService) CurrentUser(ctx context.Context) (models.User, error) {
	u, err := fetch[models.User](ctx, a.http, a.store, http.MethodGet, pathMe, nil)
	if err != nil {
		a.logger.Debug(ctx, "identity fetch failed", "error", err)
		return models.User{}, err
	}

	a.logger.Debug(ctx, "identity fetched", "user_id", u.ID, "is_admin", u.IsAdmin)
	if err := a.store.SetProfile(ctx, u.Profile()); err != nil {
		return models.User{}, fmt.Errorf("cache profile: %w", err)
	}
	return u, nil
}

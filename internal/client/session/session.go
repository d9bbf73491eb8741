// Package session keeps the signed-in user's bearer token and cached
// profile in the local metadata store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskadmin/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyToken   = "access_token"
	KeyProfile = "user_data"
)

// ErrNoExpiry is returned by TokenExpiry when the token is not a JWT or
// carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// Store is the only writer of the session keys. A profile is stored only
// alongside a token obtained from login, or after a successful identity
// fetch.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Token returns the stored token, or "" when signed out.
func (s *Store) Token(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyToken, []byte(token))
}

// Profile returns the cached profile, or nil when none is cached.
func (s *Store) Profile(ctx context.Context) (*models.Profile, error) {
	return readProfile(ctx, s.repo)
}

func (s *Store) SetProfile(ctx context.Context, p models.Profile) error {
	return writeProfile(ctx, s.repo, p)
}

// SaveLogin stores the token and the profile together.
func (s *Store) SaveLogin(ctx context.Context, token string, p models.Profile) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return writeProfile(ctx, repo, p)
	})
}

// Clear removes the token and the profile together.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyProfile)
	})
}

// IsAuthenticated reports whether a token is stored. The token itself is
// not checked: a revoked or expired token still counts until a request
// fails.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// IsAdmin reports whether the cached profile carries is_admin == true.
func (s *Store) IsAdmin(ctx context.Context) (bool, error) {
	p, err := s.Profile(ctx)
	if err != nil || p == nil {
		return false, err
	}
	return p.Admin(), nil
}

// AuthHeader returns an Authorization header for the stored token, or nil
// when there is no token.
func (s *Store) AuthHeader(ctx context.Context) (http.Header, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

// TokenExpiry reads the exp claim of the stored token without verifying
// the signature. It is informational only.
func (s *Store) TokenExpiry(ctx context.Context) (time.Time, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, ErrNoExpiry
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

func readProfile(ctx context.Context, repo metadata.Repository) (*models.Profile, error) {
	b, err := repo.Get(ctx, KeyProfile)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var p models.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

func writeProfile(ctx context.Context, repo metadata.Repository, p models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return repo.Set(ctx, KeyProfile, b)
}

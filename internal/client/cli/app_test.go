package cli

import (
	"bytes"
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/config"
	"github.com/dmitrijs2005/taskadmin/internal/client/session"
	"github.com/dmitrijs2005/taskadmin/internal/client/storage"
	"github.com/dmitrijs2005/taskadmin/internal/client/views"
	"github.com/dmitrijs2005/taskadmin/internal/fakeapi"
	"github.com/dmitrijs2005/taskadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg *config.Config
	db  *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	capturePrint(t)
	stubTerminal(t, false, nil, nil)

	store := fakeapi.NewStore()
	require.NoError(t, store.Seed())
	srv := httptest.NewServer(fakeapi.NewServer(store, []byte("cli-test"), time.Hour, logging.Discard()).Handler())
	t.Cleanup(srv.Close)

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "taskadmin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackendURL = srv.URL

	return &testEnv{cfg: cfg, db: db}
}

// run executes a scripted session and returns everything the app printed.
func (e *testEnv) run(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp(e.cfg, e.db, logging.Discard(), strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestApp_AdminSession(t *testing.T) {
	env := newTestEnv(t)

	out := env.run(t,
		"login", "admin", fakeapi.SeedAdminPassword,
		"whoami",
		"users",
		"useradd", "ann@example.com", "ann", "Ann Lee", "pw", "",
		"useradd", "ann@example.com", "ann2", "Ann Again", "pw", "",
		"tasks",
		"taskadd", "Write docs", "Document the API", "", "high", "", "2030-01-01",
		"taskshow 1",
		"taskdel 2", "y",
		"export",
		"exit",
	)

	assert.Contains(t, out, "Logged in as admin")
	assert.Contains(t, out, "admin@example.com")
	assert.Contains(t, out, "Token expires:")
	assert.Contains(t, out, "jsmith@example.com")
	assert.Contains(t, out, views.MsgUserCreated)
	assert.Contains(t, out, "Error: Email already registered")
	assert.Contains(t, out, "Complete User Authentication")
	assert.Contains(t, out, views.MsgTaskCreated)
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "John Doe")
	assert.Contains(t, out, views.MsgTaskDeleted)
	assert.Contains(t, out, "Export is not configured")

	authed, err := session.NewStore(env.db).IsAuthenticated(context.Background())
	require.NoError(t, err)
	assert.True(t, authed)

	out = env.run(t, "whoami", "logout", "tasks", "exit")
	assert.Contains(t, out, "Resumed session as admin")
	assert.Contains(t, out, "Logged out")
	assert.NotContains(t, out, "Write docs")

	authed, err = session.NewStore(env.db).IsAuthenticated(context.Background())
	require.NoError(t, err)
	assert.False(t, authed)
}

func TestApp_RegularUser(t *testing.T) {
	env := newTestEnv(t)

	out := env.run(t,
		"login", "jdoe", fakeapi.SeedUserPassword,
		"users",
		"useradd",
		"mytasks",
		"taskedit 3", "", "", "in_progress", "", "", "",
		"taskdel 1", "y",
		"exit",
	)

	assert.Contains(t, out, "Logged in as jdoe")
	assert.Contains(t, out, msgAdminRequired)
	assert.Contains(t, out, views.MsgAdminOnly)
	assert.Contains(t, out, "Setup Database Schema")
	assert.Contains(t, out, views.MsgTaskUpdated)
	assert.Contains(t, out, "in_progress")
	assert.Contains(t, out, "Error: Not enough permissions")
}

func TestApp_LoginFailure(t *testing.T) {
	env := newTestEnv(t)

	out := env.run(t, "login", "admin", "wrong", "tasks", "exit")

	assert.Contains(t, out, "Error: Incorrect username or password")
	assert.NotContains(t, out, "Logged in as")
}

func TestApp_Paging(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.PageSize = 2

	out := env.run(t,
		"login", "admin", fakeapi.SeedAdminPassword,
		"prev",
		"users",
		"next",
		"next",
		"next",
		"prev",
		"exit",
	)

	assert.Contains(t, out, "Nothing to page through")
	assert.Contains(t, out, "Page 1")
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "Already on the last page")
}

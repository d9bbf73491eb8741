package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
	"github.com/dmitrijs2005/taskadmin/internal/client/config"
	"github.com/dmitrijs2005/taskadmin/internal/client/export"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/client/services"
	"github.com/dmitrijs2005/taskadmin/internal/client/session"
	"github.com/dmitrijs2005/taskadmin/internal/client/views"
	"github.com/dmitrijs2005/taskadmin/internal/logging"
)

// listKind is the list that next/prev page through.
type listKind int

const (
	listNone listKind = iota
	listUsers
	listTasks
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Store
	auth     *services.AuthService
	users    *views.UsersView
	tasks    *views.TasksView
	exporter *export.Exporter

	profile *models.Profile
	active  listKind

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the client stack on top of an opened and migrated database.
func NewApp(c *config.Config, db *sql.DB, logger logging.Logger) *App {
	return newApp(c, db, logger, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	store := session.NewStore(db)
	hc := client.NewHTTPClient(c.BackendURL, client.WithLogger(logger))

	as := services.NewAuthService(hc, store, logger)
	us := services.NewUsersService(hc, store)
	ts := services.NewTasksService(hc, store)

	return &App{
		config:   c,
		logger:   logger,
		session:  store,
		auth:     as,
		users:    views.NewUsersView(us, as, store, c.PageSize),
		tasks:    views.NewTasksView(ts, c.PageSize),
		exporter: export.New(c.Export),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run resumes a saved session if there is one and runs the REPL until EOF
// or exit.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to taskadmin (type 'help' for commands)")

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	runREPL(ctx, a, a.status, a.reader, a.report)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	ok, err := a.session.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil
	}

	p, err := a.session.Profile(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if p == nil {
		p = &models.Profile{}
	}
	a.profile = p
	fmt.Fprintf(a.out, "Resumed session as %s\n", a.displayName())
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.profile != nil
}

func (a *App) isAdmin() bool {
	return a.profile != nil && a.profile.Admin()
}

func (a *App) displayName() string {
	if a.profile == nil || a.profile.Username == "" {
		return "unknown user"
	}
	return a.profile.Username
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.displayName()
	if a.isAdmin() {
		s += " admin"
	}
	return "(" + s + ")"
}

func (a *App) report(err error) {
	a.logger.Error(context.Background(), "command failed", "error", err)
	fmt.Fprintln(a.out, "Error:", err)
}

// remoteFailure prints backend errors and reports whether err was one.
func (a *App) remoteFailure(err error) bool {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) && !errors.Is(err, client.ErrMissingData) {
		return false
	}
	fmt.Fprintln(a.out, "Error:", client.Message(err))
	return true
}

func (a *App) printBanner(b views.Banner) {
	if b.Success != "" {
		fmt.Fprintln(a.out, b.Success)
	}
	if b.Error != "" {
		fmt.Fprintln(a.out, "Error:", b.Error)
	}
}

package views

import (
	"context"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
)

const (
	MsgAdminOnly   = "Only administrators can create users"
	MsgUserCreated = "User created successfully!"
	MsgUserUpdated = "User updated successfully!"
)

type UsersAPI interface {
	Create(ctx context.Context, p models.CreateUserPayload) (models.User, error)
	List(ctx context.Context, p models.ListUsersParams) ([]models.User, error)
	Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.User, error)
}

type Identity interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context) (bool, error)
}

type UserRow struct {
	models.User
	Role string
}

type UsersView struct {
	api      UsersAPI
	identity Identity
	session  AdminChecker

	Rows    []UserRow
	Current *models.User

	Page    int
	PerPage int
	Search  string

	CreateOpen bool
	CreateForm models.CreateUserPayload
	UpdateOpen bool
	UpdateForm *models.User

	Banner Banner
}

func NewUsersView(api UsersAPI, identity Identity, session AdminChecker, perPage int) *UsersView {
	if perPage <= 0 {
		perPage = 10
	}
	return &UsersView{
		api:        api,
		identity:   identity,
		session:    session,
		PerPage:    perPage,
		CreateForm: blankUserForm(),
	}
}

func blankUserForm() models.CreateUserPayload {
	return models.CreateUserPayload{IsActive: true}
}

func (v *UsersView) params() models.ListUsersParams {
	return models.ListUsersParams{
		Skip:   models.Int(v.Page * v.PerPage),
		Limit:  models.Int(v.PerPage),
		Search: v.Search,
	}
}

// Refresh reloads the current page. It does nothing for non-admins.
func (v *UsersView) Refresh(ctx context.Context) error {
	admin, err := v.session.IsAdmin(ctx)
	if err != nil || !admin {
		return err
	}

	v.Banner.Error = ""
	users, err := v.api.List(ctx, v.params())
	if err != nil {
		return v.Banner.report(err)
	}

	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{User: u, Role: u.Role()}
	}
	v.Rows = rows
	return nil
}

// RefreshCurrentUser re-reads the signed-in identity. On failure Current is
// left as it was.
func (v *UsersView) RefreshCurrentUser(ctx context.Context) error {
	u, err := v.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	v.Current = &u
	return nil
}

func (v *UsersView) OpenCreate() {
	v.CreateForm = blankUserForm()
	v.CreateOpen = true
}

func (v *UsersView) OpenUpdate(u models.User) {
	v.UpdateForm = &u
	v.UpdateOpen = true
}

func (v *UsersView) CloseDialogs() {
	v.CreateOpen = false
	v.UpdateOpen = false
	v.UpdateForm = nil
}

// Create submits CreateForm. Backend failures end up in the banner and
// leave the rows untouched; a success closes the dialog and reloads.
func (v *UsersView) Create(ctx context.Context) error {
	v.Banner.Clear()

	admin, err := v.session.IsAdmin(ctx)
	if err != nil {
		return err
	}
	if !admin {
		v.Banner.fail(MsgAdminOnly)
		return nil
	}

	if _, err := v.api.Create(ctx, v.CreateForm); err != nil {
		return v.Banner.absorb(err)
	}

	v.Banner.succeed(MsgUserCreated)
	v.CreateForm = blankUserForm()
	v.CreateOpen = false
	return v.Refresh(ctx)
}

// Update submits UpdateForm. It is a no-op when no user is being edited.
func (v *UsersView) Update(ctx context.Context) error {
	v.Banner.Clear()
	if v.UpdateForm == nil {
		return nil
	}

	if _, err := v.api.Update(ctx, v.UpdateForm.ID, v.UpdateForm.UpdatePayload()); err != nil {
		return v.Banner.absorb(err)
	}

	v.Banner.succeed(MsgUserUpdated)
	v.UpdateOpen = false
	v.UpdateForm = nil
	return v.Refresh(ctx)
}

// SetSearch changes the search text and goes back to the first page.
func (v *UsersView) SetSearch(ctx context.Context, s string) error {
	v.Search = s
	v.Page = 0
	return v.Refresh(ctx)
}

// HasNextPage is true when the last load filled a whole page.
func (v *UsersView) HasNextPage() bool {
	return len(v.Rows) >= v.PerPage
}

func (v *UsersView) NextPage(ctx context.Context) error {
	if !v.HasNextPage() {
		return nil
	}
	v.Page++
	return v.Refresh(ctx)
}

func (v *UsersView) PrevPage(ctx context.Context) error {
	if v.Page == 0 {
		return nil
	}
	v.Page--
	return v.Refresh(ctx)
}

func (v *UsersView) GoToPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	v.Page = page
	return v.Refresh(ctx)
}

// Find returns the loaded row with the given id.
func (v *UsersView) Find(id string) (models.User, bool) {
	for _, r := range v.Rows {
		if r.ID == id {
			return r.User, true
		}
	}
	return models.User{}, false
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/taskadmin/internal/client/views"
)

const msgAdminRequired = "Administrator access required"

// Users lists a page of users. The optional argument is a 1-based page.
func (a *App) Users(ctx context.Context, args []string) error {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, msgAdminRequired)
		return nil
	}

	var err error
	if len(args) > 0 {
		page, convErr := strconv.Atoi(args[0])
		if convErr != nil || page < 1 {
			fmt.Fprintln(a.out, "Usage: users [page]")
			return nil
		}
		err = a.users.GoToPage(ctx, page-1)
	} else {
		err = a.users.Refresh(ctx)
	}
	return a.showUsers(err)
}

func (a *App) SearchUsers(ctx context.Context, text string) error {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, msgAdminRequired)
		return nil
	}
	return a.showUsers(a.users.SetSearch(ctx, text))
}

func (a *App) showUsers(err error) error {
	if err != nil {
		return err
	}
	a.active = listUsers
	if a.users.Banner.Error != "" {
		fmt.Fprintln(a.out, "Error:", a.users.Banner.Error)
		return nil
	}
	renderUsers(a.out, a.users)
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, views.MsgAdminOnly)
		return nil
	}

	a.users.OpenCreate()
	defer a.users.CloseDialogs()
	f := &a.users.CreateForm

	var err error
	if f.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if f.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if f.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	if f.IsActive, err = GetYesNo(a.reader, "Active?", true, a.out); err != nil {
		return err
	}

	if err := a.users.Create(ctx); err != nil {
		return err
	}
	a.printBanner(a.users.Banner)
	if a.users.Banner.Success != "" {
		a.active = listUsers
		if a.users.Banner.Error == "" {
			renderUsers(a.out, a.users)
		}
	}
	return nil
}

// EditUser edits a user from the loaded page. Empty answers keep the
// current values.
func (a *App) EditUser(ctx context.Context, id string) error {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, msgAdminRequired)
		return nil
	}

	u, ok := a.users.Find(id)
	if !ok {
		if err := a.users.Refresh(ctx); err != nil {
			return err
		}
		if u, ok = a.users.Find(id); !ok {
			fmt.Fprintf(a.out, "User %s is not on the current page\n", id)
			return nil
		}
	}

	a.users.OpenUpdate(u)
	defer a.users.CloseDialogs()
	f := a.users.UpdateForm

	var err error
	if f.Email, err = GetOptional(a.reader, "Email", f.Email, a.out); err != nil {
		return err
	}
	if f.Username, err = GetOptional(a.reader, "Username", f.Username, a.out); err != nil {
		return err
	}
	if f.FullName, err = GetOptional(a.reader, "Full name", f.FullName, a.out); err != nil {
		return err
	}
	if f.IsActive, err = GetYesNo(a.reader, "Active?", f.IsActive, a.out); err != nil {
		return err
	}
	if f.IsAdmin, err = GetYesNo(a.reader, "Administrator?", f.IsAdmin, a.out); err != nil {
		return err
	}

	if err := a.users.Update(ctx); err != nil {
		return err
	}
	a.printBanner(a.users.Banner)
	if a.users.Banner.Success != "" {
		a.active = listUsers
		if a.users.Banner.Error == "" {
			renderUsers(a.out, a.users)
		}
	}
	return nil
}

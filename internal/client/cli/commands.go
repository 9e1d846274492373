package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/client/listing"
	"github.com/dmitrijs2005/notekeeper/internal/client/router"
)

var getConfirmation = GetConfirmation

var errNotFound = errors.New("not found")

// The list commands act on whichever resource screen is showing.

func (a *App) List(ctx context.Context, page int) error {
	switch a.screen() {
	case router.ScreenNotes:
		if err := a.loadNotes(ctx); err != nil {
			return err
		}
		if page > 0 {
			a.notes.SetPage(page)
		}
		a.renderNotes()
	case router.ScreenCategories:
		if err := a.loadCategories(ctx); err != nil {
			return err
		}
		if page > 0 {
			a.categories.SetPage(page)
		}
		a.renderCategories()
	case router.ScreenAdmin:
		if err := a.loadUsers(ctx); err != nil {
			return err
		}
		if page > 0 {
			a.users.SetPage(page)
		}
		a.renderUsers()
	default:
		return a.notHere("list")
	}
	return nil
}

func (a *App) Filter(_ context.Context, text string) error {
	switch a.screen() {
	case router.ScreenNotes:
		f := a.notes.Filter()
		f.Query = text
		a.notes.SetFilter(f)
		a.renderNotes()
	case router.ScreenCategories:
		a.categories.SetFilter(listing.CategoryFilter{Query: text})
		a.renderCategories()
	case router.ScreenAdmin:
		f := a.users.Filter()
		f.Query = text
		a.users.SetFilter(f)
		a.renderUsers()
	default:
		return a.notHere("filter")
	}
	return nil
}

func (a *App) FilterCategory(_ context.Context, arg string) error {
	if a.screen() != router.ScreenNotes {
		return a.notHere("category")
	}
	var id int64
	if arg != "all" {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || n <= 0 {
			a.println("Usage: category <id|all>")
			return errNotFound
		}
		id = n
	}
	f := a.notes.Filter()
	f.CategoryID = id
	a.notes.SetFilter(f)
	a.renderNotes()
	return nil
}

func (a *App) FilterRole(_ context.Context, arg string) error {
	if a.screen() != router.ScreenAdmin {
		return a.notHere("role")
	}
	role, err := listing.ParseRole(arg)
	if err != nil {
		a.println("Usage: role <all|admin|user>")
		return err
	}
	f := a.users.Filter()
	f.Role = role
	a.users.SetFilter(f)
	a.renderUsers()
	return nil
}

func (a *App) Add(ctx context.Context) error {
	switch a.screen() {
	case router.ScreenNotes:
		return a.addNote(ctx)
	case router.ScreenCategories:
		return a.addCategory(ctx)
	default:
		return a.notHere("add")
	}
}

func (a *App) Edit(ctx context.Context, id int64) error {
	switch a.screen() {
	case router.ScreenNotes:
		return a.editNote(ctx, id)
	case router.ScreenCategories:
		return a.editCategory(ctx, id)
	default:
		return a.notHere("edit")
	}
}

func (a *App) Delete(ctx context.Context, id int64) error {
	switch a.screen() {
	case router.ScreenNotes:
		return a.deleteNote(ctx, id)
	case router.ScreenCategories:
		return a.deleteCategory(ctx, id)
	default:
		return a.notHere("delete")
	}
}

func (a *App) Show(ctx context.Context, id int64) error {
	switch a.screen() {
	case router.ScreenNotes:
		return a.showNote(id)
	case router.ScreenCategories:
		return a.showCategory(ctx, id)
	case router.ScreenAdmin:
		return a.showUser(id)
	default:
		return a.notHere("show")
	}
}

// Profile opens the profile screen, or edits it when already there.
func (a *App) Profile(ctx context.Context, edit bool) error {
	if a.screen() != router.ScreenProfile {
		a.navigate(ctx, "/dashboard/user")
		if a.screen() != router.ScreenProfile {
			return errNotHere
		}
		if !edit {
			return nil
		}
	}
	if edit {
		return a.editProfile(ctx)
	}
	a.renderProfile()
	return nil
}

func (a *App) notHere(cmd string) error {
	a.printf("'%s' is not available on this screen.\n", cmd)
	return errNotHere
}

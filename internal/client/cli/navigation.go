package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/router"
)

var screenTitles = map[router.Screen]string{
	router.ScreenLogin:          "Log in. Commands: login, register, forgot",
	router.ScreenRegister:       "Create an account. Command: register",
	router.ScreenActivate:       "Activate your account. Command: activate",
	router.ScreenForgotPassword: "Forgot your password? Command: forgot",
	router.ScreenResetPassword:  "Choose a new password. Command: reset",
	router.ScreenNotes:          "Notes",
	router.ScreenCategories:     "Categories",
	router.ScreenProfile:        "My profile",
	router.ScreenAdmin:          "Registered users",
	router.ScreenNotFound:       "Page not found. Try: go /",
}

// Location implements httpclient.Navigator.
func (a *App) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// Navigate implements httpclient.Navigator. The new location is resolved
// before the next prompt.
func (a *App) Navigate(path string) {
	a.mu.Lock()
	a.location = path
	a.mu.Unlock()
	a.stale.Store(true)
}

func (a *App) screen() router.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target.Screen
}

func (a *App) query(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target.Query.Get(key)
}

func (a *App) refresh(ctx context.Context) {
	if a.stale.Swap(false) {
		a.resolve(ctx)
	}
}

// Go navigates to path through the router.
func (a *App) Go(ctx context.Context, path string) error {
	a.navigate(ctx, path)
	return nil
}

func (a *App) navigate(ctx context.Context, path string) {
	a.stale.Store(false)
	a.mu.Lock()
	a.location = path
	a.mu.Unlock()
	a.resolve(ctx)
}

// resolve maps the current location through the router and enters the
// resulting screen.
func (a *App) resolve(ctx context.Context) {
	requested := a.Location()
	t := a.router.Resolve(a.store.Current(), requested)

	a.mu.Lock()
	a.location = t.Location()
	a.target = t
	a.mu.Unlock()

	if t.Redirected {
		a.log.Debug(ctx, "redirected", "from", requested, "to", t.Path)
	}
	a.enter(ctx, t)
}

func (a *App) enter(ctx context.Context, t router.Target) {
	a.println("==", screenTitles[t.Screen], "==")
	if t.InShell {
		a.printMenu()
	}

	switch t.Screen {
	case router.ScreenNotes:
		if a.loadNotes(ctx) == nil {
			a.renderNotes()
		}
	case router.ScreenCategories:
		if a.loadCategories(ctx) == nil {
			a.renderCategories()
		}
	case router.ScreenAdmin:
		if a.loadUsers(ctx) == nil {
			a.renderUsers()
		}
	case router.ScreenProfile:
		if a.loadProfile(ctx) == nil {
			a.renderProfile()
		}
	}
}

func (a *App) printMenu() {
	sess := a.store.Current()
	line := ""
	for i, it := range router.Menu(sess.RoleName()) {
		if i > 0 {
			line += " | "
		}
		line += it.Label + " (" + it.Path + ")"
	}
	a.println("Menu:", line)
}

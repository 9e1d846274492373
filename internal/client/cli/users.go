package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/validate"
)

func (a *App) loadUsers(ctx context.Context) error {
	users, err := a.api.Users(ctx).Get()
	if err != nil {
		a.report(ctx, "load users", err)
		return err
	}
	a.users.SetItems(users)
	return nil
}

func (a *App) renderUsers() {
	f := a.users.Filter()
	if f.Query != "" || (f.Role != "" && f.Role != "all") {
		a.printf("Filter: %q, role: %s\n", f.Query, f.Role)
	}

	p := a.users.Current()
	if p.Total == 0 {
		a.println("No users found.")
		return
	}
	for _, u := range p.Items {
		a.printf("#%d %s <%s> [%s]\n", u.ID, u.Name, u.Email, roleLabel(u.Role.Name))
	}
	a.printf("Page %d of %d, %d user(s)\n", p.Page, p.TotalPages, p.Total)
}

func (a *App) showUser(id int64) error {
	for _, u := range a.users.Items() {
		if u.ID == id {
			a.printf("#%d %s (%s)\nEmail: %s\nRole: %s\n", u.ID, u.Name, u.Initials(), u.Email, roleLabel(u.Role.Name))
			return nil
		}
	}
	a.println("User not found:", id)
	return errNotFound
}

// loadProfile fetches the current user from the server.
func (a *App) loadProfile(ctx context.Context) error {
	me, err := a.api.Me(ctx).Get()
	if err != nil {
		a.report(ctx, "load profile", err)
		return err
	}
	a.profile = &me
	return nil
}

func (a *App) renderProfile() {
	u := a.profile
	if u == nil {
		return
	}
	a.printf("%s (%s)\nEmail: %s\nRole: %s\n", u.Name, u.Initials(), u.Email, roleLabel(u.Role.Name))
}

// editProfile updates the displayed profile. The API has no profile update
// endpoint, so the change lives only in this screen.
func (a *App) editProfile(ctx context.Context) error {
	if a.profile == nil {
		a.println("Profile not loaded.")
		return errNotFound
	}
	u := *a.profile

	name, err := getSimpleText(a.reader, "Name"+hint(u.Name), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email"+hint(u.Email), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}

	if err := validate.Profile(u.Name, u.Email); err != nil {
		a.report(ctx, "update profile", err)
		return err
	}

	a.profile = &u
	a.println("Information updated successfully")
	a.renderProfile()
	return nil
}

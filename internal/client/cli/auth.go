package cli

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/router"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/validate"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errNotHere = errors.New("command not available on this screen")

// openForm navigates to path unless the current screen is already want, and
// reports whether the form screen is showing afterwards.
func (a *App) openForm(ctx context.Context, path string, want router.Screen) bool {
	if a.screen() != want {
		a.navigate(ctx, path)
	}
	if a.screen() != want {
		a.println("You are already logged in. Use 'logout' first.")
		return false
	}
	return true
}

// Login prompts for credentials, stores the session on success and lands on
// the role's home screen.
func (a *App) Login(ctx context.Context) error {
	if !a.openForm(ctx, router.LoginPath, router.ScreenLogin) {
		return errNotHere
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validate.Login(email, string(password)); err != nil {
		a.report(ctx, "login", err)
		return err
	}

	resp, err := a.api.Login(ctx, api.Credentials{Email: email, Password: string(password)}).Get()
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindUnauthorized {
		// a 401 here means rejected credentials, not an expired session
		a.println("Error:", apiErr.Message)
		return err
	}
	if err != nil {
		a.report(ctx, "login", err)
		return err
	}
	if err := a.store.Login(ctx, resp.Token, *resp.User); err != nil {
		a.report(ctx, "login", err)
		return err
	}

	a.println("Welcome,", resp.User.Name)
	a.navigate(ctx, router.Home(a.store.Current()))
	return nil
}

func (a *App) Register(ctx context.Context) error {
	if !a.openForm(ctx, "/register", router.ScreenRegister) {
		return errNotHere
	}

	var form validate.RegisterForm
	var err error
	if form.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	form.Password, form.Confirm = string(password), string(confirm)

	if err := validate.Register(form); err != nil {
		a.report(ctx, "register", err)
		a.printRequirements(form.Password)
		return err
	}

	msg, err := a.api.Register(ctx, api.Registration{Name: form.Name, Email: form.Email, Password: form.Password}).Get()
	if err != nil {
		a.report(ctx, "register", err)
		return err
	}

	a.println(orDefault(msg, "Account created. Check your email for the activation code."))
	a.navigate(ctx, "/validation/email?"+url.Values{"email": {form.Email}}.Encode())
	return nil
}

func (a *App) printRequirements(pw string) {
	a.println("Password requirements:")
	for _, r := range validate.PasswordRequirements(pw) {
		mark := "[ ]"
		if r.Met {
			mark = "[x]"
		}
		a.println(" ", mark, r.Label)
	}
}

// Activate submits the emailed code. The email comes from the activation
// link's query when present.
func (a *App) Activate(ctx context.Context) error {
	if !a.openForm(ctx, "/validation/email", router.ScreenActivate) {
		return errNotHere
	}

	email := a.query("email")
	if email == "" {
		// links of the form /validation/email?=<address>
		email = a.query("")
	}
	var err error
	if email == "" {
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
	}
	raw, err := getSimpleText(a.reader, "Activation code ("+strconv.Itoa(validate.ActivationCodeLength)+" digits)", a.out)
	if err != nil {
		return err
	}

	code, err := validate.Activate(email, raw)
	if err != nil {
		a.report(ctx, "activate", err)
		return err
	}

	msg, err := a.api.Activate(ctx, email, code).Get()
	if err != nil {
		a.report(ctx, "activate", err)
		return err
	}

	a.println(orDefault(msg, "User activated"))
	a.navigate(ctx, router.LoginPath)
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	if !a.openForm(ctx, "/forgot-password", router.ScreenForgotPassword) {
		return errNotHere
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := validate.ForgotPassword(email); err != nil {
		a.report(ctx, "forgot password", err)
		return err
	}

	msg, err := a.api.RequestPasswordReset(ctx, email).Get()
	if err != nil {
		a.report(ctx, "forgot password", err)
		return err
	}

	a.println(orDefault(msg, "We sent a password reset link to "+email))
	a.navigate(ctx, router.LoginPath)
	return nil
}

// ResetPassword completes a reset with the token from the emailed link.
func (a *App) ResetPassword(ctx context.Context) error {
	if !a.openForm(ctx, "/reset-password", router.ScreenResetPassword) {
		return errNotHere
	}

	token := a.query("token")
	if token == "" {
		token = a.query("")
	}
	var err error
	if token == "" {
		if token, err = getSimpleText(a.reader, "Reset token (from the email link)", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := validate.ResetPassword(token, string(password), string(confirm)); err != nil {
		a.report(ctx, "reset password", err)
		a.printRequirements(string(password))
		return err
	}

	msg, err := a.api.ConfirmPasswordReset(ctx, token, string(password)).Get()
	if err != nil {
		a.report(ctx, "reset password", err)
		return err
	}

	a.println(orDefault(msg, "Password successfully updated"))
	a.navigate(ctx, router.LoginPath)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}
	if err := a.store.Logout(ctx); err != nil {
		a.report(ctx, "logout", err)
		// the session is logged out in memory either way
	}
	a.println("Logged out.")
	a.navigate(ctx, router.LoginPath)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Log in first.")
		return errNotHere
	}

	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)
	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := validate.ChangePassword(string(current), string(next), string(confirm)); err != nil {
		a.report(ctx, "change password", err)
		return err
	}

	_, err = a.api.ChangePassword(ctx, api.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(next),
		ConfirmPassword: string(confirm),
	}).Get()
	if err != nil {
		a.report(ctx, "change password", err)
		return err
	}

	a.println("Password updated successfully")
	return nil
}

// Whoami prints the session identity and what the token itself claims.
func (a *App) Whoami(ctx context.Context) error {
	sess := a.store.Current()
	if !sess.Authenticated {
		a.println("Not logged in.")
		return nil
	}

	u := sess.User
	a.printf("%s <%s> [%s] id=%d initials=%s\n", u.Name, u.Email, roleLabel(u.Role.Name), u.ID, u.Initials())

	info, err := session.InspectToken(sess.Token)
	if err != nil {
		a.println("Token: opaque")
		return nil
	}
	if info.Subject != "" {
		a.println("Token subject:", info.Subject)
	}
	if !info.IssuedAt.IsZero() {
		a.println("Token issued:", info.IssuedAt.Format(time.RFC3339))
	}
	if !info.ExpiresAt.IsZero() {
		a.println("Token expires:", info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func roleLabel(role string) string {
	if role == session.RoleAdmin {
		return "Administrator"
	}
	return "User"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

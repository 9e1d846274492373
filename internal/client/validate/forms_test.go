package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldsOf returns the failing fields of err, or nil when err is nil.
func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	require.ErrorIs(t, err, ErrValidation)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	return fe.Fields()
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     []string
	}{
		{"ok", "ann@example.com", "secret", nil},
		{"empty", "", "", []string{"email", "password"}},
		{"bad email", "ann@", "secret", []string{"email"}},
		{"short password", "ann@example.com", "12345", []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldsOf(t, Login(tt.email, tt.password)))
		})
	}
}

func TestRegister(t *testing.T) {
	ok := RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "Secret1!", Confirm: "Secret1!"}
	assert.NoError(t, Register(ok))

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		want   []string
	}{
		{"short name", func(f *RegisterForm) { f.Name = "A" }, []string{"name"}},
		{"long name", func(f *RegisterForm) { f.Name = strings.Repeat("a", 81) }, []string{"name"}},
		{"weak password", func(f *RegisterForm) { f.Password, f.Confirm = "secret11", "secret11" }, []string{"password"}},
		{"mismatch", func(f *RegisterForm) { f.Confirm = "Secret1?" }, []string{"confirmPassword"}},
		{"missing confirm", func(f *RegisterForm) { f.Confirm = "" }, []string{"confirmPassword"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ok
			tt.mutate(&f)
			assert.Equal(t, tt.want, fieldsOf(t, Register(f)))
		})
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	err := Register(RegisterForm{Email: "x"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name is required", fe["name"])
	assert.Equal(t, "email is not valid", fe["email"])
	assert.Equal(t, "password is required", fe["password"])
	assert.Contains(t, err.Error(), "email: email is not valid")
}

func TestPasswordRequirements(t *testing.T) {
	met := func(pw string) map[string]bool {
		out := map[string]bool{}
		for _, r := range PasswordRequirements(pw) {
			out[r.Key] = r.Met
		}
		return out
	}

	assert.Equal(t, map[string]bool{"length": false, "lowercase": false, "uppercase": false, "number": false, "special": false}, met(""))
	assert.Equal(t, map[string]bool{"length": true, "lowercase": true, "uppercase": true, "number": true, "special": true}, met("Secret1!"))
	assert.Equal(t, map[string]bool{"length": false, "lowercase": true, "uppercase": true, "number": false, "special": false}, met("aB"))
}

func TestIsStrongPassword(t *testing.T) {
	for pw, want := range map[string]bool{
		"Secret1!":   true,
		"Abcdef1@":   true,
		"Secret1":    false,
		"secret1!":   false,
		"SECRET1!":   false,
		"Secretab!":  false,
		"Secret1!#":  false,
		"Secret 1!":  false,
		"Sécret12!":  false,
		"Aa1@Aa1@Aa": true,
	} {
		assert.Equal(t, want, IsStrongPassword(pw), pw)
	}
}

func TestActivate(t *testing.T) {
	code, err := Activate("ann@example.com", "12-34 56")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	code, err = Activate("ann@example.com", "1234567")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	_, err = Activate("ann@example.com", "12a45")
	assert.Equal(t, []string{"code"}, fieldsOf(t, err))

	_, err = Activate("", "123456")
	assert.Equal(t, []string{"email"}, fieldsOf(t, err))
}

func TestForgotAndReset(t *testing.T) {
	assert.NoError(t, ForgotPassword("ann@example.com"))
	assert.Equal(t, []string{"email"}, fieldsOf(t, ForgotPassword("nope")))

	assert.NoError(t, ResetPassword("tok", "Secret1!", "Secret1!"))
	assert.Equal(t, []string{"token"}, fieldsOf(t, ResetPassword("", "Secret1!", "Secret1!")))
	assert.Equal(t, []string{"confirmPassword", "password"}, fieldsOf(t, ResetPassword("tok", "weak", "weaker")))
}

func TestChangePassword(t *testing.T) {
	assert.NoError(t, ChangePassword("old123", "new123", "new123"))
	assert.Equal(t, []string{"currentPassword"}, fieldsOf(t, ChangePassword("old", "new123", "new123")))
	assert.Equal(t, []string{"confirmPassword"}, fieldsOf(t, ChangePassword("old123", "new123", "new124")))
	assert.Equal(t, []string{"confirmPassword", "newPassword"}, fieldsOf(t, ChangePassword("old123", "", "")))
}

func TestNote(t *testing.T) {
	ok := NoteForm{Name: "Groceries", Description: "milk, eggs and bread", CategoryID: 2}
	assert.NoError(t, Note(ok))

	f := ok
	f.Description = "too short"
	assert.Equal(t, []string{"description"}, fieldsOf(t, Note(f)))

	f = ok
	f.Description = strings.Repeat("x", 501)
	assert.Equal(t, []string{"description"}, fieldsOf(t, Note(f)))

	f = ok
	f.Name = strings.Repeat("n", 101)
	f.CategoryID = 0
	assert.Equal(t, []string{"category", "name"}, fieldsOf(t, Note(f)))
}

func TestCategoryAndProfile(t *testing.T) {
	assert.NoError(t, Category("Work"))
	assert.Equal(t, []string{"name"}, fieldsOf(t, Category("W")))
	assert.Equal(t, []string{"name"}, fieldsOf(t, Category(strings.Repeat("w", 51))))

	assert.NoError(t, Profile("Ann Lee", "ann@example.com"))
	assert.Equal(t, []string{"email", "name"}, fieldsOf(t, Profile(" ", "ann")))
}

func TestIsEmail(t *testing.T) {
	for in, want := range map[string]bool{
		"a@b":               true,
		"ann.lee+x@mail.io": true,
		"ann@-mail.io":      false,
		"ann@@mail.io":      false,
		"ann mail.io":       false,
		"":                  false,
	} {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

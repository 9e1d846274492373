// Package validate checks form input before it reaches the network.
package validate

import "strings"

// ActivationCodeLength is the number of digits in an activation code.
const ActivationCodeLength = 6

type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

type NoteForm struct {
	Name        string
	Description string
	CategoryID  int64
}

func Login(email, password string) error {
	var c checker
	c.email("email", email)
	c.minLen("password", password, "password", 6)
	return c.err()
}

func Register(f RegisterForm) error {
	var c checker
	c.between("name", f.Name, "name", 2, 80)
	c.email("email", f.Email)
	c.strongPassword("password", f.Password)
	c.confirm("confirmPassword", f.Confirm, f.Password)
	return c.err()
}

// NormalizeCode keeps the first ActivationCodeLength digits of raw.
func NormalizeCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == ActivationCodeLength {
				break
			}
		}
	}
	return b.String()
}

// Activate validates an activation attempt and returns the normalized code.
func Activate(email, rawCode string) (string, error) {
	code := NormalizeCode(rawCode)

	var c checker
	c.required("email", email, "email is required")
	c.check("code", len(code) == ActivationCodeLength, "enter the 6-digit code")
	return code, c.err()
}

func ForgotPassword(email string) error {
	var c checker
	c.email("email", email)
	return c.err()
}

func ResetPassword(token, password, confirm string) error {
	var c checker
	c.required("token", token, "reset token is missing")
	c.strongPassword("password", password)
	c.confirm("confirmPassword", confirm, password)
	return c.err()
}

func ChangePassword(current, next, confirm string) error {
	var c checker
	c.minLen("currentPassword", current, "current password", 6)
	c.minLen("newPassword", next, "new password", 6)
	c.confirm("confirmPassword", confirm, next)
	return c.err()
}

func Note(f NoteForm) error {
	var c checker
	c.between("name", f.Name, "name", 2, 100)
	c.between("description", f.Description, "description", 10, 500)
	c.check("category", f.CategoryID > 0, "select a category")
	return c.err()
}

func Category(name string) error {
	var c checker
	c.between("name", name, "name", 2, 50)
	return c.err()
}

func Profile(name, email string) error {
	var c checker
	c.between("name", name, "name", 2, 80)
	c.email("email", email)
	return c.err()
}

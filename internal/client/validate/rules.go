package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// emailPattern is the WHATWG "valid e-mail address" grammar.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

const passwordSpecials = "@$!%*?&"

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func (c *checker) required(field, value, msg string) {
	c.check(field, present(value), msg)
}

func (c *checker) email(field, value string) {
	c.required(field, value, "email is required")
	c.check(field, IsEmail(value), "email is not valid")
}

func (c *checker) between(field, value, label string, lo, hi int) {
	c.required(field, value, label+" is required")
	c.check(field, length(value) >= lo, label+" must be at least "+strconv.Itoa(lo)+" characters")
	c.check(field, length(value) <= hi, label+" must be at most "+strconv.Itoa(hi)+" characters")
}

func (c *checker) minLen(field, value, label string, lo int) {
	c.required(field, value, label+" is required")
	c.check(field, length(value) >= lo, label+" must be at least "+strconv.Itoa(lo)+" characters")
}

func (c *checker) strongPassword(field, value string) {
	c.required(field, value, "password is required")
	c.check(field, IsStrongPassword(value),
		"password needs 8+ characters with upper and lower case letters, a digit and one of "+passwordSpecials)
}

func (c *checker) confirm(field, value, want string) {
	c.required(field, value, "confirm the password")
	c.check(field, value == want, "passwords do not match")
}

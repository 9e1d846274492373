package validate

import (
	"strings"
	"unicode/utf8"
)

type Requirement struct {
	Key   string
	Label string
	Met   bool
}

// PasswordRequirements reports each strength rule for pw, in display order.
func PasswordRequirements(pw string) []Requirement {
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return []Requirement{
		{Key: "length", Label: "At least 8 characters", Met: utf8.RuneCountInString(pw) >= 8},
		{Key: "lowercase", Label: "One lowercase letter", Met: lower},
		{Key: "uppercase", Label: "One uppercase letter", Met: upper},
		{Key: "number", Label: "One number", Met: digit},
		{Key: "special", Label: "One special character (" + passwordSpecials + ")", Met: special},
	}
}

// IsStrongPassword reports whether pw meets every requirement and uses only
// ASCII letters, digits and the allowed specials.
func IsStrongPassword(pw string) bool {
	for _, req := range PasswordRequirements(pw) {
		if !req.Met {
			return false
		}
	}
	for _, r := range pw {
		ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			strings.ContainsRune(passwordSpecials, r)
		if !ok {
			return false
		}
	}
	return true
}

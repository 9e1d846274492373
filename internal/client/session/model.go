package session

import (
	"encoding/json"
	"strings"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

// Initials returns up to two upper-cased initials of the user's name.
func (u User) Initials() string {
	var out []rune
	for _, w := range strings.Fields(u.Name) {
		out = append(out, []rune(strings.ToUpper(w))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Session is the authentication state. Authenticated is true iff Token is
// non-empty and User is non-nil.
type Session struct {
	Authenticated bool
	User          *User
	Token         string
}

func LoggedOut() Session {
	return Session{}
}

func newSession(token string, user *User) Session {
	if token == "" || user == nil {
		return LoggedOut()
	}
	return Session{Authenticated: true, User: user, Token: token}
}

// RoleName is the user's role, or "" when logged out.
func (s Session) RoleName() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role.Name
}

func (s Session) IsAdmin() bool {
	return s.Authenticated && s.User.IsAdmin()
}

func (s Session) Equal(o Session) bool {
	if s.Authenticated != o.Authenticated || s.Token != o.Token {
		return false
	}
	if s.User == nil || o.User == nil {
		return s.User == o.User
	}
	return *s.User == *o.User
}

// Derive builds a Session from the raw stored values. A missing token, a
// missing user or a user that does not decode into a JSON object all yield
// a logged-out Session.
func Derive(token, userJSON string) Session {
	if token == "" || userJSON == "" {
		return LoggedOut()
	}

	var user *User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user == nil {
		return LoggedOut()
	}

	return newSession(token, user)
}

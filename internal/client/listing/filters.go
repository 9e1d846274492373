package listing

import (
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
)

// NoteFilter matches by name and, when CategoryID is non-zero, by category.
type NoteFilter struct {
	Query      string
	CategoryID int64
}

func (f NoteFilter) Match(n api.Note) bool {
	if f.CategoryID != 0 && n.Category.ID != f.CategoryID {
		return false
	}
	return ContainsFold(n.Name, f.Query)
}

type CategoryFilter struct {
	Query string
}

func (f CategoryFilter) Match(c api.Category) bool {
	return ContainsFold(c.Name, f.Query)
}

const (
	RoleAll = "all"
)

// UserFilter matches name or email, and role unless Role is RoleAll or "".
type UserFilter struct {
	Query string
	Role  string
}

func ParseRole(s string) (string, error) {
	switch s {
	case RoleAll, session.RoleAdmin, session.RoleUser:
		return s, nil
	default:
		return "", fmt.Errorf("unknown role filter %q", s)
	}
}

func (f UserFilter) Match(u session.User) bool {
	if f.Role != "" && f.Role != RoleAll && u.Role.Name != f.Role {
		return false
	}
	return ContainsFold(u.Name, f.Query) || ContainsFold(u.Email, f.Query)
}

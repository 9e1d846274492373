package router

import "github.com/dmitrijs2005/notekeeper/internal/client/session"

type MenuItem struct {
	Path  string
	Label string
}

// Menu lists the shell's navigation for a role.
func Menu(role string) []MenuItem {
	if role == session.RoleAdmin {
		return []MenuItem{
			{Path: AdminHome, Label: "Users"},
			{Path: "/dashboard/user", Label: "My profile"},
		}
	}
	return []MenuItem{
		{Path: UserHome, Label: "Notes"},
		{Path: "/dashboard/categories", Label: "Categories"},
		{Path: "/dashboard/user", Label: "My profile"},
	}
}

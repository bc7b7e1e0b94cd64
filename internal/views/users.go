package views

import (
	"strings"

	"receiptweb/internal/models"
)

// UserRow is one row of the admin users table
type UserRow struct {
	ID      int
	Email   string
	IsAdmin bool
	// DeleteDisabled greys out the delete control for admins and for the
	// signed-in account. The backend enforces the same rule.
	DeleteDisabled bool
}

// AdminLabel renders the admin flag column
func (u UserRow) AdminLabel() string {
	if u.IsAdmin {
		return "Yes"
	}
	return "No"
}

// UsersTable renders the user set; selfEmail is the signed-in admin
func UsersTable(set *models.UserSet, selfEmail string) ListView[UserRow] {
	rows := make([]UserRow, 0, set.Len())
	for _, u := range set.Users {
		rows = append(rows, UserRow{
			ID:             u.ID,
			Email:          u.Email,
			IsAdmin:        u.IsAdmin,
			DeleteDisabled: u.IsAdmin || (selfEmail != "" && strings.EqualFold(u.Email, selfEmail)),
		})
	}
	// The admin page shows a bare table when there are no users
	return NewListView(rows, "")
}

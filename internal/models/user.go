package models

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// User is the read-only view of an account
type User struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// UserSet wraps a slice of users for the admin list view
type UserSet struct {
	Users []User
}

// NewUserSet creates a new UserSet from a slice
func NewUserSet(users []User) *UserSet {
	return &UserSet{Users: users}
}

// Len returns the number of users
func (us *UserSet) Len() int {
	return len(us.Users)
}

// FilterByEmail keeps users whose email contains term, ignoring case
func (us *UserSet) FilterByEmail(term string) *UserSet {
	term = strings.ToLower(term)
	out := make([]User, 0, len(us.Users))
	for _, u := range us.Users {
		if strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return &UserSet{Users: out}
}

// Without returns a copy of the set minus the user with the given ID
func (us *UserSet) Without(id int) *UserSet {
	out := slices.DeleteFunc(slices.Clone(us.Users), func(u User) bool {
		return u.ID == id
	})
	return &UserSet{Users: out}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

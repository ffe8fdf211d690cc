package models

import "time"

// User is the persisted account record. PasswordHash always holds a bcrypt
// hash, never the raw password.
type User struct {
	ID           string
	Name         string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserView is the client-facing projection of a User. It never exposes the
// password hash.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

// View returns the client-facing projection of the user.
func (u *User) View() *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Login: u.Login}
}

// Credentials is a login request. It is ephemeral and never persisted.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Package models defines the records ticketapp keeps in its local store and
// their JSON form.
package models

// Account is a registered user. Password holds an encoded verifier produced
// by cryptox.HashPassword, never the password itself.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// User is the identity summary of whoever is logged in.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a Account) User() User {
	return User{ID: a.ID, Email: a.Email, Name: a.Name}
}

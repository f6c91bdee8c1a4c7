package models

import "time"

// Session proves a user is logged in. There is at most one. Token is an
// opaque identifier, not a credential: nothing verifies it.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	// CreatedAt is Unix time in milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

func (s Session) User() User {
	return User{ID: s.UserID, Email: s.Email, Name: s.Name}
}

func (s Session) Created() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

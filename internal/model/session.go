package model

import (
	"time"
)

// User is the authenticated identity as reported by the tracker API.
type User struct {
	ID          string `json:"id" db:"user_id"`
	DisplayName string `json:"display_name" db:"display_name"`
}

// Session binds one browser to one upstream bearer token. The token and the
// user always live in the same row, so a session can never carry a user
// without a token.
type Session struct {
	ID          string    `db:"id"`
	Token       string    `db:"token"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
}

func (s *Session) User() *User {
	return &User{ID: s.UserID, DisplayName: s.DisplayName}
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

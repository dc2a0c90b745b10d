package api

import "github.com/edushare/edushare/edushare/domain"

// SignupProto is the payload for account creation.
type SignupProto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginProto is the payload for opening a session.
type LoginProto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the sanitized wire shape of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionResponse carries the bearer token and its user after signup/login.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	User      User   `json:"user"`
}

func FromUser(u *domain.User) User {
	return User{ID: u.ID, Email: u.Email, Name: u.Name}
}

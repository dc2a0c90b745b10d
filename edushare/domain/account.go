package domain

import (
	"context"
	"time"
)

// Account is the identity record behind a login. The password is only ever
// stored as a bcrypt hash; User is the sanitized shape handed to callers.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// User is the public view of an account.
type User struct {
	ID    string
	Email string
	Name  string
}

func (a *Account) User() *User {
	return &User{ID: a.ID, Email: a.Email, Name: a.Name}
}

type AccountRepository interface {
	// CreateAccount persists a new account. Returns a conflict error when the
	// email is already registered.
	CreateAccount(ctx context.Context, a *Account) error

	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// Session is a revocable login. Tokens reference sessions by id, so deleting
// the documents for a user logs that user out everywhere.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)

	// DeleteSessionsForUser removes every session belonging to userID and
	// returns how many were deleted.
	DeleteSessionsForUser(ctx context.Context, userID string) (int64, error)
}

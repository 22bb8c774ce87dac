package domain

import (
	"context"
	"time"
)

// User is an account allowed to use the application.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an active login, addressed by its opaque token.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository is the port for user persistence. Lookups return (nil, nil)
// when the user does not exist.
type UserRepository interface {
	GetUserByName(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
}

// SessionRepository is the port for session persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xivind/gas-gauge/internal/domain"
)

// GetUserByName retrieves a user by username, or nil if absent.
func (d *DB) GetUserByName(ctx context.Context, username string) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username=$1;", username)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by id, or nil if absent.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id=$1;", id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	u := domain.User{Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users(username, password_hash, created_at) VALUES($1, $2, $3) RETURNING id;",
		u.Username, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsers returns the total number of users.
func (d *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(1) FROM users;").Scan(&n)
	return n, err
}

// CreateSession inserts a new session.
func (d *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sessions(token, user_id, expires_at, created_at) VALUES($1, $2, $3, $4);",
		token, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetSession retrieves a session by token, or nil if absent.
func (d *DB) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token=$1;", token)

	var s domain.Session
	if err := row.Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session.
func (d *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token=$1;", token)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (d *DB) DeleteExpiredSessions(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < NOW();")
	return err
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nts/internal/types"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert records a user after OAuth sign-in, refreshing the profile fields
// on every login.
func (s *UserStore) Upsert(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == "" {
		return errors.New("user id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, login, avatar_url, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET login = excluded.login, avatar_url = excluded.avatar_url`,
		user.ID, user.Login, user.AvatarURL, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*types.User, error) {
	var user types.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, login, avatar_url FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Login, &user.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/valeria-photo/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgxpool.Pool the repository needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepository stores CSRF tokens in the sessions table. It
// implements session.Store.
type SessionRepository struct {
	db querier
}

func NewSessionRepository(db querier) *SessionRepository {
	return &SessionRepository{db: db}
}

const loadSessionSQL = `
SELECT csrf_token
FROM sessions
WHERE id = $1 AND expires_at > now()`

func (r *SessionRepository) Load(ctx context.Context, id string) (string, bool, error) {
	var token string
	err := r.db.QueryRow(ctx, loadSessionSQL, id).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, sqlerr.Wrap("sessions.load", err)
	}
	return token, true, nil
}

const saveSessionSQL = `
INSERT INTO sessions (id, csrf_token, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE
SET csrf_token = EXCLUDED.csrf_token,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()`

func (r *SessionRepository) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	_, err := r.db.Exec(ctx, saveSessionSQL, id, token, time.Now().Add(ttl))
	return sqlerr.Wrap("sessions.save", err)
}

const deleteExpiredSessionsSQL = `DELETE FROM sessions WHERE expires_at <= now()`

// DeleteExpired removes expired rows and returns how many were deleted.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredSessionsSQL)
	if err != nil {
		return 0, sqlerr.Wrap("sessions.delete_expired", err)
	}
	return tag.RowsAffected(), nil
}

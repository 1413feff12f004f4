package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/valeria-photo/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	token string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.token
	return nil
}

type fakeQuerier struct {
	row      fakeRow
	execSQL  string
	execArgs []any
	tag      pgconn.CommandTag
	err      error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	f.execArgs = args
	return f.tag, f.err
}

func (f *fakeQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return f.row
}

func TestSessionRepository_Load(t *testing.T) {
	repo := NewSessionRepository(&fakeQuerier{row: fakeRow{token: "abc"}})
	token, found, err := repo.Load(context.Background(), "id")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", token)

	repo = NewSessionRepository(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})
	_, found, err = repo.Load(context.Background(), "id")
	require.NoError(t, err)
	assert.False(t, found)

	boom := errors.New("connection reset")
	repo = NewSessionRepository(&fakeQuerier{row: fakeRow{err: boom}})
	_, _, err = repo.Load(context.Background(), "id")
	assert.ErrorIs(t, err, boom)
}

func TestSessionRepository_Save(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewSessionRepository(q)

	before := time.Now()
	require.NoError(t, repo.Save(context.Background(), "id", "tok", time.Hour))

	assert.Contains(t, q.execSQL, "ON CONFLICT (id) DO UPDATE")
	require.Len(t, q.execArgs, 3)
	assert.Equal(t, "id", q.execArgs[0])
	assert.Equal(t, "tok", q.execArgs[1])
	expires := q.execArgs[2].(time.Time)
	assert.True(t, expires.After(before.Add(59*time.Minute)))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 3")}
	n, err := NewSessionRepository(q).DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSessionRepository_ClassifiesErrors(t *testing.T) {
	q := &fakeQuerier{err: &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}}
	repo := NewSessionRepository(q)

	err := repo.Save(context.Background(), "id", "tok", time.Hour)
	require.Error(t, err)
	assert.Equal(t, sqlerr.UndefinedTable, sqlerr.ErrCode(err))
	assert.Contains(t, err.Error(), "sessions.save")
}

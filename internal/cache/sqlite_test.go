package cache

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
)

func newMockedSQLiteBackend(t *testing.T) (*SQLiteBackend, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &SQLiteBackend{db: db, defaultTTL: time.Hour, log: logger.Nop()}, mock
}

func TestSQLiteBackend_Get_Hit(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?")).
		WithArgs("bulk:cities", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"DHAKA":1}`)))

	got, ok, err := s.Get(context.Background(), "bulk:cities")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"DHAKA":1}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteBackend_Get_MissOnNoRows(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries")).
		WithArgs("absent", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := s.Get(context.Background(), "absent")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteBackend_Set_UsesUpsert(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT OR REPLACE INTO cache_entries (key,value,expires_at) VALUES (?,?,?)")).
		WithArgs("bulk:cities", []byte(`{}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Set(context.Background(), "bulk:cities", []byte(`{}`), time.Minute)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteBackend_Delete(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries WHERE key = ?")).
		WithArgs("bulk:cities").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "bulk:cities"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteBackend_Clear(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteBackend_CleanupExpired(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries WHERE expires_at <= ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := s.CleanupExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestSQLiteBackend_Close(t *testing.T) {
	s, mock := newMockedSQLiteBackend(t)

	mock.ExpectClose()
	assert.NoError(t, s.Close())
}

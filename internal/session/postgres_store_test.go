package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return NewPostgresStore(db), mock
}

func TestPostgresStore_SaveUpdatesExistingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "console_sessions" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveInsertsNewRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "console_sessions" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "console_sessions"`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveLosesInsertRace(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "console_sessions" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "console_sessions"`).WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	mock.ExpectExec(`UPDATE "console_sessions" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	payload, err := json.Marshal(&Session{ID: "s1", Language: "ar"})
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "data", "expires_at", "updated_at"}).
		AddRow("s1", payload, time.Now().Add(time.Hour), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "console_sessions"`).WillReturnRows(rows)

	s, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "ar", s.Language)

	mock.ExpectQuery(`SELECT \* FROM "console_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data", "expires_at", "updated_at"}))
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteAndPurge(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "console_sessions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(context.Background(), "s1"))

	mock.ExpectExec(`DELETE FROM "console_sessions"`).WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

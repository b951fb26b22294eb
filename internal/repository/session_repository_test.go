package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intwork/internal/models"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

func TestSessionRepository_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	created := time.Now().Add(-time.Hour)

	t.Run("session found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"session_id", "token", "user_data", "flash_kind", "flash_text", "created_at", "updated_at",
		}).AddRow("sess-1", "tok", `{"username":"anna","role":"ADMIN"}`, nil, nil, created, created)

		mock.ExpectQuery(`SELECT (.+) FROM sessions WHERE session_id = \$1`).
			WithArgs("sess-1").
			WillReturnRows(rows)

		record, err := repo.Get(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, "sess-1", record.SessionID)
		assert.Equal(t, sql.NullString{String: "tok", Valid: true}, record.Token)
		assert.False(t, record.FlashText.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("session missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM sessions WHERE session_id = \$1`).
			WithArgs("gone").
			WillReturnError(sql.ErrNoRows)

		record, err := repo.Get(ctx, "gone")

		assert.Nil(t, record)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM sessions`).
			WithArgs("sess-2").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(ctx, "sess-2")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error getting session")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSessionRepository(db)

	record := &models.SessionRecord{
		SessionID: "sess-1",
		Token:     sql.NullString{String: "tok", Valid: true},
		UserData:  sql.NullString{String: `{"username":"anna","role":"USER"}`, Valid: true},
	}

	mock.ExpectExec(`INSERT INTO sessions (.+) ON CONFLICT \(session_id\) DO UPDATE`).
		WithArgs("sess-1", "tok", `{"username":"anna","role":"USER"}`, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), record)

	require.NoError(t, err)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SaveError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectExec(`INSERT INTO sessions`).
		WillReturnError(errors.New("disk full"))

	err := repo.Save(context.Background(), &models.SessionRecord{SessionID: "sess-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error saving session")
}

func TestSessionRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectExec(`DELETE FROM sessions WHERE session_id = \$1`).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSessionRepository(db)
	before := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec(`DELETE FROM sessions WHERE updated_at < \$1`).
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpired(context.Background(), before)

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

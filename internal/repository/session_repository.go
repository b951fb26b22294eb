package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"intwork/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var record models.SessionRecord

	query := `SELECT session_id, token, user_data, flash_kind, flash_text, created_at, updated_at FROM sessions WHERE session_id = $1`

	err := r.db.GetContext(ctx, &record, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	return &record, nil
}

func (r *sessionRepository) Save(ctx context.Context, record *models.SessionRecord) error {
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	query := `
		INSERT INTO sessions (session_id, token, user_data, flash_kind, flash_text, created_at, updated_at)
		VALUES (:session_id, :token, :user_data, :flash_kind, :flash_text, :created_at, :updated_at)
		ON CONFLICT (session_id) DO UPDATE SET
			token = EXCLUDED.token,
			user_data = EXCLUDED.user_data,
			flash_kind = EXCLUDED.flash_kind,
			flash_text = EXCLUDED.flash_text,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE updated_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired sessions: %w", err)
	}

	return result.RowsAffected()
}

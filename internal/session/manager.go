package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"intwork/internal/config"
	"intwork/internal/models"
	"intwork/internal/repository"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Kind    string
	Message string
}

type contextKey struct{}

// state is shared by pointer through the request context so a login or flash
// written by a handler is visible to everything later in the same request.
type state struct {
	id      string
	session Session
	flash   *Flash
	created time.Time
}

type Manager struct {
	repo repository.SessionRepository
	cfg  config.Session
}

func NewManager(repo repository.SessionRepository, cfg config.Session) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "intwork_session"
	}
	return &Manager{repo: repo, cfg: cfg}
}

// LoadSession reads the session row named by the cookie before the handler runs.
// An unknown or unreadable session is treated as logged out.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := &state{}

		if cookie, err := r.Cookie(m.cfg.CookieName); err == nil && cookie.Value != "" {
			record, err := m.repo.Get(r.Context(), cookie.Value)
			switch {
			case err == nil:
				st = fromRecord(record)
			case errors.Is(err, repository.ErrSessionNotFound):
				m.expireCookie(w)
			default:
				slog.WarnContext(r.Context(), "failed to load session", "error", err)
			}
		}

		ctx := context.WithValue(r.Context(), contextKey{}, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func FromContext(ctx context.Context) Session {
	if st, ok := ctx.Value(contextKey{}).(*state); ok {
		return st.session
	}
	return Session{}
}

// TokenFromContext is the token source of the API client.
func TokenFromContext(ctx context.Context) string {
	return FromContext(ctx).Token
}

// Login stores the token under a fresh session id. The id a visitor carried
// before logging in is deleted and never becomes authenticated.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, token string, user models.UserView) error {
	st, ok := ctx.Value(contextKey{}).(*state)
	if !ok {
		st = &state{}
	}
	if st.id != "" {
		if err := m.repo.Delete(ctx, st.id); err != nil {
			slog.WarnContext(ctx, "failed to delete pre-login session", "error", err)
		}
	}

	st.id = uuid.NewString()
	st.created = time.Time{}
	m.setCookie(w, st.id)

	st.session = Login(st.session, token, user)
	return m.save(ctx, st)
}

// Logout deletes the session row and expires the cookie. A flash set afterwards starts a new session.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter) error {
	st, ok := ctx.Value(contextKey{}).(*state)
	if !ok {
		return nil
	}

	st.session = Logout(st.session)
	st.flash = nil
	m.expireCookie(w)

	if st.id == "" {
		return nil
	}
	id := st.id
	st.id = ""
	if err := m.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error logging out: %w", err)
	}
	return nil
}

func (m *Manager) SetFlash(ctx context.Context, w http.ResponseWriter, kind, message string) {
	st := m.ensure(ctx, w)
	st.flash = &Flash{Kind: kind, Message: message}
	if err := m.save(ctx, st); err != nil {
		slog.WarnContext(ctx, "failed to store flash message", "error", err)
	}
}

// PopFlash returns the pending flash message once and clears it.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	st, ok := ctx.Value(contextKey{}).(*state)
	if !ok || st.flash == nil {
		return nil
	}

	flash := st.flash
	st.flash = nil
	if st.id != "" {
		if err := m.save(ctx, st); err != nil {
			slog.WarnContext(ctx, "failed to clear flash message", "error", err)
		}
	}
	return flash
}

// Cleanup removes rows that have not been touched for longer than the session lifetime.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	if m.cfg.Lifetime <= 0 {
		return 0, nil
	}
	return m.repo.DeleteExpired(ctx, time.Now().Add(-m.cfg.Lifetime))
}

func (m *Manager) ensure(ctx context.Context, w http.ResponseWriter) *state {
	st, ok := ctx.Value(contextKey{}).(*state)
	if !ok {
		st = &state{}
	}
	if st.id == "" {
		st.id = uuid.NewString()
		m.setCookie(w, st.id)
	}
	return st
}

func (m *Manager) save(ctx context.Context, st *state) error {
	record := &models.SessionRecord{
		SessionID: st.id,
		CreatedAt: st.created,
	}

	if st.session.Token != "" {
		record.Token = sql.NullString{String: st.session.Token, Valid: true}
	}
	if st.session.User != nil {
		data, err := json.Marshal(st.session.User)
		if err != nil {
			return fmt.Errorf("error encoding session user: %w", err)
		}
		record.UserData = sql.NullString{String: string(data), Valid: true}
	}
	if st.flash != nil {
		record.FlashKind = sql.NullString{String: st.flash.Kind, Valid: true}
		record.FlashText = sql.NullString{String: st.flash.Message, Valid: true}
	}

	if err := m.repo.Save(ctx, record); err != nil {
		return err
	}
	st.created = record.CreatedAt
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func fromRecord(record *models.SessionRecord) *state {
	st := &state{id: record.SessionID, created: record.CreatedAt}

	if record.Token.Valid && record.Token.String != "" {
		st.session = Session{
			Token: record.Token.String,
			User:  parseUser(record.UserData.String),
		}
	}
	if record.FlashText.Valid && record.FlashText.String != "" {
		st.flash = &Flash{Kind: record.FlashKind.String, Message: record.FlashText.String}
	}
	return st
}

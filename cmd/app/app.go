package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"intwork/internal/apiclient"
	"intwork/internal/config"
	"intwork/internal/database"
	handlers "intwork/internal/handler"
	"intwork/internal/render"
	"intwork/internal/repository"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/storage"
	"intwork/web"
)

const cleanupInterval = time.Hour

type Application struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Sessions *session.Manager
	Handlers *handlers.Handlers
}

// App connects the session database, object storage and the remote API client
// and wires them into the page handlers.
func App(ctx context.Context, cfg *config.Config) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the session database: %w", err)
	}

	// connection MinIO, optional
	var covers storage.Storage
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to initialise MinIO: %w", err)
	}
	if minioClient != nil {
		covers = minioClient
	} else {
		slog.Info("MINIO_ENDPOINT not set, cover uploads disabled")
	}

	api, err := apiclient.New(cfg.API.BaseURL, session.TokenFromContext)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(api, db.DB)
	services := service.NewService(repo, cfg, covers)
	sessions := session.NewManager(repo.Session, cfg.Session)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Sessions: sessions})
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Application{
		DB:       db,
		Repo:     repo,
		Services: services,
		Sessions: sessions,
		Handlers: handlers.NewHandlers(services, sessions, renderer, db, cfg),
	}, nil
}

// RunSessionCleanup deletes expired session rows every hour until ctx is done.
func (a *Application) RunSessionCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		removed, err := a.Sessions.Cleanup(ctx)
		if err != nil {
			slog.Warn("session cleanup failed", "error", err)
		} else if removed > 0 {
			slog.Info("removed expired sessions", "count", removed)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

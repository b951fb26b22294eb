package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"intwork/internal/config"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/validation"
)

// HealthChecker is the local session database as seen by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	PostService        service.PostService
	CommentService     service.CommentService
	ApplicationService service.ApplicationService
	DashboardService   service.DashboardService
	UserService        service.UserService
	ProfileService     service.ProfileService
	AuthService        service.AuthService
	SubscriberService  service.SubscriberService
	Sessions           *session.Manager
	Renderer           *render.Renderer
	DB                 HealthChecker
	Cfg                *config.Config
	Validate           *validator.Validate
}

func NewHandlers(
	services *service.Service,
	sessions *session.Manager,
	renderer *render.Renderer,
	db HealthChecker,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		PostService:        services.Post,
		CommentService:     services.Comment,
		ApplicationService: services.Application,
		DashboardService:   services.Dashboard,
		UserService:        services.User,
		ProfileService:     services.Profile,
		AuthService:        services.Auth,
		SubscriberService:  services.Subscriber,
		Sessions:           sessions,
		Renderer:           renderer,
		DB:                 db,
		Cfg:                cfg,
		Validate:           validation.New(),
	}
}

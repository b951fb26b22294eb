package service

import (
	"intwork/internal/config"
	"intwork/internal/repository"
	"intwork/internal/storage"
)

type Service struct {
	Post        PostService
	Comment     CommentService
	Application ApplicationService
	Dashboard   DashboardService
	User        UserService
	Profile     ProfileService
	Auth        AuthService
	Subscriber  SubscriberService
}

// NewService wires every page service. storage may be nil when cover uploads are disabled.
func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Post:        NewPostService(rep.Post, rep.Comment, rep.Category, storage),
		Comment:     NewCommentService(rep.Comment),
		Application: NewApplicationService(rep.Application, rep.Post, cfg.MaxUploadSize),
		Dashboard:   NewDashboardService(rep.User, rep.Post, rep.Application),
		User:        NewUserService(rep.User),
		Profile:     NewProfileService(rep.Profile),
		Auth:        NewAuthService(rep.Auth),
		Subscriber:  NewSubscriberService(rep.Subscriber),
	}
}

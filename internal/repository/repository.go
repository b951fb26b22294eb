package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type PostRepository interface {
	GetAll(ctx context.Context) ([]models.Post, error)
	GetArticles(ctx context.Context) ([]models.Post, error)
	GetJobs(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Create(ctx context.Context, req models.PostRequest) (*models.Post, error)
	Update(ctx context.Context, postID int64, req models.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, postID int64) error
	Search(ctx context.Context, keyword string) ([]models.Post, error)
	Like(ctx context.Context, postID int64) error
}

type CommentRepository interface {
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, postID int64, content string) (*models.Comment, error)
	Update(ctx context.Context, commentID int64, content string) error
	Delete(ctx context.Context, commentID int64) error
}

type ApplicationRepository interface {
	Submit(ctx context.Context, req models.ApplicationRequest) error
	GetMine(ctx context.Context) ([]models.Application, error)
	GetByJobID(ctx context.Context, jobPostID int64) ([]models.Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error
	Delete(ctx context.Context, applicationID int64) error
	GetStats(ctx context.Context) (*models.ApplicationStats, error)
}

type SubscriberRepository interface {
	Subscribe(ctx context.Context, email string) (string, error)
	Unsubscribe(ctx context.Context, email string) (string, error)
	Check(ctx context.Context, email string) (*models.SubscriptionStatus, error)
	Verify(ctx context.Context, token string) (string, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
}

type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	Update(ctx context.Context, userID int64, user models.User) error
	Delete(ctx context.Context, userID int64) error
}

type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
}

type AuthRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// SessionRepository persists browser sessions locally; it never talks to the remote API.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*models.SessionRecord, error)
	Save(ctx context.Context, record *models.SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Repository struct {
	Post        PostRepository
	Comment     CommentRepository
	Application ApplicationRepository
	Subscriber  SubscriberRepository
	Category    CategoryRepository
	User        UserRepository
	Profile     ProfileRepository
	Auth        AuthRepository
	Session     SessionRepository
}

func NewRepository(api *apiclient.Client, db *sqlx.DB) *Repository {
	return &Repository{
		Post:        NewPostRepository(api),
		Comment:     NewCommentRepository(api),
		Application: NewApplicationRepository(api),
		Subscriber:  NewSubscriberRepository(api),
		Category:    NewCategoryRepository(api),
		User:        NewUserRepository(api),
		Profile:     NewProfileRepository(api),
		Auth:        NewAuthRepository(api),
		Session:     NewSessionRepository(db),
	}
}

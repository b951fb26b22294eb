package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"intwork/internal/models"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) posts(args mock.Arguments) ([]models.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	return m.posts(m.Called(ctx))
}

func (m *MockPostRepository) GetArticles(ctx context.Context) ([]models.Post, error) {
	return m.posts(m.Called(ctx))
}

func (m *MockPostRepository) GetJobs(ctx context.Context) ([]models.Post, error) {
	return m.posts(m.Called(ctx))
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, req models.PostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, postID int64, req models.PostRequest) (*models.Post, error) {
	args := m.Called(ctx, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *MockPostRepository) Search(ctx context.Context, keyword string) ([]models.Post, error) {
	return m.posts(m.Called(ctx, keyword))
}

func (m *MockPostRepository) Like(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, commentID int64, text string) error {
	return m.Called(ctx, commentID, text).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	return m.Called(ctx, commentID).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Submit(ctx context.Context, req models.ApplicationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockApplicationRepository) GetMine(ctx context.Context) ([]models.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByJobID(ctx context.Context, jobPostID int64) ([]models.Application, error) {
	args := m.Called(ctx, jobPostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	return m.Called(ctx, applicationID, status).Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, applicationID int64) error {
	return m.Called(ctx, applicationID).Error(0)
}

func (m *MockApplicationRepository) GetStats(ctx context.Context) (*models.ApplicationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationStats), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, userID int64, user models.User) error {
	return m.Called(ctx, userID, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) Register(ctx context.Context, req models.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Subscribe(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriberRepository) Unsubscribe(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriberRepository) Check(ctx context.Context, email string) (*models.SubscriptionStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionStatus), args.Error(1)
}

func (m *MockSubscriberRepository) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteCover(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

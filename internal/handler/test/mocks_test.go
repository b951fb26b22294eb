// go test ./internal/handler/test... -v
package test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"intwork/internal/models"
	"intwork/internal/repository"
	"intwork/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Home(ctx context.Context) (*service.HomePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HomePage), args.Error(1)
}

func (m *MockPostService) Articles(ctx context.Context, filter service.ArticleFilter) (*service.ArticlesPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticlesPage), args.Error(1)
}

func (m *MockPostService) Jobs(ctx context.Context, search string) ([]service.PostCard, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostCard), args.Error(1)
}

func (m *MockPostService) Search(ctx context.Context, keyword string) ([]service.PostCard, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostCard), args.Error(1)
}

func (m *MockPostService) Detail(ctx context.Context, postID int64) (*service.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) EditForm(ctx context.Context, postID int64) (*service.PostInput, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostInput), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, input service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, postID int64, input service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostService) Like(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockPostService) CoversEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockPostService) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Edit(ctx context.Context, commentID int64, text string) error {
	args := m.Called(ctx, commentID, text)
	return args.Error(0)
}

func (m *MockCommentService) Delete(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, input service.ApplicationInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockApplicationService) Page(ctx context.Context, jobID int64, status string) (*service.ApplicationsPage, error) {
	args := m.Called(ctx, jobID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationsPage), args.Error(1)
}

func (m *MockApplicationService) Mine(ctx context.Context) ([]models.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, applicationID int64, status string) error {
	args := m.Called(ctx, applicationID, status)
	return args.Error(0)
}

func (m *MockApplicationService) Delete(ctx context.Context, applicationID int64) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

func (m *MockApplicationService) CV(ctx context.Context, jobID, applicationID int64) (*service.CVFile, error) {
	args := m.Called(ctx, jobID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CVFile), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) *models.DashboardStats {
	args := m.Called(ctx)
	return args.Get(0).(*models.DashboardStats)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, filter service.UserFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, userID int64, input service.UserInput) (*models.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context) (*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, profile models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, models.UserView, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(models.UserView), args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockSubscriberService struct {
	mock.Mock
}

func (m *MockSubscriberService) Subscribe(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriberService) Unsubscribe(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriberService) Check(ctx context.Context, email string) (*models.SubscriptionStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionStatus), args.Error(1)
}

func (m *MockSubscriberService) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memorySessions keeps session rows in a map so tests can inspect what a request stored.
type memorySessions struct {
	mu      sync.Mutex
	records map[string]models.SessionRecord
}

func newMemorySessions() *memorySessions {
	return &memorySessions{records: make(map[string]models.SessionRecord)}
}

func (s *memorySessions) Get(_ context.Context, sessionID string) (*models.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &record, nil
}

func (s *memorySessions) Save(_ context.Context, record *models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	s.records[record.SessionID] = *record
	return nil
}

func (s *memorySessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}

func (s *memorySessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, record := range s.records {
		if record.UpdatedAt.Before(before) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

func (s *memorySessions) record(sessionID string) (models.SessionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[sessionID]
	return record, ok
}

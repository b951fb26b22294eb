package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// setupAPI starts a fake remote API that records each request and replies with the route's body.
func setupAPI(t *testing.T, routes map[string]string) (*apiclient.Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})

		reply, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no route"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, nil)
	require.NoError(t, err)
	return client, &requests
}

func TestPostRepository_Lists(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"GET /api/posts":        `[{"id":1,"title":"A","type":"ARTICLE"},{"id":2,"title":"B","type":"JOB"}]`,
		"GET /api/articles":     `{"data":[{"id":1,"title":"A","type":"ARTICLE"}]}`,
		"GET /api/jobs":         `[{"id":2,"title":"B","type":"JOB"}]`,
		"GET /api/search/posts": `[{"id":2,"title":"B","type":"JOB"}]`,
	})
	repo := NewPostRepository(client)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	articles, err := repo.GetArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, models.PostTypeArticle, articles[0].Type)

	jobs, err := repo.GetJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	found, err := repo.Search(ctx, "golang dev")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.Len(t, *requests, 4)
	assert.Equal(t, "keyword=golang+dev", (*requests)[3].Query)
}

func TestPostRepository_CRUD(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"GET /api/posts/5":       `{"id":5,"title":"Go dev","type":"JOB","content":"**Location:** Ghent"}`,
		"POST /api/posts":        `{"id":6,"title":"New","type":"ARTICLE"}`,
		"PUT /api/posts/6":       `{"id":6,"title":"Renamed","type":"ARTICLE"}`,
		"DELETE /api/posts/6":    ``,
		"POST /api/posts/5/like": `{"likes":4}`,
	})
	repo := NewPostRepository(client)
	ctx := context.Background()

	post, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Go dev", post.Title)

	created, err := repo.Create(ctx, models.PostRequest{Title: "New", Content: "body", Type: models.PostTypeArticle})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)

	updated, err := repo.Update(ctx, 6, models.PostRequest{Title: "Renamed", Type: models.PostTypeArticle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, repo.Delete(ctx, 6))
	require.NoError(t, repo.Like(ctx, 5))

	var sent models.PostRequest
	require.NoError(t, json.Unmarshal([]byte((*requests)[1].Body), &sent))
	assert.Equal(t, "body", sent.Content)
	assert.Equal(t, http.MethodDelete, (*requests)[3].Method)
}

func TestPostRepository_NotFound(t *testing.T) {
	client, _ := setupAPI(t, map[string]string{})
	repo := NewPostRepository(client)

	post, err := repo.GetByID(context.Background(), 99)

	assert.Nil(t, post)
	assert.True(t, errors.Is(err, apiclient.ErrNotFound))
	assert.Contains(t, err.Error(), "error getting post 99")
}

func TestCommentRepository(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"GET /api/posts/3/comments":  `[{"id":1,"content":"hi","author":{"username":"anna"}}]`,
		"POST /api/posts/3/comments": `{"id":2,"content":"new"}`,
		"PUT /api/comments/2":        `{}`,
		"DELETE /api/comments/2":     ``,
	})
	repo := NewCommentRepository(client)
	ctx := context.Background()

	comments, err := repo.GetByPostID(ctx, 3)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "anna", comments[0].Author.Username)

	comment, err := repo.Create(ctx, 3, "new")
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.ID)

	require.NoError(t, repo.Update(ctx, 2, "edited"))
	require.NoError(t, repo.Delete(ctx, 2))

	assert.JSONEq(t, `{"content":"new"}`, (*requests)[1].Body)
	assert.JSONEq(t, `{"content":"edited"}`, (*requests)[2].Body)
}

func TestApplicationRepository(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"POST /api/applications":         `{}`,
		"GET /api/applications/my":       `[{"id":1,"status":"PENDING","jobPostId":4}]`,
		"GET /api/applications/job/4":    `[{"id":1,"status":"PENDING"},{"id":2,"status":"HIRED"}]`,
		"PUT /api/applications/1/status": `{}`,
		"DELETE /api/applications/2":     ``,
		"GET /api/applications/stats":    `{"total":9,"pending":3,"recent":[{"id":1}]}`,
	})
	repo := NewApplicationRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Submit(ctx, models.ApplicationRequest{FullName: "Jan", JobPostID: 4}))

	mine, err := repo.GetMine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forJob, err := repo.GetByJobID(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, forJob, 2)

	require.NoError(t, repo.UpdateStatus(ctx, 1, models.StatusShortlisted))
	require.NoError(t, repo.Delete(ctx, 2))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 3, stats.Pending)

	assert.JSONEq(t, `{"status":"SHORTLISTED"}`, (*requests)[3].Body)
}

func TestSubscriberRepository(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"POST /api/subscribers":       `{"message":"check your inbox"}`,
		"DELETE /api/subscribers":     `{"message":"bye"}`,
		"GET /api/subscribers/check":  `{"subscribed":true,"verified":false}`,
		"GET /api/subscribers/verify": `{"message":"verified"}`,
	})
	repo := NewSubscriberRepository(client)
	ctx := context.Background()

	msg, err := repo.Subscribe(ctx, "jan@example.be")
	require.NoError(t, err)
	assert.Equal(t, "check your inbox", msg)

	msg, err = repo.Unsubscribe(ctx, "jan@example.be")
	require.NoError(t, err)
	assert.Equal(t, "bye", msg)

	status, err := repo.Check(ctx, "jan@example.be")
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, "jan@example.be", status.Email)

	msg, err = repo.Verify(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, "verified", msg)

	assert.JSONEq(t, `{"email":"jan@example.be"}`, (*requests)[1].Body)
	assert.Equal(t, "email=jan%40example.be", (*requests)[2].Query)
	assert.Equal(t, "token=tok123", (*requests)[3].Query)
}

func TestUserAndProfileRepository(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"GET /admin/users":      `[{"id":1,"username":"anna","role":"ADMIN"}]`,
		"GET /admin/users/1":    `{"id":1,"username":"anna","role":"ADMIN"}`,
		"PUT /admin/users/1":    `{}`,
		"DELETE /admin/users/1": ``,
		"GET /profile":          `{"firstName":"Anna","city":"Ghent"}`,
		"PUT /profile":          `{}`,
		"GET /api/categories":   `[{"id":1,"name":"Backend"}]`,
	})
	ctx := context.Background()

	users := NewUserRepository(client)
	all, err := users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	user, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	user.Role = models.RoleManager
	require.NoError(t, users.Update(ctx, 1, *user))
	require.NoError(t, users.Delete(ctx, 1))

	profiles := NewProfileRepository(client)
	profile, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ghent", profile.City)
	require.NoError(t, profiles.Update(ctx, *profile))

	categories, err := NewCategoryRepository(client).GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Backend", categories[0].Name)

	var sent models.User
	require.NoError(t, json.Unmarshal([]byte((*requests)[2].Body), &sent))
	assert.Equal(t, models.RoleManager, sent.Role)
}

func TestAuthRepository(t *testing.T) {
	client, requests := setupAPI(t, map[string]string{
		"POST /auth/login":    `{"token":"a.b.c"}`,
		"POST /auth/register": `{}`,
	})
	repo := NewAuthRepository(client)
	ctx := context.Background()

	token, err := repo.Login(ctx, models.LoginRequest{Username: "anna", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	require.NoError(t, repo.Register(ctx, models.RegisterRequest{FirstName: "Anna", Username: "anna", Password: "secret"}))
	assert.Contains(t, (*requests)[1].Body, `"firstname":"Anna"`)
}

func TestAuthRepository_EmptyToken(t *testing.T) {
	client, _ := setupAPI(t, map[string]string{
		"POST /auth/login": `{}`,
	})

	_, err := NewAuthRepository(client).Login(context.Background(), models.LoginRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrEmptyToken)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type PostRepositoryImpl struct {
	api *apiclient.Client
}

func NewPostRepository(api *apiclient.Client) *PostRepositoryImpl {
	return &PostRepositoryImpl{api: api}
}

func (r *PostRepositoryImpl) list(ctx context.Context, path string, query url.Values) ([]models.Post, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return apiclient.DecodeList[models.Post](raw)
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	posts, err := r.list(ctx, "/api/posts", nil)
	if err != nil {
		return nil, fmt.Errorf("error getting posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) GetArticles(ctx context.Context) ([]models.Post, error) {
	posts, err := r.list(ctx, "/api/articles", nil)
	if err != nil {
		return nil, fmt.Errorf("error getting articles: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) GetJobs(ctx context.Context) ([]models.Post, error) {
	posts, err := r.list(ctx, "/api/jobs", nil)
	if err != nil {
		return nil, fmt.Errorf("error getting jobs: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	if err := r.api.Get(ctx, fmt.Sprintf("/api/posts/%d", postID), nil, &post); err != nil {
		return nil, fmt.Errorf("error getting post %d: %w", postID, err)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, req models.PostRequest) (*models.Post, error) {
	var post models.Post
	if err := r.api.Post(ctx, "/api/posts", req, &post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, postID int64, req models.PostRequest) (*models.Post, error) {
	var post models.Post
	if err := r.api.Put(ctx, fmt.Sprintf("/api/posts/%d", postID), req, &post); err != nil {
		return nil, fmt.Errorf("error updating post %d: %w", postID, err)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/api/posts/%d", postID), nil, nil); err != nil {
		return fmt.Errorf("error deleting post %d: %w", postID, err)
	}
	return nil
}

func (r *PostRepositoryImpl) Search(ctx context.Context, keyword string) ([]models.Post, error) {
	posts, err := r.list(ctx, "/api/search/posts", url.Values{"keyword": {keyword}})
	if err != nil {
		return nil, fmt.Errorf("error searching posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) Like(ctx context.Context, postID int64) error {
	if err := r.api.Post(ctx, fmt.Sprintf("/api/posts/%d/like", postID), nil, nil); err != nil {
		return fmt.Errorf("error liking post %d: %w", postID, err)
	}
	return nil
}

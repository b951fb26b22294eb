package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type commentRepository struct {
	api *apiclient.Client
}

type commentRequest struct {
	Content string `json:"content"`
}

func NewCommentRepository(api *apiclient.Client) CommentRepository {
	return &commentRepository{api: api}
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, fmt.Sprintf("/api/posts/%d/comments", postID), nil, &raw); err != nil {
		return nil, fmt.Errorf("error getting comments for post %d: %w", postID, err)
	}
	return apiclient.DecodeList[models.Comment](raw)
}

func (r *commentRepository) Create(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	var comment models.Comment
	err := r.api.Post(ctx, fmt.Sprintf("/api/posts/%d/comments", postID), commentRequest{Content: content}, &comment)
	if err != nil {
		return nil, fmt.Errorf("error adding comment to post %d: %w", postID, err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, commentID int64, content string) error {
	err := r.api.Put(ctx, fmt.Sprintf("/api/comments/%d", commentID), commentRequest{Content: content}, nil)
	if err != nil {
		return fmt.Errorf("error updating comment %d: %w", commentID, err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/api/comments/%d", commentID), nil, nil); err != nil {
		return fmt.Errorf("error deleting comment %d: %w", commentID, err)
	}
	return nil
}

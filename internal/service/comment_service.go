package service

import (
	"context"
	"strings"

	"intwork/internal/models"
	"intwork/internal/repository"
)

type CommentService interface {
	Add(ctx context.Context, postID int64, text string) (*models.Comment, error)
	Edit(ctx context.Context, commentID int64, text string) error
	Delete(ctx context.Context, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) Add(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	return s.commentRepo.Create(ctx, postID, text)
}

func (s *commentService) Edit(ctx context.Context, commentID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}
	return s.commentRepo.Update(ctx, commentID, text)
}

func (s *commentService) Delete(ctx context.Context, commentID int64) error {
	return s.commentRepo.Delete(ctx, commentID)
}

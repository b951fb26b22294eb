package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"intwork/internal/apiclient"
	"intwork/internal/content"
	"intwork/internal/models"
	"intwork/internal/repository"
	"intwork/internal/storage"
)

const (
	featuredArticles = 3
	featuredJobs     = 4
	latestPosts      = 6
)

type PostService interface {
	Home(ctx context.Context) (*HomePage, error)
	Articles(ctx context.Context, filter ArticleFilter) (*ArticlesPage, error)
	Jobs(ctx context.Context, search string) ([]PostCard, error)
	Search(ctx context.Context, keyword string) ([]PostCard, error)
	Detail(ctx context.Context, postID int64) (*PostDetail, error)
	EditForm(ctx context.Context, postID int64) (*PostInput, error)
	Create(ctx context.Context, input PostInput) (*models.Post, error)
	Update(ctx context.Context, postID int64, input PostInput) (*models.Post, error)
	Delete(ctx context.Context, postID int64) error
	Like(ctx context.Context, postID int64) error
	Categories(ctx context.Context) ([]models.Category, error)
	CoversEnabled() bool
	UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error)
}

type postService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	storage      storage.Storage
}

// NewPostService accepts a nil storage; cover uploads are then rejected with ErrCoversDisabled.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	storage storage.Storage,
) PostService {
	return &postService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// Home loads its three sections in parallel. A failed section is left empty;
// only a page where every section failed is an error.
func (s *postService) Home(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}
	var articles, jobs, latest []models.Post
	var articlesErr, jobsErr, latestErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		articles, articlesErr = s.postRepo.GetArticles(gctx)
		return nil
	})
	g.Go(func() error {
		jobs, jobsErr = s.postRepo.GetJobs(gctx)
		return nil
	})
	g.Go(func() error {
		latest, latestErr = s.postRepo.GetAll(gctx)
		return nil
	})
	_ = g.Wait()

	if articlesErr != nil {
		slog.WarnContext(ctx, "home: failed to load articles", "error", articlesErr)
		page.Failed = append(page.Failed, "articles")
	}
	if jobsErr != nil {
		slog.WarnContext(ctx, "home: failed to load jobs", "error", jobsErr)
		page.Failed = append(page.Failed, "jobs")
	}
	if latestErr != nil {
		slog.WarnContext(ctx, "home: failed to load latest posts", "error", latestErr)
		page.Failed = append(page.Failed, "latest")
	}
	if len(page.Failed) == 3 {
		return nil, articlesErr
	}

	page.FeaturedArticles = cards(limit(articles, featuredArticles))
	page.FeaturedJobs = cards(limit(jobs, featuredJobs))
	page.Latest = cards(limit(newestFirst(latest), latestPosts))
	return page, nil
}

// Articles filters by category name and search term locally. A failure to load
// categories only hides the category bar.
func (s *postService) Articles(ctx context.Context, filter ArticleFilter) (*ArticlesPage, error) {
	var posts []models.Post
	var categories []models.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.GetArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetAll(gctx)
		if err != nil {
			slog.WarnContext(ctx, "articles: failed to load categories", "error", err)
			categories = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if filter.Category != "" && !strings.EqualFold(p.CategoryName, filter.Category) {
			continue
		}
		if !matchesSearch(p, filter.Search) {
			continue
		}
		filtered = append(filtered, p)
	}

	return &ArticlesPage{
		Filter:     filter,
		Categories: categories,
		Articles:   cards(filtered),
		Total:      len(posts),
	}, nil
}

func (s *postService) Jobs(ctx context.Context, search string) ([]PostCard, error) {
	jobs, err := s.postRepo.GetJobs(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Post, 0, len(jobs))
	for _, p := range jobs {
		if matchesSearch(p, search) {
			filtered = append(filtered, p)
		}
	}
	return cards(filtered), nil
}

// Search asks the API; a blank keyword returns nothing without a request.
func (s *postService) Search(ctx context.Context, keyword string) ([]PostCard, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	posts, err := s.postRepo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return cards(posts), nil
}

func (s *postService) Detail(ctx context.Context, postID int64) (*PostDetail, error) {
	var post *models.Post
	var comments []models.Comment
	var commentsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = s.postRepo.GetByID(gctx, postID)
		return err
	})
	g.Go(func() error {
		comments, commentsErr = s.commentRepo.GetByPostID(gctx, postID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &PostDetail{
		Card:     NewPostCard(*post),
		Comments: comments,
	}
	if commentsErr != nil {
		slog.WarnContext(ctx, "detail: failed to load comments", "post_id", postID, "error", commentsErr)
		detail.CommentsFailed = true
		detail.Comments = nil
	}

	if post.IsJob() {
		job := content.ParseJob(post.Content)
		job.Location = firstNonEmpty(post.Location, job.Location)
		job.Contract = firstNonEmpty(post.Contract, job.Contract)
		detail.Job = &job
	} else {
		detail.Body = content.RenderMarkdown(post.Content)
	}

	return detail, nil
}

// EditForm separates a job body from its markers so the form edits them as fields.
func (s *postService) EditForm(ctx context.Context, postID int64) (*PostInput, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	input := &PostInput{
		Title:      post.Title,
		Body:       post.Content,
		Type:       post.Type,
		ImageURL:   post.ImageURL,
		CategoryID: post.CategoryID,
	}
	if post.IsJob() {
		location, contract, body := content.SplitJob(post.Content)
		input.Body = body
		input.Location = firstNonEmpty(post.Location, location)
		input.Contract = firstNonEmpty(post.Contract, contract)
	}
	return input, nil
}

func (s *postService) Create(ctx context.Context, input PostInput) (*models.Post, error) {
	post, err := s.postRepo.Create(ctx, buildPostRequest(input))
	if err != nil {
		s.discardCover(ctx, input.CoverObject)
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, postID int64, input PostInput) (*models.Post, error) {
	post, err := s.postRepo.Update(ctx, postID, buildPostRequest(input))
	if err != nil {
		s.discardCover(ctx, input.CoverObject)
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, postID int64) error {
	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) Like(ctx context.Context, postID int64) error {
	return s.postRepo.Like(ctx, postID)
}

func (s *postService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *postService) CoversEnabled() bool {
	return s.storage != nil
}

// UploadCover stores an image and returns its object name and public URL.
func (s *postService) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	if s.storage == nil {
		return "", "", ErrCoversDisabled
	}

	objectName, url, err := s.storage.UploadCover(ctx, fileName, file, size)
	if err != nil {
		return "", "", fmt.Errorf("error uploading cover: %w", err)
	}
	return objectName, url, nil
}

// discardCover removes a cover uploaded for a post that was then not saved.
func (s *postService) discardCover(ctx context.Context, objectName string) {
	if objectName == "" || s.storage == nil {
		return
	}
	if err := s.storage.DeleteCover(ctx, objectName); err != nil {
		slog.WarnContext(ctx, "failed to remove unused cover", "object", objectName, "error", err)
	}
}

// buildPostRequest sends job location and contract both as fields and as
// markers in the body, so clients that only read the body still see them.
func buildPostRequest(input PostInput) models.PostRequest {
	req := models.PostRequest{
		Title:      strings.TrimSpace(input.Title),
		Content:    strings.TrimSpace(input.Body),
		Type:       input.Type,
		ImageURL:   strings.TrimSpace(input.ImageURL),
		CategoryID: input.CategoryID,
	}

	if input.Type == models.PostTypeJob {
		req.Location = strings.TrimSpace(input.Location)
		req.Contract = strings.TrimSpace(input.Contract)
		req.Content = content.ComposeJob(req.Location, req.Contract, req.Content)
	}
	return req
}

func matchesSearch(p models.Post, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Content), term)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsNotFound reports whether err means the requested post or item does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, apiclient.ErrNotFound)
}

package service

import (
	"fmt"
	"html/template"
	"sort"

	"intwork/internal/content"
	"intwork/internal/models"
)

const cardDescriptionRunes = 80

// PostCard is a post prepared for a list: its canonical path, summary and job badges.
type PostCard struct {
	models.Post
	Slug        string
	Path        string
	Summary     string
	ReadingTime string
	JobLocation string
	JobContract string
}

func NewPostCard(p models.Post) PostCard {
	card := PostCard{
		Post:        p,
		Summary:     content.Description(p.Content, cardDescriptionRunes),
		ReadingTime: content.ReadingTime(p.Content),
	}

	if p.IsJob() {
		card.Slug = content.Slug(p.Title, "job")
		card.Path = fmt.Sprintf("/jobs/%d/%s", p.ID, card.Slug)
		card.JobLocation, card.JobContract = jobBadges(p)
	} else {
		card.Slug = content.Slug(p.Title, "post")
		card.Path = fmt.Sprintf("/posts/%d/%s", p.ID, card.Slug)
	}
	return card
}

func cards(posts []models.Post) []PostCard {
	out := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostCard(p))
	}
	return out
}

// jobBadges prefers the first-class fields and falls back to the markers in older bodies.
func jobBadges(p models.Post) (string, string) {
	location, contract := p.Location, p.Contract
	if location == "" || contract == "" {
		markers := content.ParseJob(p.Content)
		if location == "" {
			location = markers.Location
		}
		if contract == "" {
			contract = markers.Contract
		}
	}
	return location, contract
}

func newestFirst(posts []models.Post) []models.Post {
	sorted := append([]models.Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
	})
	return sorted
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

type HomePage struct {
	FeaturedArticles []PostCard
	FeaturedJobs     []PostCard
	Latest           []PostCard
	// Failed lists the sections that could not be loaded.
	Failed []string
}

type ArticleFilter struct {
	Category string
	Search   string
}

type ArticlesPage struct {
	Filter     ArticleFilter
	Categories []models.Category
	Articles   []PostCard
	Total      int
}

type PostDetail struct {
	Card     PostCard
	Job      *content.JobDetails
	Body     template.HTML
	Comments []models.Comment
	// CommentsFailed is set when the post loaded but its comments did not.
	CommentsFailed bool
}

// PostInput is the edit form of a post. Body excludes the job markers.
type PostInput struct {
	Title      string
	Body       string
	Type       models.PostType
	ImageURL   string
	CategoryID *int64
	Location   string
	Contract   string
	// CoverObject names a cover uploaded with this form. It is deleted again if saving fails.
	CoverObject string
}

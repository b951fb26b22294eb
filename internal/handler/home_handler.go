package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"intwork/internal/render"
	"intwork/internal/service"
)

type SearchPage struct {
	Query   string
	Results []service.PostCard
}

type JobsPage struct {
	Search string
	Jobs   []service.PostCard
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Home"}

	home, err := h.PostService.Home(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load home page", "error", err)
		data.Error = service.UserMessage(err, "Failed to load posts. Please try again later.")
		home = &service.HomePage{}
	}
	data.Data = home

	h.page(w, r, http.StatusOK, "home", data)
}

// Posts lists articles, filtered by ?category= and ?search=.
func (h *Handlers) Posts(w http.ResponseWriter, r *http.Request) {
	filter := service.ArticleFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}
	data := render.TemplateData{Title: "Articles"}

	articles, err := h.PostService.Articles(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load articles", "error", err)
		data.Error = service.UserMessage(err, "Failed to load articles.")
		articles = &service.ArticlesPage{Filter: filter}
	}
	data.Data = articles

	h.page(w, r, http.StatusOK, "posts", data)
}

func (h *Handlers) Jobs(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	data := render.TemplateData{Title: "Jobs"}

	jobs, err := h.PostService.Jobs(r.Context(), search)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load jobs", "error", err)
		data.Error = service.UserMessage(err, "Failed to load jobs.")
	}
	data.Data = JobsPage{Search: search, Jobs: jobs}

	h.page(w, r, http.StatusOK, "jobs", data)
}

// Search forwards ?q= to the API search endpoint. An empty query shows an empty page.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	data := render.TemplateData{Title: "Search"}

	results, err := h.PostService.Search(r.Context(), query)
	if err != nil {
		slog.ErrorContext(r.Context(), "search failed", "query", query, "error", err)
		data.Error = service.UserMessage(err, "Search failed. Please try again.")
	}
	data.Data = SearchPage{Query: query, Results: results}

	h.page(w, r, http.StatusOK, "search", data)
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler reports whether the session database answers.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeSuccess(w, HealthResponse{Status: "ok", Database: "not configured"}, http.StatusOK)
		return
	}

	if err := h.DB.HealthCheck(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		writeError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "ok"}, http.StatusOK)
}

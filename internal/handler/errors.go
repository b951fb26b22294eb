package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"intwork/internal/render"
	"intwork/internal/session"
)

// ErrorResponse is the JSON body of a failed non-HTML request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// page renders a full page. A template failure is logged and answered with a plain 500.
func (h *Handlers) page(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.Renderer.RenderStatus(w, r, status, name, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "The page you are looking for does not exist."
	}
	h.page(w, r, http.StatusNotFound, "error", render.TemplateData{
		Title: "Not found",
		Error: message,
	})
}

// NotFound is the router's fallback for unknown paths.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, "")
}

// flashAndRedirect stores a one-shot message and redirects with 303 so the
// browser follows up with a GET.
func (h *Handlers) flashAndRedirect(w http.ResponseWriter, r *http.Request, target, message, kind string) {
	h.Sessions.SetFlash(r.Context(), w, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handlers) flashError(w http.ResponseWriter, r *http.Request, target, message string) {
	h.flashAndRedirect(w, r, target, message, session.FlashError)
}

func (h *Handlers) flashSuccess(w http.ResponseWriter, r *http.Request, target, message string) {
	h.flashAndRedirect(w, r, target, message, session.FlashSuccess)
}

// redirectToLogin sends a logged-out visitor to the login page, remembering where they were.
func redirectToLogin(w http.ResponseWriter, r *http.Request, returnTo string) {
	target := "/login"
	if safeReturnPath(returnTo) {
		target += "?next=" + url.QueryEscape(returnTo)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeReturnPath accepts only local absolute paths.
func safeReturnPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}

// pathID reads a positive numeric route variable.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID reads an optional numeric query parameter; anything invalid counts as absent.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// backTo returns the local page the form was posted from, or fallback.
func backTo(r *http.Request, fallback string) string {
	if next := r.PostFormValue("next"); safeReturnPath(next) {
		return next
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && safeReturnPath(ref.Path) {
		if ref.RawQuery != "" {
			return ref.Path + "?" + ref.RawQuery
		}
		return ref.Path
	}
	return fallback
}

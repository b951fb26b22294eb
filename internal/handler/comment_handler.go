package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/validation"
)

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := backTo(r, postPath(postID)) + "#comments"

	if !session.FromContext(r.Context()).LoggedIn() {
		redirectToLogin(w, r, postPath(postID))
		return
	}

	form := validation.CommentForm{Content: strings.TrimSpace(r.PostFormValue("content"))}
	if err := h.Validate.Struct(form); err != nil {
		h.flashError(w, r, back, validation.First(validation.FieldErrors(err), "content"))
		return
	}

	if _, err := h.CommentService.Add(r.Context(), postID, form.Content); err != nil {
		slog.ErrorContext(r.Context(), "failed to add comment", "post_id", postID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to add comment."))
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

// EditComment expects the owning post id in the post_id field to know where to return.
func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := commentReturnPath(r)

	form := validation.CommentForm{Content: strings.TrimSpace(r.PostFormValue("content"))}
	if err := h.Validate.Struct(form); err != nil {
		h.flashError(w, r, back, validation.First(validation.FieldErrors(err), "content"))
		return
	}

	if err := h.CommentService.Edit(r.Context(), commentID, form.Content); err != nil {
		slog.ErrorContext(r.Context(), "failed to edit comment", "comment_id", commentID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to update comment."))
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := commentReturnPath(r)

	if err := h.CommentService.Delete(r.Context(), commentID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete comment", "comment_id", commentID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to delete comment."))
		return
	}

	h.flashSuccess(w, r, back, "Comment deleted.")
}

func commentReturnPath(r *http.Request) string {
	postID, err := strconv.ParseInt(r.PostFormValue("post_id"), 10, 64)
	if err != nil || postID <= 0 {
		return backTo(r, "/")
	}
	return fmt.Sprintf("/posts/%d#comments", postID)
}

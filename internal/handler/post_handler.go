package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/validation"
)

type PostDetailPage struct {
	*service.PostDetail
	// EditingComment is the comment shown with an edit box, 0 for none.
	EditingComment int64
}

type PostFormPage struct {
	PostID        int64
	Type          models.PostType
	Form          validation.PostForm
	CategoryID    int64
	Categories    []models.Category
	Errors        map[string]string
	CoversEnabled bool
	MaxUpload     int64
}

func (p PostFormPage) Editing() bool {
	return p.PostID != 0
}

func (p PostFormPage) IsJob() bool {
	return p.Type == models.PostTypeJob
}

// PostDetail serves /posts/{id}, /posts/{id}/{slug} and /jobs/{id}/{slug}.
// Any other spelling of the path is redirected to the canonical one.
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	detail, err := h.PostService.Detail(r.Context(), postID)
	if err != nil {
		if service.IsNotFound(err) {
			h.notFound(w, r, "Post not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to load post", "post_id", postID, "error", err)
		h.page(w, r, http.StatusOK, "error", render.TemplateData{
			Title: "Error",
			Error: service.UserMessage(err, "Failed to load post."),
		})
		return
	}

	if r.URL.Path != detail.Card.Path {
		target := detail.Card.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	h.page(w, r, http.StatusOK, "post_detail", render.TemplateData{
		Title: detail.Card.Title,
		Data: PostDetailPage{
			PostDetail:     detail,
			EditingComment: queryID(r, "edit_comment"),
		},
	})
}

// LikePost never calls the API for a logged-out visitor.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := backTo(r, postPath(postID))

	if !session.FromContext(r.Context()).LoggedIn() {
		redirectToLogin(w, r, back)
		return
	}

	if err := h.PostService.Like(r.Context(), postID); err != nil {
		slog.ErrorContext(r.Context(), "failed to like post", "post_id", postID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to like post."))
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

// CreatePostForm is the two-step create page: without ?type= it asks for the post type.
func (h *Handlers) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	postType := models.PostType(strings.ToUpper(r.URL.Query().Get("type")))
	if postType != models.PostTypeArticle && postType != models.PostTypeJob {
		h.page(w, r, http.StatusOK, "create_type", render.TemplateData{Title: "Create post"})
		return
	}

	h.renderPostForm(w, r, http.StatusOK, PostFormPage{
		Type: postType,
		Form: validation.PostForm{Type: string(postType)},
	})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	input, formPage, ok := h.readPostForm(w, r, 0)
	if !ok {
		return
	}

	created, err := h.PostService.Create(r.Context(), *input)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create post", "error", err)
		formPage.Errors = map[string]string{"form": service.UserMessage(err, "Failed to create post.")}
		h.renderPostForm(w, r, http.StatusOK, *formPage)
		return
	}

	h.flashSuccess(w, r, service.NewPostCard(*created).Path, "Post created successfully!")
}

func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	input, err := h.PostService.EditForm(r.Context(), postID)
	if err != nil {
		if service.IsNotFound(err) {
			h.notFound(w, r, "Post not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to load post for editing", "post_id", postID, "error", err)
		h.flashError(w, r, "/", service.UserMessage(err, "Failed to load post."))
		return
	}

	formPage := PostFormPage{
		PostID: postID,
		Type:   input.Type,
		Form: validation.PostForm{
			Title:    input.Title,
			Content:  input.Body,
			Type:     string(input.Type),
			ImageURL: input.ImageURL,
			Location: input.Location,
			Contract: input.Contract,
		},
	}
	if input.CategoryID != nil {
		formPage.CategoryID = *input.CategoryID
	}

	h.renderPostForm(w, r, http.StatusOK, formPage)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	input, formPage, ok := h.readPostForm(w, r, postID)
	if !ok {
		return
	}

	updated, err := h.PostService.Update(r.Context(), postID, *input)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update post", "post_id", postID, "error", err)
		formPage.Errors = map[string]string{"form": service.UserMessage(err, "Failed to update post.")}
		h.renderPostForm(w, r, http.StatusOK, *formPage)
		return
	}

	if updated == nil || updated.ID == 0 {
		h.flashSuccess(w, r, postPath(postID), "Post updated successfully!")
		return
	}
	h.flashSuccess(w, r, service.NewPostCard(*updated).Path, "Post updated successfully!")
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	if err := h.PostService.Delete(r.Context(), postID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete post", "post_id", postID, "error", err)
		h.flashError(w, r, postPath(postID), service.UserMessage(err, "Failed to delete post."))
		return
	}

	h.flashSuccess(w, r, "/", "Post deleted successfully.")
}

// readPostForm parses and validates the create/edit form, uploading the cover
// image when one was attached. On failure it renders the form itself and returns false.
func (h *Handlers) readPostForm(w http.ResponseWriter, r *http.Request, postID int64) (*service.PostInput, *PostFormPage, bool) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.flashError(w, r, r.URL.Path, "The form could not be read. Is the image too large?")
		return nil, nil, false
	}

	form := validation.PostForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Content:  strings.TrimSpace(r.PostFormValue("content")),
		Type:     strings.ToUpper(r.PostFormValue("type")),
		ImageURL: strings.TrimSpace(r.PostFormValue("image_url")),
		Location: strings.TrimSpace(r.PostFormValue("location")),
		Contract: strings.TrimSpace(r.PostFormValue("contract")),
	}
	formPage := &PostFormPage{
		PostID: postID,
		Type:   models.PostType(form.Type),
		Form:   form,
	}
	if id, err := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64); err == nil && id > 0 {
		formPage.CategoryID = id
	}

	if err := h.Validate.Struct(form); err != nil {
		formPage.Errors = validation.FieldErrors(err)
		h.renderPostForm(w, r, http.StatusUnprocessableEntity, *formPage)
		return nil, nil, false
	}

	input := &service.PostInput{
		Title:    form.Title,
		Body:     form.Content,
		Type:     models.PostType(form.Type),
		ImageURL: form.ImageURL,
		Location: form.Location,
		Contract: form.Contract,
	}

	// The cover is uploaded only once the rest of the form is valid.
	if file, header, ok := formFile(r, "cover"); ok {
		defer file.Close()
		objectName, imageURL, err := h.PostService.UploadCover(r.Context(), header.Filename, file, header.Size)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to upload cover", "error", err)
			formPage.Errors = map[string]string{"cover": service.UserMessage(err, "Failed to upload image.")}
			h.renderPostForm(w, r, http.StatusUnprocessableEntity, *formPage)
			return nil, nil, false
		}
		input.ImageURL = imageURL
		input.CoverObject = objectName
		formPage.Form.ImageURL = imageURL
	}
	if formPage.CategoryID != 0 {
		id := formPage.CategoryID
		input.CategoryID = &id
	}
	return input, formPage, true
}

// renderPostForm fills in categories and upload settings. Missing categories only hide the selector.
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, status int, formPage PostFormPage) {
	categories, err := h.PostService.Categories(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "failed to load categories", "error", err)
	}
	formPage.Categories = categories
	formPage.CoversEnabled = h.PostService.CoversEnabled()
	formPage.MaxUpload = h.Cfg.MaxUploadSize

	title := "Create post"
	if formPage.Editing() {
		title = "Edit post"
	}
	h.page(w, r, status, "post_form", render.TemplateData{Title: title, Data: formPage})
}

// formFile returns the named upload of a multipart form, if any.
func formFile(r *http.Request, name string) (multipart.File, *multipart.FileHeader, bool) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[name]) == 0 {
		return nil, nil, false
	}
	header := r.MultipartForm.File[name][0]
	if header.Size == 0 && header.Filename == "" {
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, false
	}
	return file, header, true
}

func postPath(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

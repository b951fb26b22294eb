package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/validation"
)

// formOverhead is allowed on top of the upload limit for the text fields of a multipart form.
const formOverhead = 1 << 20

type ApplyPage struct {
	Job       service.PostCard
	Form      validation.ApplicationForm
	Errors    map[string]string
	MaxUpload int64
}

type ApplicationsView struct {
	*service.ApplicationsPage
	Statuses []models.ApplicationStatus
}

// StatusCount returns the number of applications with the given status before filtering.
func (v ApplicationsView) StatusCount(status models.ApplicationStatus) int {
	return v.Counts[status]
}

func (h *Handlers) ApplyForm(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	if !session.FromContext(r.Context()).LoggedIn() {
		redirectToLogin(w, r, r.URL.Path)
		return
	}

	job, ok := h.loadJob(w, r, postID)
	if !ok {
		return
	}

	h.page(w, r, http.StatusOK, "apply", render.TemplateData{
		Title: "Apply for " + job.Title,
		Data:  ApplyPage{Job: *job, MaxUpload: h.Cfg.MaxUploadSize},
	})
}

func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	if !session.FromContext(r.Context()).LoggedIn() {
		redirectToLogin(w, r, r.URL.Path)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.flashError(w, r, r.URL.Path, service.UserMessage(service.ErrCVTooLarge, ""))
		return
	}

	job, ok := h.loadJob(w, r, postID)
	if !ok {
		return
	}

	form := validation.ApplicationForm{
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Phone:       strings.TrimSpace(r.PostFormValue("phone")),
		CoverLetter: strings.TrimSpace(r.PostFormValue("cover_letter")),
	}
	applyPage := ApplyPage{Job: *job, Form: form, MaxUpload: h.Cfg.MaxUploadSize}

	renderForm := func(status int, errs map[string]string) {
		applyPage.Errors = errs
		h.page(w, r, status, "apply", render.TemplateData{
			Title: "Apply for " + job.Title,
			Data:  applyPage,
		})
	}

	if err := h.Validate.Struct(form); err != nil {
		renderForm(http.StatusUnprocessableEntity, validation.FieldErrors(err))
		return
	}

	input := service.ApplicationInput{
		JobPostID:   postID,
		FullName:    form.FullName,
		Email:       form.Email,
		Phone:       form.Phone,
		CoverLetter: form.CoverLetter,
	}
	if file, header, ok := formFile(r, "cv"); ok {
		data, err := io.ReadAll(io.LimitReader(file, h.Cfg.MaxUploadSize+1))
		file.Close()
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to read CV upload", "error", err)
			renderForm(http.StatusUnprocessableEntity, map[string]string{"cv": "The CV could not be read."})
			return
		}
		input.CV = data
		input.CVFileName = header.Filename
	}

	if err := h.ApplicationService.Submit(r.Context(), input); err != nil {
		var status int
		switch {
		case errors.Is(err, service.ErrCVRequired), errors.Is(err, service.ErrNotPDF), errors.Is(err, service.ErrCVTooLarge):
			status = http.StatusUnprocessableEntity
		default:
			slog.ErrorContext(r.Context(), "failed to submit application", "post_id", postID, "error", err)
			status = http.StatusOK
		}
		renderForm(status, map[string]string{"form": service.UserMessage(err, "Failed to submit application. Please try again.")})
		return
	}

	h.flashSuccess(w, r, job.Path, "Application submitted successfully!")
}

// loadJob fetches the post being applied to. It answers the request itself when that fails.
func (h *Handlers) loadJob(w http.ResponseWriter, r *http.Request, postID int64) (*service.PostCard, bool) {
	detail, err := h.PostService.Detail(r.Context(), postID)
	if err != nil {
		if service.IsNotFound(err) {
			h.notFound(w, r, "Job not found")
			return nil, false
		}
		slog.ErrorContext(r.Context(), "failed to load job", "post_id", postID, "error", err)
		h.flashError(w, r, "/jobs", service.UserMessage(err, "Failed to load job."))
		return nil, false
	}
	return &detail.Card, true
}

// Applications is the staff view of the applications of one job, filtered by ?status=.
func (h *Handlers) Applications(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Applications"}

	page, err := h.ApplicationService.Page(r.Context(), queryID(r, "job"), r.URL.Query().Get("status"))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load applications", "error", err)
		data.Error = service.UserMessage(err, "Failed to load applications.")
		page = &service.ApplicationsPage{Status: service.StatusAll}
	}
	data.Data = ApplicationsView{ApplicationsPage: page, Statuses: models.ApplicationStatuses}

	h.page(w, r, http.StatusOK, "applications", data)
}

func (h *Handlers) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := applicationsPath(r)

	if err := h.ApplicationService.UpdateStatus(r.Context(), applicationID, r.PostFormValue("status")); err != nil {
		slog.ErrorContext(r.Context(), "failed to update application status", "application_id", applicationID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to update status."))
		return
	}

	h.flashSuccess(w, r, back, "Application status updated.")
}

func (h *Handlers) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	back := applicationsPath(r)

	if err := h.ApplicationService.Delete(r.Context(), applicationID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete application", "application_id", applicationID, "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to delete application."))
		return
	}

	h.flashSuccess(w, r, back, "Application deleted.")
}

// ApplicationCV serves the stored CV inline, or as a download with ?download=1.
func (h *Handlers) ApplicationCV(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r, "job")
	if !ok {
		h.notFound(w, r, "")
		return
	}
	applicationID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	cv, err := h.ApplicationService.CV(r.Context(), jobID, applicationID)
	if err != nil {
		if errors.Is(err, service.ErrCVUnsafe) {
			slog.WarnContext(r.Context(), "refusing to serve non-PDF CV", "application_id", applicationID)
		} else if !errors.Is(err, service.ErrCVMissing) {
			slog.ErrorContext(r.Context(), "failed to load CV", "application_id", applicationID, "error", err)
		}
		h.flashError(w, r, fmt.Sprintf("/applications?job=%d", jobID), service.UserMessage(err, "Failed to load CV."))
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") != "" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", cv.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": cv.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(cv.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "sandbox; default-src 'none'")
	w.WriteHeader(http.StatusOK)
	w.Write(cv.Data)
}

func (h *Handlers) MyApplications(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "My applications"}

	applications, err := h.ApplicationService.Mine(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load own applications", "error", err)
		data.Error = service.UserMessage(err, "Failed to load your applications.")
	}
	data.Data = applications

	h.page(w, r, http.StatusOK, "my_applications", data)
}

// applicationsPath rebuilds the applications page the form was posted from.
func applicationsPath(r *http.Request) string {
	query := url.Values{}
	if job := r.PostFormValue("job"); job != "" {
		query.Set("job", job)
	}
	if status := r.PostFormValue("filter"); status != "" {
		query.Set("status", status)
	}
	if len(query) == 0 {
		return "/applications"
	}
	return "/applications?" + query.Encode()
}

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
)

type SubscriptionPage struct {
	Email  string
	Status *models.SubscriptionStatus
}

type VerifyPage struct {
	Verified bool
	Message  string
}

// Subscribe handles the footer form. The address is validated before any request is made.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	back := backTo(r, "/")

	msg, err := h.SubscriberService.Subscribe(r.Context(), email)
	if err != nil {
		slog.WarnContext(r.Context(), "subscribe failed", "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to subscribe. Please try again."))
		return
	}

	h.flashSuccess(w, r, back, msg)
}

func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	back := backTo(r, "/subscription")

	msg, err := h.SubscriberService.Unsubscribe(r.Context(), email)
	if err != nil {
		slog.WarnContext(r.Context(), "unsubscribe failed", "error", err)
		h.flashError(w, r, back, service.UserMessage(err, "Failed to unsubscribe. Please try again."))
		return
	}

	h.flashSuccess(w, r, back, msg)
}

// Subscription shows the status of ?email= and offers to unsubscribe.
func (h *Handlers) Subscription(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	data := render.TemplateData{Title: "Subscription"}
	subscriptionPage := SubscriptionPage{Email: email}

	if email != "" {
		status, err := h.SubscriberService.Check(r.Context(), email)
		if err != nil {
			slog.WarnContext(r.Context(), "subscription check failed", "error", err)
			data.Error = service.UserMessage(err, "Failed to check subscription.")
		}
		subscriptionPage.Status = status
	}
	data.Data = subscriptionPage

	h.page(w, r, http.StatusOK, "subscription", data)
}

// VerifyEmail is the target of the link in the confirmation email.
func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	verifyPage := VerifyPage{}

	msg, err := h.SubscriberService.Verify(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		slog.WarnContext(r.Context(), "email verification failed", "error", err)
		verifyPage.Message = service.UserMessage(err, "Verification failed. The link may have expired.")
	} else {
		verifyPage.Verified = true
		verifyPage.Message = msg
	}

	h.page(w, r, http.StatusOK, "verify_email", render.TemplateData{Title: "Verify email", Data: verifyPage})
}

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/validation"
)

type ProfilePage struct {
	Form   validation.ProfileForm
	Errors map[string]string
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Profile"}

	profile, err := h.ProfileService.Get(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load profile", "error", err)
		data.Error = service.UserMessage(err, "Failed to load profile.")
		profile = &models.Profile{}
	}
	data.Data = ProfilePage{Form: validation.ProfileForm{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
		Street:    profile.Street,
		HouseNr:   profile.HouseNr,
		City:      profile.City,
		Zip:       profile.Zip,
	}}

	h.page(w, r, http.StatusOK, "profile", data)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	form := validation.ProfileForm{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		AvatarURL: strings.TrimSpace(r.PostFormValue("avatar_url")),
		Street:    strings.TrimSpace(r.PostFormValue("street")),
		HouseNr:   strings.TrimSpace(r.PostFormValue("house_nr")),
		City:      strings.TrimSpace(r.PostFormValue("city")),
		Zip:       strings.TrimSpace(r.PostFormValue("zip")),
	}
	profilePage := ProfilePage{Form: form}

	if err := h.Validate.Struct(form); err != nil {
		profilePage.Errors = validation.FieldErrors(err)
		h.page(w, r, http.StatusUnprocessableEntity, "profile", render.TemplateData{Title: "Profile", Data: profilePage})
		return
	}

	err := h.ProfileService.Update(r.Context(), models.Profile{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		AvatarURL: form.AvatarURL,
		Street:    form.Street,
		HouseNr:   form.HouseNr,
		City:      form.City,
		Zip:       form.Zip,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update profile", "error", err)
		profilePage.Errors = map[string]string{"form": service.UserMessage(err, "Failed to update profile.")}
		h.page(w, r, http.StatusOK, "profile", render.TemplateData{Title: "Profile", Data: profilePage})
		return
	}

	h.flashSuccess(w, r, "/profile", "Profile updated successfully!")
}

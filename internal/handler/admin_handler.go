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

type ManageUsersPage struct {
	Filter service.UserFilter
	Users  []models.User
	Roles  []models.Role
}

type UserEditPage struct {
	UserID int64
	Form   validation.UserEditForm
	Errors map[string]string
	Roles  []models.Role
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  h.DashboardService.Stats(r.Context()),
	})
}

func (h *Handlers) ManageUsers(w http.ResponseWriter, r *http.Request) {
	filter := service.UserFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Role:  strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("role"))),
	}
	data := render.TemplateData{Title: "Manage users"}

	users, err := h.UserService.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load users", "error", err)
		data.Error = service.UserMessage(err, "Failed to load users.")
	}
	data.Data = ManageUsersPage{Filter: filter, Users: users, Roles: models.Roles}

	h.page(w, r, http.StatusOK, "manage_users", data)
}

func (h *Handlers) EditUserForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	user, err := h.UserService.Get(r.Context(), userID)
	if err != nil {
		if service.IsNotFound(err) {
			h.notFound(w, r, "User not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to load user", "user_id", userID, "error", err)
		h.flashError(w, r, "/manage-users", service.UserMessage(err, "Failed to load user."))
		return
	}

	h.page(w, r, http.StatusOK, "user_edit", render.TemplateData{
		Title: "Edit user",
		Data: UserEditPage{
			UserID: userID,
			Form: validation.UserEditForm{
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Email:     user.Email,
				Role:      string(user.Role),
			},
			Roles: models.Roles,
		},
	})
}

// UpdateUser saves the edit form. The saved row comes back from the service,
// so the list is not refetched before redirecting to it.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	form := validation.UserEditForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Role:      strings.ToUpper(strings.TrimSpace(r.PostFormValue("role"))),
	}
	editPage := UserEditPage{UserID: userID, Form: form, Roles: models.Roles}

	if err := h.Validate.Struct(form); err != nil {
		editPage.Errors = validation.FieldErrors(err)
		h.page(w, r, http.StatusUnprocessableEntity, "user_edit", render.TemplateData{Title: "Edit user", Data: editPage})
		return
	}

	saved, err := h.UserService.Update(r.Context(), userID, service.UserInput{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Role:      models.Role(form.Role),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update user", "user_id", userID, "error", err)
		editPage.Errors = map[string]string{"form": service.UserMessage(err, "Failed to update user.")}
		h.page(w, r, http.StatusOK, "user_edit", render.TemplateData{Title: "Edit user", Data: editPage})
		return
	}

	h.flashSuccess(w, r, "/manage-users", "User "+saved.Username+" updated.")
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, "")
		return
	}

	if err := h.UserService.Delete(r.Context(), userID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete user", "user_id", userID, "error", err)
		h.flashError(w, r, "/manage-users", service.UserMessage(err, "Failed to delete user."))
		return
	}

	h.flashSuccess(w, r, "/manage-users", "User deleted.")
}

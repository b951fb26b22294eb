package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/internal/validation"
)

type LoginPage struct {
	Form   validation.LoginForm
	Errors map[string]string
	Next   string
}

type RegisterPage struct {
	Form   validation.RegisterForm
	Errors map[string]string
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).LoggedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	next := r.URL.Query().Get("next")
	if !safeReturnPath(next) {
		next = ""
	}
	h.page(w, r, http.StatusOK, "login", render.TemplateData{
		Title: "Login",
		Data:  LoginPage{Next: next},
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := validation.LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	loginPage := LoginPage{Form: validation.LoginForm{Username: form.Username}}
	if next := r.PostFormValue("next"); safeReturnPath(next) {
		loginPage.Next = next
	}

	if err := h.Validate.Struct(form); err != nil {
		loginPage.Errors = validation.FieldErrors(err)
		h.page(w, r, http.StatusUnprocessableEntity, "login", render.TemplateData{Title: "Login", Data: loginPage})
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		slog.WarnContext(r.Context(), "login failed", "username", form.Username, "error", err)
		loginPage.Errors = map[string]string{"form": service.LoginErrorMessage(err)}
		h.page(w, r, http.StatusOK, "login", render.TemplateData{Title: "Login", Data: loginPage})
		return
	}

	if err := h.Sessions.Login(r.Context(), w, token, user); err != nil {
		slog.ErrorContext(r.Context(), "failed to store session", "error", err)
		loginPage.Errors = map[string]string{"form": "Server error. Please try again later."}
		h.page(w, r, http.StatusOK, "login", render.TemplateData{Title: "Login", Data: loginPage})
		return
	}

	target := loginPage.Next
	if target == "" {
		target = "/"
	}
	h.flashSuccess(w, r, target, "Welcome back, "+user.Username+"!")
}

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).LoggedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.page(w, r, http.StatusOK, "register", render.TemplateData{Title: "Register", Data: RegisterPage{}})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	form := validation.RegisterForm{
		FirstName:       strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:        strings.TrimSpace(r.PostFormValue("last_name")),
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	registerPage := RegisterPage{Form: validation.RegisterForm{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
	}}

	if err := h.Validate.Struct(form); err != nil {
		registerPage.Errors = validation.FieldErrors(err)
		h.page(w, r, http.StatusUnprocessableEntity, "register", render.TemplateData{Title: "Register", Data: registerPage})
		return
	}

	err := h.AuthService.Register(r.Context(), models.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Password:  form.Password,
	})
	if err != nil {
		slog.WarnContext(r.Context(), "registration failed", "username", form.Username, "error", err)
		registerPage.Errors = map[string]string{"form": service.UserMessage(err, "Registration failed. Please try again.")}
		h.page(w, r, http.StatusOK, "register", render.TemplateData{Title: "Register", Data: registerPage})
		return
	}

	h.flashSuccess(w, r, "/login", "Registration successful! Please log in.")
}

// Logout clears the session and returns to the home page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete session", "error", err)
	}
	h.flashSuccess(w, r, "/", "You have been logged out.")
}

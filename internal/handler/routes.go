package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"intwork/internal/middleware"
	"intwork/internal/models"
)

// Routes builds the router with every page of the site. Sessions are loaded
// before any handler runs; role checks only decide which pages are shown.
func (h *Handlers) Routes() http.Handler {
	r := mux.NewRouter()
	r.StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	loggedIn := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireLogin(fn)
	}
	staff := func(fn http.HandlerFunc) http.Handler {
		return middleware.RoleMiddleware(models.RoleAdmin, models.RoleManager)(fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.RoleMiddleware(models.RoleAdmin)(fn)
	}

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/posts", h.Posts).Methods(http.MethodGet)
	r.HandleFunc("/jobs", h.Jobs).Methods(http.MethodGet)
	r.HandleFunc("/search", h.Search).Methods(http.MethodGet)

	r.HandleFunc("/posts/{id:[0-9]+}", h.PostDetail).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/apply", h.ApplyForm).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/apply", h.SubmitApplication).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/like", h.LikePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/comments", h.AddComment).Methods(http.MethodPost)
	r.Handle("/posts/{id:[0-9]+}/delete", loggedIn(h.DeletePost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/{slug}", h.PostDetail).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{id:[0-9]+}/{slug}", h.PostDetail).Methods(http.MethodGet)

	r.Handle("/comments/{id:[0-9]+}/edit", loggedIn(h.EditComment)).Methods(http.MethodPost)
	r.Handle("/comments/{id:[0-9]+}/delete", loggedIn(h.DeleteComment)).Methods(http.MethodPost)

	r.Handle("/create", loggedIn(h.CreatePostForm)).Methods(http.MethodGet)
	r.Handle("/create", loggedIn(h.CreatePost)).Methods(http.MethodPost)
	r.Handle("/edit/{id:[0-9]+}", loggedIn(h.EditPostForm)).Methods(http.MethodGet)
	r.Handle("/edit/{id:[0-9]+}", loggedIn(h.UpdatePost)).Methods(http.MethodPost)

	r.Handle("/applications", staff(h.Applications)).Methods(http.MethodGet)
	r.Handle("/applications/{id:[0-9]+}/status", staff(h.UpdateApplicationStatus)).Methods(http.MethodPost)
	r.Handle("/applications/{id:[0-9]+}/delete", staff(h.DeleteApplication)).Methods(http.MethodPost)
	r.Handle("/applications/{job:[0-9]+}/{id:[0-9]+}/cv", staff(h.ApplicationCV)).Methods(http.MethodGet)
	r.Handle("/my-applications", loggedIn(h.MyApplications)).Methods(http.MethodGet)

	r.Handle("/admin", staff(h.Dashboard)).Methods(http.MethodGet)
	r.Handle("/manage-users", admin(h.ManageUsers)).Methods(http.MethodGet)
	r.Handle("/manage-users/{id:[0-9]+}/edit", admin(h.EditUserForm)).Methods(http.MethodGet)
	r.Handle("/manage-users/{id:[0-9]+}", admin(h.UpdateUser)).Methods(http.MethodPost)
	r.Handle("/manage-users/{id:[0-9]+}/delete", admin(h.DeleteUser)).Methods(http.MethodPost)

	r.Handle("/profile", loggedIn(h.Profile)).Methods(http.MethodGet)
	r.Handle("/profile", loggedIn(h.UpdateProfile)).Methods(http.MethodPost)

	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/register", h.RegisterForm).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	r.HandleFunc("/subscribe", h.Subscribe).Methods(http.MethodPost)
	r.HandleFunc("/unsubscribe", h.Unsubscribe).Methods(http.MethodPost)
	r.HandleFunc("/subscription", h.Subscription).Methods(http.MethodGet)
	r.HandleFunc("/verify-email", h.VerifyEmail).Methods(http.MethodGet)

	return middleware.Chain(
		r,
		h.Sessions.LoadSession,
		middleware.SecurityHeadersMiddleware,
		middleware.RecoverMiddleware,
		middleware.LoggingMiddleware,
	)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intwork/internal/apiclient"
	"intwork/internal/models"
	"intwork/internal/repository"
	"intwork/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, models.UserView, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

type authService struct {
	authRepo repository.AuthRepository
}

func NewAuthService(authRepo repository.AuthRepository) AuthService {
	return &authService{authRepo: authRepo}
}

// Login exchanges the credentials for a token and decodes the display identity from it.
func (s *authService) Login(ctx context.Context, username, password string) (string, models.UserView, error) {
	token, err := s.authRepo.Login(ctx, models.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return "", models.UserView{}, err
	}

	user, err := session.DecodeToken(token)
	if err != nil {
		return "", models.UserView{}, fmt.Errorf("error decoding login token: %w", err)
	}
	return token, user, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Username = strings.TrimSpace(req.Username)
	return s.authRepo.Register(ctx, req)
}

// LoginErrorMessage turns a failed login into the message shown on the form.
func LoginErrorMessage(err error) string {
	if errors.Is(err, repository.ErrEmptyToken) || errors.Is(err, session.ErrMalformedToken) {
		return "Server error. Please try again later."
	}

	switch apiclient.KindOf(err) {
	case apiclient.KindUnauthorized, apiclient.KindForbidden:
		return "Invalid username or password. Please try again."
	case apiclient.KindValidation, apiclient.KindConflict, apiclient.KindNotFound:
		if msg := apiclient.MessageOf(err); msg != "" {
			return msg
		}
		return "Invalid username or password. Please try again."
	case apiclient.KindServer:
		return "Server error. Please try again later."
	case apiclient.KindNetwork:
		return "Unable to connect to server. Please check your connection."
	}
	return "Login failed. Please try again."
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

var ErrEmptyToken = errors.New("login response carried no token")

type authRepository struct {
	api *apiclient.Client
}

func NewAuthRepository(api *apiclient.Client) AuthRepository {
	return &authRepository{api: api}
}

func (r *authRepository) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := r.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return "", fmt.Errorf("error logging in: %w", err)
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	return resp.Token, nil
}

func (r *authRepository) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := r.api.Post(ctx, "/auth/register", req, nil); err != nil {
		return fmt.Errorf("error registering user: %w", err)
	}
	return nil
}

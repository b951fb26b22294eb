package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type userRepository struct {
	api *apiclient.Client
}

func NewUserRepository(api *apiclient.Client) UserRepository {
	return &userRepository{api: api}
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, "/admin/users", nil, &raw); err != nil {
		return nil, fmt.Errorf("error getting users: %w", err)
	}
	return apiclient.DecodeList[models.User](raw)
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	if err := r.api.Get(ctx, fmt.Sprintf("/admin/users/%d", userID), nil, &user); err != nil {
		return nil, fmt.Errorf("error getting user %d: %w", userID, err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, userID int64, user models.User) error {
	if err := r.api.Put(ctx, fmt.Sprintf("/admin/users/%d", userID), user, nil); err != nil {
		return fmt.Errorf("error updating user %d: %w", userID, err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/admin/users/%d", userID), nil, nil); err != nil {
		return fmt.Errorf("error deleting user %d: %w", userID, err)
	}
	return nil
}

type profileRepository struct {
	api *apiclient.Client
}

func NewProfileRepository(api *apiclient.Client) ProfileRepository {
	return &profileRepository{api: api}
}

func (r *profileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := r.api.Get(ctx, "/profile", nil, &profile); err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile models.Profile) error {
	if err := r.api.Put(ctx, "/profile", profile, nil); err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

type categoryRepository struct {
	api *apiclient.Client
}

func NewCategoryRepository(api *apiclient.Client) CategoryRepository {
	return &categoryRepository{api: api}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, "/api/categories", nil, &raw); err != nil {
		return nil, fmt.Errorf("error getting categories: %w", err)
	}
	return apiclient.DecodeList[models.Category](raw)
}

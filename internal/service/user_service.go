package service

import (
	"context"
	"strings"

	"intwork/internal/models"
	"intwork/internal/repository"
)

type UserFilter struct {
	Query string
	Role  string
}

type UserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
}

type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Get(ctx context.Context, userID int64) (*models.User, error)
	Update(ctx context.Context, userID int64, input UserInput) (*models.User, error)
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// List matches Query as a case-insensitive substring of username, email or
// full name, and Role exactly.
func (s *userService) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	role := models.Role(strings.ToUpper(strings.TrimSpace(filter.Role)))
	if role == "ALL" {
		role = ""
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Username), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) &&
			!strings.Contains(strings.ToLower(u.FullName()), query) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Update merges the edited fields into the stored user and returns the saved
// row, so the caller can show the change without reloading the list.
func (s *userService) Update(ctx context.Context, userID int64, input UserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(input.Username)
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = strings.TrimSpace(input.Email)
	user.Role = input.Role

	if err := s.userRepo.Update(ctx, userID, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID int64) error {
	return s.userRepo.Delete(ctx, userID)
}

type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	return s.profileRepo.Get(ctx)
}

func (s *profileService) Update(ctx context.Context, profile models.Profile) error {
	return s.profileRepo.Update(ctx, profile)
}

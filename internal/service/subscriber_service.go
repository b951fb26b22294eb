package service

import (
	"context"
	"errors"
	"strings"

	"intwork/internal/apiclient"
	"intwork/internal/models"
	"intwork/internal/repository"
	"intwork/internal/validation"
)

const (
	defaultSubscribeMessage   = "Please check your email to verify your subscription!"
	defaultUnsubscribeMessage = "You have been unsubscribed."
	defaultVerifyMessage      = "Email verified successfully!"
)

type SubscriberService interface {
	Subscribe(ctx context.Context, email string) (string, error)
	Unsubscribe(ctx context.Context, email string) (string, error)
	Check(ctx context.Context, email string) (*models.SubscriptionStatus, error)
	Verify(ctx context.Context, token string) (string, error)
}

type subscriberService struct {
	subscriberRepo repository.SubscriberRepository
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepository) SubscriberService {
	return &subscriberService{subscriberRepo: subscriberRepo}
}

// Subscribe validates the address locally first; an invalid address never reaches the API.
func (s *subscriberService) Subscribe(ctx context.Context, email string) (string, error) {
	if msg := validation.ValidateEmail(email); msg != "" {
		return "", &ValidationError{Message: msg}
	}

	msg, err := s.subscriberRepo.Subscribe(ctx, email)
	if err != nil {
		if errors.Is(err, apiclient.ErrConflict) {
			return "", ErrAlreadySubscribed
		}
		return "", err
	}
	return firstNonEmpty(msg, defaultSubscribeMessage), nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, email string) (string, error) {
	if msg := validation.ValidateEmail(email); msg != "" {
		return "", &ValidationError{Message: msg}
	}

	msg, err := s.subscriberRepo.Unsubscribe(ctx, email)
	if err != nil {
		return "", err
	}
	return firstNonEmpty(msg, defaultUnsubscribeMessage), nil
}

func (s *subscriberService) Check(ctx context.Context, email string) (*models.SubscriptionStatus, error) {
	if msg := validation.ValidateEmail(email); msg != "" {
		return nil, &ValidationError{Message: msg}
	}
	return s.subscriberRepo.Check(ctx, email)
}

// Verify fails without a request when the link carries no token.
func (s *subscriberService) Verify(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoVerifyToken
	}

	msg, err := s.subscriberRepo.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return firstNonEmpty(msg, defaultVerifyMessage), nil
}

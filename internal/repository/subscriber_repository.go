package repository

import (
	"context"
	"fmt"
	"net/url"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type subscriberRepository struct {
	api *apiclient.Client
}

type subscriberRequest struct {
	Email string `json:"email"`
}

func NewSubscriberRepository(api *apiclient.Client) SubscriberRepository {
	return &subscriberRepository{api: api}
}

func (r *subscriberRepository) Subscribe(ctx context.Context, email string) (string, error) {
	var resp models.MessageResponse
	if err := r.api.Post(ctx, "/api/subscribers", subscriberRequest{Email: email}, &resp); err != nil {
		return "", fmt.Errorf("error subscribing: %w", err)
	}
	return resp.Message, nil
}

func (r *subscriberRepository) Unsubscribe(ctx context.Context, email string) (string, error) {
	var resp models.MessageResponse
	if err := r.api.Delete(ctx, "/api/subscribers", subscriberRequest{Email: email}, &resp); err != nil {
		return "", fmt.Errorf("error unsubscribing: %w", err)
	}
	return resp.Message, nil
}

func (r *subscriberRepository) Check(ctx context.Context, email string) (*models.SubscriptionStatus, error) {
	var status models.SubscriptionStatus
	if err := r.api.Get(ctx, "/api/subscribers/check", url.Values{"email": {email}}, &status); err != nil {
		return nil, fmt.Errorf("error checking subscription: %w", err)
	}
	if status.Email == "" {
		status.Email = email
	}
	return &status, nil
}

func (r *subscriberRepository) Verify(ctx context.Context, token string) (string, error) {
	var resp models.MessageResponse
	if err := r.api.Get(ctx, "/api/subscribers/verify", url.Values{"token": {token}}, &resp); err != nil {
		return "", fmt.Errorf("error verifying subscriber: %w", err)
	}
	return resp.Message, nil
}

package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"intwork/internal/models"
	"intwork/internal/repository"
)

const recentApplications = 5

type DashboardService interface {
	Stats(ctx context.Context) *models.DashboardStats
}

type dashboardService struct {
	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	applicationRepo repository.ApplicationRepository

	missingStats sync.Once
}

func NewDashboardService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	applicationRepo repository.ApplicationRepository,
) DashboardService {
	return &dashboardService{
		userRepo:        userRepo,
		postRepo:        postRepo,
		applicationRepo: applicationRepo,
	}
}

// Stats fetches users, posts and the application aggregate in parallel. A
// source that fails is logged and counted as zero.
func (s *dashboardService) Stats(ctx context.Context) *models.DashboardStats {
	stats := &models.DashboardStats{}

	var g errgroup.Group
	g.Go(func() error {
		users, err := s.userRepo.GetAll(ctx)
		if err != nil {
			slog.WarnContext(ctx, "dashboard: failed to count users", "error", err)
			return nil
		}
		stats.TotalUsers = len(users)
		return nil
	})
	g.Go(func() error {
		posts, err := s.postRepo.GetAll(ctx)
		if err != nil {
			slog.WarnContext(ctx, "dashboard: failed to count posts", "error", err)
			return nil
		}
		for _, p := range posts {
			switch p.Type {
			case models.PostTypeArticle:
				stats.TotalArticles++
			case models.PostTypeJob:
				stats.TotalJobs++
			}
		}
		return nil
	})
	g.Go(func() error {
		appStats, err := s.applicationRepo.GetStats(ctx)
		if IsNotFound(err) {
			s.missingStats.Do(func() {
				slog.ErrorContext(ctx, "dashboard: the API has no GET /api/applications/stats endpoint, application totals will stay at zero")
			})
			return nil
		}
		if err != nil {
			slog.WarnContext(ctx, "dashboard: failed to load application stats", "error", err)
			return nil
		}
		stats.TotalApplications = appStats.Total
		stats.PendingApplications = appStats.Pending
		stats.RecentApplications = limit(appStats.Recent, recentApplications)
		return nil
	})
	_ = g.Wait()

	return stats
}

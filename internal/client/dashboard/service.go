package dashboard

import (
	"context"
	"fmt"

	"github.com/iudanet/hospctl/pkg/api"
)

// Service отдаёт сводку по отделению для главного экрана
type Service interface {
	Stats(ctx context.Context) (*api.DashboardStats, error)
}

type apiClient interface {
	Do(ctx context.Context, method, path string, body, result any) error
}

type service struct {
	client apiClient
}

// NewService creates a new dashboard service
func NewService(client apiClient) Service {
	return &service{client: client}
}

func (s *service) Stats(ctx context.Context) (*api.DashboardStats, error) {
	var stats api.DashboardStats
	if err := s.client.Do(ctx, "GET", "/dashboard/", nil, &stats); err != nil {
		return nil, fmt.Errorf("dashboard request failed: %w", err)
	}
	return &stats, nil
}

package surgeries

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iudanet/hospctl/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service определяет операции над ресурсом /surgeries/.
// Поле type нормализуется в tagged union на границе API (см. api.SurgeryType):
// дальше по коду три исторических формы сервера неразличимы.
type Service interface {
	List(ctx context.Context) ([]api.Surgery, error)
	Get(ctx context.Context, id string) (*api.Surgery, error)
	Create(ctx context.Context, req api.SurgeryRequest) (*api.Surgery, error)
}

type apiClient interface {
	Do(ctx context.Context, method, path string, body, result any) error
}

type service struct {
	client apiClient
}

// NewService creates a new surgeries service
func NewService(client apiClient) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context) ([]api.Surgery, error) {
	var surgeries []api.Surgery
	if err := s.client.Do(ctx, "GET", "/surgeries/", nil, &surgeries); err != nil {
		return nil, fmt.Errorf("list surgeries failed: %w", err)
	}
	return surgeries, nil
}

func (s *service) Get(ctx context.Context, id string) (*api.Surgery, error) {
	var surgery api.Surgery
	path := fmt.Sprintf("/surgeries/%s/", url.PathEscape(id))
	if err := s.client.Do(ctx, "GET", path, nil, &surgery); err != nil {
		return nil, fmt.Errorf("get surgery failed: %w", err)
	}
	return &surgery, nil
}

func (s *service) Create(ctx context.Context, req api.SurgeryRequest) (*api.Surgery, error) {
	var surgery api.Surgery
	if err := s.client.Do(ctx, "POST", "/surgeries/", req, &surgery); err != nil {
		return nil, fmt.Errorf("create surgery failed: %w", err)
	}
	return &surgery, nil
}

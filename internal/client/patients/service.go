package patients

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iudanet/hospctl/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service определяет операции над ресурсом /patients/
type Service interface {
	List(ctx context.Context) ([]api.Patient, error)
	Get(ctx context.Context, id string) (*api.Patient, error)
	Create(ctx context.Context, req api.PatientRequest) (*api.Patient, error)
	Update(ctx context.Context, id string, req api.PatientRequest) (*api.Patient, error)
	Delete(ctx context.Context, id string) error

	// AssignMedication назначает препарат пациенту.
	// Единственная каноническая форма запроса; перебор форм под разные
	// версии backend сознательно не поддерживается.
	AssignMedication(ctx context.Context, patientID string, req api.AssignMedicationRequest) error

	// AssignDietPlan назначает план питания пациенту
	AssignDietPlan(ctx context.Context, patientID string, req api.AssignDietPlanRequest) error
}

// apiClient - транспорт, через который уходят все запросы сервиса
type apiClient interface {
	Do(ctx context.Context, method, path string, body, result any) error
}

type service struct {
	client apiClient
}

// NewService creates a new patients service
func NewService(client apiClient) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context) ([]api.Patient, error) {
	var patients []api.Patient
	if err := s.client.Do(ctx, "GET", "/patients/", nil, &patients); err != nil {
		return nil, fmt.Errorf("list patients failed: %w", err)
	}
	return patients, nil
}

func (s *service) Get(ctx context.Context, id string) (*api.Patient, error) {
	var patient api.Patient
	path := fmt.Sprintf("/patients/%s/", url.PathEscape(id))
	if err := s.client.Do(ctx, "GET", path, nil, &patient); err != nil {
		return nil, fmt.Errorf("get patient failed: %w", err)
	}
	return &patient, nil
}

func (s *service) Create(ctx context.Context, req api.PatientRequest) (*api.Patient, error) {
	var patient api.Patient
	if err := s.client.Do(ctx, "POST", "/patients/", req, &patient); err != nil {
		return nil, fmt.Errorf("create patient failed: %w", err)
	}
	return &patient, nil
}

func (s *service) Update(ctx context.Context, id string, req api.PatientRequest) (*api.Patient, error) {
	var patient api.Patient
	path := fmt.Sprintf("/patients/%s/", url.PathEscape(id))
	if err := s.client.Do(ctx, "PUT", path, req, &patient); err != nil {
		return nil, fmt.Errorf("update patient failed: %w", err)
	}
	return &patient, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/patients/%s/", url.PathEscape(id))
	if err := s.client.Do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete patient failed: %w", err)
	}
	return nil
}

func (s *service) AssignMedication(ctx context.Context, patientID string, req api.AssignMedicationRequest) error {
	path := fmt.Sprintf("/patients/%s/medications/", url.PathEscape(patientID))
	if err := s.client.Do(ctx, "POST", path, req, nil); err != nil {
		return fmt.Errorf("assign medication failed: %w", err)
	}
	return nil
}

func (s *service) AssignDietPlan(ctx context.Context, patientID string, req api.AssignDietPlanRequest) error {
	path := fmt.Sprintf("/patients/%s/diet-plans/", url.PathEscape(patientID))
	if err := s.client.Do(ctx, "POST", path, req, nil); err != nil {
		return fmt.Errorf("assign diet plan failed: %w", err)
	}
	return nil
}

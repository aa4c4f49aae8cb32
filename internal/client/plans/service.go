package plans

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iudanet/hospctl/pkg/api"
)

// Service отдаёт справочные ресурсы планирования лечения
type Service interface {
	Medications(ctx context.Context) ([]api.Medication, error)
	DietPlans(ctx context.Context) ([]api.DietPlan, error)
	ActivityPlans(ctx context.Context) ([]api.ActivityPlan, error)

	// Appointments возвращает записи на приём; patientID == "" - все записи
	Appointments(ctx context.Context, patientID string) ([]api.Appointment, error)
}

type apiClient interface {
	Do(ctx context.Context, method, path string, body, result any) error
}

type service struct {
	client apiClient
}

// NewService creates a new plans service
func NewService(client apiClient) Service {
	return &service{client: client}
}

func (s *service) Medications(ctx context.Context) ([]api.Medication, error) {
	var meds []api.Medication
	if err := s.client.Do(ctx, "GET", "/medications/", nil, &meds); err != nil {
		return nil, fmt.Errorf("list medications failed: %w", err)
	}
	return meds, nil
}

func (s *service) DietPlans(ctx context.Context) ([]api.DietPlan, error) {
	var diets []api.DietPlan
	if err := s.client.Do(ctx, "GET", "/diet-plans/", nil, &diets); err != nil {
		return nil, fmt.Errorf("list diet plans failed: %w", err)
	}
	return diets, nil
}

func (s *service) ActivityPlans(ctx context.Context) ([]api.ActivityPlan, error) {
	var activities []api.ActivityPlan
	if err := s.client.Do(ctx, "GET", "/activity-plans/", nil, &activities); err != nil {
		return nil, fmt.Errorf("list activity plans failed: %w", err)
	}
	return activities, nil
}

func (s *service) Appointments(ctx context.Context, patientID string) ([]api.Appointment, error) {
	path := "/appointments/"
	if patientID != "" {
		path += "?patient=" + url.QueryEscape(patientID)
	}

	var appts []api.Appointment
	if err := s.client.Do(ctx, "GET", path, nil, &appts); err != nil {
		return nil, fmt.Errorf("list appointments failed: %w", err)
	}
	return appts, nil
}

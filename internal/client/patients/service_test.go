package patients

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/hospctl/internal/client/api"
	"github.com/iudanet/hospctl/pkg/api"
)

// fakeDoer записывает последний запрос и подставляет канированный ответ
type fakeDoer struct {
	body    any
	err     error
	respond func(result any)
	method  string
	path    string
}

func (f *fakeDoer) Do(ctx context.Context, method, path string, body, result any) error {
	f.method = method
	f.path = path
	f.body = body
	if f.err != nil {
		return f.err
	}
	if f.respond != nil {
		f.respond(result)
	}
	return nil
}

func TestService_List(t *testing.T) {
	doer := &fakeDoer{
		respond: func(result any) {
			*(result.(*[]api.Patient)) = []api.Patient{
				{ID: "p1", Name: "Ivanov", Status: "stable"},
				{ID: "p2", Name: "Petrov", Status: "critical"},
			}
		},
	}
	svc := NewService(doer)

	patients, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "GET", doer.method)
	assert.Equal(t, "/patients/", doer.path)
	assert.Len(t, patients, 2)
	assert.Equal(t, "critical", patients[1].Status)
}

func TestService_Get(t *testing.T) {
	doer := &fakeDoer{
		respond: func(result any) {
			*(result.(*api.Patient)) = api.Patient{ID: "p1", Name: "Ivanov"}
		},
	}
	svc := NewService(doer)

	patient, err := svc.Get(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "GET", doer.method)
	assert.Equal(t, "/patients/p1/", doer.path)
	assert.Equal(t, "Ivanov", patient.Name)
}

// TestService_Get_EscapesID проверяет экранирование идентификатора в пути
func TestService_Get_EscapesID(t *testing.T) {
	doer := &fakeDoer{respond: func(result any) {}}
	svc := NewService(doer)

	_, err := svc.Get(context.Background(), "p/../1")

	require.NoError(t, err)
	assert.Equal(t, "/patients/p%2F..%2F1/", doer.path)
}

func TestService_Create(t *testing.T) {
	doer := &fakeDoer{
		respond: func(result any) {
			*(result.(*api.Patient)) = api.Patient{ID: "p3", Name: "Sidorov"}
		},
	}
	svc := NewService(doer)

	req := api.PatientRequest{Name: "Sidorov", Age: 42, Room: "101"}
	patient, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "POST", doer.method)
	assert.Equal(t, "/patients/", doer.path)
	assert.Equal(t, req, doer.body)
	assert.Equal(t, "p3", patient.ID)
}

func TestService_Update(t *testing.T) {
	doer := &fakeDoer{respond: func(result any) {}}
	svc := NewService(doer)

	_, err := svc.Update(context.Background(), "p1", api.PatientRequest{Name: "Ivanov", Status: "discharged"})

	require.NoError(t, err)
	assert.Equal(t, "PUT", doer.method)
	assert.Equal(t, "/patients/p1/", doer.path)
}

func TestService_Delete(t *testing.T) {
	doer := &fakeDoer{}
	svc := NewService(doer)

	err := svc.Delete(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "DELETE", doer.method)
	assert.Equal(t, "/patients/p1/", doer.path)
	assert.Nil(t, doer.body)
}

func TestService_AssignMedication(t *testing.T) {
	doer := &fakeDoer{}
	svc := NewService(doer)

	req := api.AssignMedicationRequest{MedicationID: "m1", Dosage: "5mg", Frequency: "2/day"}
	err := svc.AssignMedication(context.Background(), "p1", req)

	require.NoError(t, err)
	assert.Equal(t, "POST", doer.method)
	assert.Equal(t, "/patients/p1/medications/", doer.path)
	assert.Equal(t, req, doer.body)
}

func TestService_AssignDietPlan(t *testing.T) {
	doer := &fakeDoer{}
	svc := NewService(doer)

	err := svc.AssignDietPlan(context.Background(), "p1", api.AssignDietPlanRequest{DietPlanID: "d1"})

	require.NoError(t, err)
	assert.Equal(t, "POST", doer.method)
	assert.Equal(t, "/patients/p1/diet-plans/", doer.path)
}

// TestService_ErrorPropagation проверяет, что типизированная ошибка транспорта
// доступна через цепочку обёрток
func TestService_ErrorPropagation(t *testing.T) {
	doer := &fakeDoer{err: &clientapi.Error{Kind: clientapi.KindNotFound, StatusCode: 404, Message: "patient not found"}}
	svc := NewService(doer)

	_, err := svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, clientapi.IsKind(err, clientapi.KindNotFound))
	assert.Contains(t, err.Error(), "get patient failed")
}

func TestService_SessionExpiredPropagation(t *testing.T) {
	doer := &fakeDoer{err: clientapi.ErrSessionExpired}
	svc := NewService(doer)

	_, err := svc.List(context.Background())

	assert.True(t, errors.Is(err, clientapi.ErrSessionExpired))
}

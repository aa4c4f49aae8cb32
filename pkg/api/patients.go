package api

import "time"

// Patient представляет пациента в стационаре
type Patient struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Age        int        `json:"age,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	Room       string     `json:"room,omitempty"`
	Diagnosis  string     `json:"diagnosis,omitempty"`
	Status     string     `json:"status,omitempty"` // admitted, stable, critical, discharged
	AdmittedAt *time.Time `json:"admitted_at,omitempty"`
}

// PatientRequest представляет тело create/update запроса пациента
type PatientRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Room      string `json:"room,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Medication представляет назначаемый препарат
type Medication struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// DietPlan представляет план питания
type DietPlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Calories    int    `json:"calories,omitempty"`
}

// ActivityPlan представляет план активности пациента
type ActivityPlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Appointment представляет запись на приём
type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	Doctor      string    `json:"doctor,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// AssignMedicationRequest - каноническая форма запроса назначения препарата.
// Единственная поддерживаемая форма: POST /patients/{id}/medications/
type AssignMedicationRequest struct {
	MedicationID string `json:"medication_id"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
}

// AssignDietPlanRequest - каноническая форма запроса назначения плана питания.
// Единственная поддерживаемая форма: POST /patients/{id}/diet-plans/
type AssignDietPlanRequest struct {
	DietPlanID string `json:"diet_plan_id"`
}

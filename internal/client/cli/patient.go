package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/hospctl/pkg/api"
)

func newPatientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patients",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List patients",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runPatientList(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show patient details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runPatientGet(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "add",
			Short: "Admit a new patient (interactive)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runPatientAdd(cmd.Context())
			},
		},
		newPatientUpdateCmd(app),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a patient record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runPatientDelete(cmd.Context(), args[0])
			},
		},
	)

	assignMed := &cobra.Command{
		Use:   "assign-med <patient-id> <medication-id>",
		Short: "Assign a medication to a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dosage, _ := cmd.Flags().GetString("dosage")
			frequency, _ := cmd.Flags().GetString("frequency")
			return app.runAssignMedication(cmd.Context(), args[0], args[1], dosage, frequency)
		},
	}
	assignMed.Flags().String("dosage", "", "Dosage, e.g. 500mg")
	assignMed.Flags().String("frequency", "", "Frequency, e.g. 2/day")
	cmd.AddCommand(assignMed)

	cmd.AddCommand(&cobra.Command{
		Use:   "assign-diet <patient-id> <diet-plan-id>",
		Short: "Assign a diet plan to a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAssignDietPlan(cmd.Context(), args[0], args[1])
		},
	})

	return cmd
}

func newPatientUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := patientUpdate{}
			if cmd.Flags().Changed("room") {
				v, _ := cmd.Flags().GetString("room")
				fields.room = &v
			}
			if cmd.Flags().Changed("status") {
				v, _ := cmd.Flags().GetString("status")
				fields.status = &v
			}
			if cmd.Flags().Changed("diagnosis") {
				v, _ := cmd.Flags().GetString("diagnosis")
				fields.diagnosis = &v
			}
			return app.runPatientUpdate(cmd.Context(), args[0], fields)
		},
	}
	cmd.Flags().String("room", "", "New room")
	cmd.Flags().String("status", "", "New status: admitted, stable, critical, discharged")
	cmd.Flags().String("diagnosis", "", "Updated diagnosis")
	return cmd
}

type patientUpdate struct {
	room      *string
	status    *string
	diagnosis *string
}

func (a *App) runPatientList(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	list, err := a.patients.List(ctx)
	if err != nil {
		return humanize(err)
	}

	if len(list) == 0 {
		a.io.Println("No patients found.")
		return nil
	}

	a.io.Printf("%-12s %-24s %-6s %-8s %-10s %s\n", "ID", "NAME", "AGE", "ROOM", "STATUS", "DIAGNOSIS")
	for _, p := range list {
		age := "-"
		if p.Age > 0 {
			age = strconv.Itoa(p.Age)
		}
		a.io.Printf("%-12s %-24s %-6s %-8s %-10s %s\n",
			p.ID, p.Name, age, orDash(p.Room), orDash(p.Status), orDash(p.Diagnosis))
	}
	a.io.Println()
	a.io.Printf("Total: %s\n", fmtCount(len(list), "patient", "patients"))

	return nil
}

func (a *App) runPatientGet(ctx context.Context, id string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	p, err := a.patients.Get(ctx, id)
	if err != nil {
		return humanize(err)
	}

	a.io.Printf("ID: %s\n", p.ID)
	a.io.Printf("Name: %s\n", p.Name)
	if p.Age > 0 {
		a.io.Printf("Age: %d\n", p.Age)
	}
	a.io.Printf("Gender: %s\n", orDash(p.Gender))
	a.io.Printf("Room: %s\n", orDash(p.Room))
	a.io.Printf("Status: %s\n", orDash(p.Status))
	a.io.Printf("Diagnosis: %s\n", orDash(p.Diagnosis))
	if p.AdmittedAt != nil {
		a.io.Printf("Admitted: %s\n", p.AdmittedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func (a *App) runPatientAdd(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	a.io.Println("=== Admit Patient ===")
	a.io.Println()

	name, err := a.io.ReadInput("Name: ")
	if err != nil {
		return err
	}

	ageStr, err := a.io.ReadInput("Age: ")
	if err != nil {
		return err
	}
	age := 0
	if ageStr != "" {
		age, err = strconv.Atoi(ageStr)
		if err != nil {
			return humanize(err)
		}
	}

	room, err := a.io.ReadInput("Room: ")
	if err != nil {
		return err
	}
	diagnosis, err := a.io.ReadInput("Diagnosis: ")
	if err != nil {
		return err
	}

	req := api.PatientRequest{
		Name:      name,
		Age:       age,
		Room:      room,
		Diagnosis: diagnosis,
		Status:    "admitted",
	}

	p, err := a.patients.Create(ctx, req)
	if err != nil {
		return humanize(err)
	}

	a.io.Println()
	a.io.Printf("✓ Patient admitted with ID %s\n", p.ID)
	return nil
}

// runPatientUpdate читает текущую запись и отправляет её целиком с
// наложенными изменениями: endpoint принимает только полный PUT
func (a *App) runPatientUpdate(ctx context.Context, id string, fields patientUpdate) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	p, err := a.patients.Get(ctx, id)
	if err != nil {
		return humanize(err)
	}

	req := api.PatientRequest{
		Name:      p.Name,
		Age:       p.Age,
		Gender:    p.Gender,
		Room:      p.Room,
		Diagnosis: p.Diagnosis,
		Status:    p.Status,
	}
	if fields.room != nil {
		req.Room = *fields.room
	}
	if fields.status != nil {
		req.Status = *fields.status
	}
	if fields.diagnosis != nil {
		req.Diagnosis = *fields.diagnosis
	}

	if _, err := a.patients.Update(ctx, id, req); err != nil {
		return humanize(err)
	}

	a.io.Printf("✓ Patient %s updated\n", id)
	return nil
}

func (a *App) runPatientDelete(ctx context.Context, id string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	if err := a.patients.Delete(ctx, id); err != nil {
		return humanize(err)
	}

	a.io.Printf("✓ Patient %s deleted\n", id)
	return nil
}

func (a *App) runAssignMedication(ctx context.Context, patientID, medicationID, dosage, frequency string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	req := api.AssignMedicationRequest{
		MedicationID: medicationID,
		Dosage:       dosage,
		Frequency:    frequency,
	}
	if err := a.patients.AssignMedication(ctx, patientID, req); err != nil {
		return humanize(err)
	}

	a.io.Printf("✓ Medication %s assigned to patient %s\n", medicationID, patientID)
	return nil
}

func (a *App) runAssignDietPlan(ctx context.Context, patientID, dietPlanID string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	req := api.AssignDietPlanRequest{DietPlanID: dietPlanID}
	if err := a.patients.AssignDietPlan(ctx, patientID, req); err != nil {
		return humanize(err)
	}

	a.io.Printf("✓ Diet plan %s assigned to patient %s\n", dietPlanID, patientID)
	return nil
}

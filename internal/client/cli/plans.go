package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newPlansCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse care planning reference data",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "medications",
			Short: "List available medications",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runMedications(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "diets",
			Short: "List diet plans",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runDietPlans(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "activities",
			Short: "List activity plans",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runActivityPlans(cmd.Context())
			},
		},
	)

	appointments := &cobra.Command{
		Use:   "appointments",
		Short: "List appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			return app.runAppointments(cmd.Context(), patientID)
		},
	}
	appointments.Flags().String("patient", "", "Filter by patient ID")
	cmd.AddCommand(appointments)

	return cmd
}

func (a *App) runMedications(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	meds, err := a.plans.Medications(ctx)
	if err != nil {
		return humanize(err)
	}

	if len(meds) == 0 {
		a.io.Println("No medications found.")
		return nil
	}
	a.io.Printf("%-12s %-28s %-12s %s\n", "ID", "NAME", "DOSAGE", "FREQUENCY")
	for _, m := range meds {
		a.io.Printf("%-12s %-28s %-12s %s\n", m.ID, m.Name, orDash(m.Dosage), orDash(m.Frequency))
	}

	return nil
}

func (a *App) runDietPlans(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	diets, err := a.plans.DietPlans(ctx)
	if err != nil {
		return humanize(err)
	}

	if len(diets) == 0 {
		a.io.Println("No diet plans found.")
		return nil
	}
	a.io.Printf("%-12s %-28s %-10s %s\n", "ID", "NAME", "CALORIES", "DESCRIPTION")
	for _, d := range diets {
		a.io.Printf("%-12s %-28s %-10d %s\n", d.ID, d.Name, d.Calories, orDash(d.Description))
	}

	return nil
}

func (a *App) runActivityPlans(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	activities, err := a.plans.ActivityPlans(ctx)
	if err != nil {
		return humanize(err)
	}

	if len(activities) == 0 {
		a.io.Println("No activity plans found.")
		return nil
	}
	a.io.Printf("%-12s %-28s %s\n", "ID", "NAME", "DESCRIPTION")
	for _, p := range activities {
		a.io.Printf("%-12s %-28s %s\n", p.ID, p.Name, orDash(p.Description))
	}

	return nil
}

func (a *App) runAppointments(ctx context.Context, patientID string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	appts, err := a.plans.Appointments(ctx, patientID)
	if err != nil {
		return humanize(err)
	}

	if len(appts) == 0 {
		a.io.Println("No appointments found.")
		return nil
	}
	a.io.Printf("%-12s %-12s %-16s %-16s %s\n", "ID", "PATIENT", "SCHEDULED", "DOCTOR", "REASON")
	for _, ap := range appts {
		a.io.Printf("%-12s %-12s %-16s %-16s %s\n",
			ap.ID, ap.PatientID, ap.ScheduledAt.Format("2006-01-02 15:04"),
			orDash(ap.Doctor), orDash(ap.Reason))
	}

	return nil
}

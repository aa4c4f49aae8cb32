package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/hospctl/pkg/api"
)

func newSurgeryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surgery",
		Short: "View and schedule surgeries",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List surgeries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runSurgeryList(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show surgery details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runSurgeryGet(cmd.Context(), args[0])
			},
		},
	)

	add := &cobra.Command{
		Use:   "add <patient-id>",
		Short: "Schedule a surgery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, _ := cmd.Flags().GetString("type")
			at, _ := cmd.Flags().GetString("at")
			surgeon, _ := cmd.Flags().GetString("surgeon")
			theater, _ := cmd.Flags().GetString("theater")
			notes, _ := cmd.Flags().GetString("notes")
			return app.runSurgeryAdd(cmd.Context(), args[0], typeName, at, surgeon, theater, notes)
		},
	}
	add.Flags().String("type", "", "Surgery type, e.g. Appendectomy")
	add.Flags().String("at", "", "Scheduled time, e.g. 2026-08-31 09:00")
	add.Flags().String("surgeon", "", "Surgeon name")
	add.Flags().String("theater", "", "Operating theater")
	add.Flags().String("notes", "", "Notes")
	_ = add.MarkFlagRequired("type")
	_ = add.MarkFlagRequired("at")
	cmd.AddCommand(add)

	return cmd
}

func (a *App) runSurgeryList(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	list, err := a.surgeries.List(ctx)
	if err != nil {
		return humanize(err)
	}

	if len(list) == 0 {
		a.io.Println("No surgeries scheduled.")
		return nil
	}

	a.io.Printf("%-12s %-12s %-20s %-16s %-12s %s\n", "ID", "PATIENT", "TYPE", "SCHEDULED", "STATUS", "SURGEON")
	for _, s := range list {
		a.io.Printf("%-12s %-12s %-20s %-16s %-12s %s\n",
			s.ID, s.PatientID, s.Type.Label(),
			s.ScheduledAt.Format("2006-01-02 15:04"),
			orDash(s.Status), orDash(s.Surgeon))
	}

	return nil
}

func (a *App) runSurgeryAdd(ctx context.Context, patientID, typeName, at, surgeon, theater, notes string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	scheduledAt, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --at value, expected format 2006-01-02 15:04: %w", err)
	}

	req := api.SurgeryRequest{
		PatientID:   patientID,
		Type:        api.SurgeryType{Kind: api.SurgeryTypeNamed, Name: typeName},
		Surgeon:     surgeon,
		Theater:     theater,
		ScheduledAt: scheduledAt,
		Notes:       notes,
	}
	s, err := a.surgeries.Create(ctx, req)
	if err != nil {
		return humanize(err)
	}

	a.io.Printf("✓ Surgery %s scheduled for patient %s\n", s.ID, patientID)
	return nil
}

func (a *App) runSurgeryGet(ctx context.Context, id string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	s, err := a.surgeries.Get(ctx, id)
	if err != nil {
		return humanize(err)
	}

	a.io.Printf("ID: %s\n", s.ID)
	a.io.Printf("Patient: %s\n", s.PatientID)
	a.io.Printf("Type: %s\n", s.Type.Label())
	a.io.Printf("Scheduled: %s\n", s.ScheduledAt.Format("2006-01-02 15:04"))
	a.io.Printf("Status: %s\n", orDash(s.Status))
	a.io.Printf("Surgeon: %s\n", orDash(s.Surgeon))
	a.io.Printf("Theater: %s\n", orDash(s.Theater))
	if s.Notes != "" {
		a.io.Printf("Notes: %s\n", s.Notes)
	}

	return nil
}

package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the ward summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runDashboard(cmd.Context())
		},
	}
}

func (a *App) runDashboard(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	stats, err := a.dashboard.Stats(ctx)
	if err != nil {
		return humanize(err)
	}

	a.io.Println("=== Ward Summary ===")
	a.io.Println()
	a.io.Printf("Patients: %d (%d critical)\n", stats.TotalPatients, stats.CriticalPatients)
	a.io.Printf("Surgeries today: %d\n", stats.SurgeriesToday)
	a.io.Printf("Appointments today: %d\n", stats.AppointmentsToday)
	a.io.Printf("Bed occupancy: %.0f%%\n", stats.OccupancyRate*100)

	return nil
}

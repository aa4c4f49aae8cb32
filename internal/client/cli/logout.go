package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogout(cmd.Context())
		},
	}
}

func (a *App) runLogout(ctx context.Context) error {
	// Logout идемпотентен: повторный вызов на пустом хранилище безопасен
	a.session.Logout(ctx)

	a.io.Println("✓ Logged out. Local session cleared.")
	return nil
}

package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current operator profile (verified against the server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runWhoami(cmd.Context())
		},
	}
}

func (a *App) runWhoami(ctx context.Context) error {
	// Bootstrap поднимает сохранённую сессию и best-effort сверяет профиль
	// с сервером; недоступный сервер не мешает показать сохранённые данные
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	user := a.session.CurrentUser()
	a.io.Printf("Name: %s\n", user.Name)
	a.io.Printf("Username: %s\n", user.Username)
	a.io.Printf("Email: %s\n", orDash(user.Email))
	a.io.Printf("Role: %s\n", orDash(user.Role))
	a.io.Printf("Department: %s\n", orDash(user.Department))
	if len(user.Permissions) > 0 {
		a.io.Printf("Permissions: %s\n", strings.Join(user.Permissions, ", "))
	}

	return nil
}

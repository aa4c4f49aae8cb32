package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/hospctl/internal/client/storage"
	"github.com/iudanet/hospctl/internal/token"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStatus(cmd.Context())
		},
	}
}

func (a *App) runStatus(ctx context.Context) error {
	a.io.Println("=== Session Status ===")
	a.io.Println()

	rec, err := a.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			a.io.Println("Status: Not authenticated")
			a.io.Println()
			a.io.Println("Run 'hospctl login' to sign in.")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	a.io.Println("Status: Authenticated")
	a.io.Printf("User: %s (%s)\n", rec.User.Name, rec.User.Username)
	if rec.User.Role != "" {
		a.io.Printf("Role: %s\n", rec.User.Role)
	}
	if rec.User.Department != "" {
		a.io.Printf("Department: %s\n", rec.User.Department)
	}

	// Срок действия берём из claim exp самого токена
	if exp, ok := token.Expiry(rec.AccessToken); ok {
		a.io.Printf("Access token expires: %s\n", exp.Format(time.RFC3339))
		if remaining := time.Until(exp); remaining > 0 {
			a.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			a.io.Println("⚠️  Access token has expired. It will be refreshed on the next request.")
		}
	}

	return nil
}

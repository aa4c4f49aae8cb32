package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/hospctl/internal/client/api"
	"github.com/iudanet/hospctl/internal/validation"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to the hospital API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogin(cmd.Context())
		},
	}
}

func (a *App) runLogin(ctx context.Context) error {
	a.io.Println("=== Login ===")
	a.io.Println()

	// Запрашиваем username
	username, err := a.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	// Запрашиваем пароль
	password, err := a.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	a.io.Println()
	a.io.Println("Authenticating...")

	user, err := a.session.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrMalformedAuthResponse) {
			return errors.New("server returned an unexpected login response, please contact support")
		}
		// Категории ошибок (неверные данные / 403 / 5xx / сеть) различаются
		// отдельными формулировками
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.UserMessage())
		}
		return err
	}

	a.io.Println()
	a.io.Println("✓ Login successful!")
	a.io.Printf("Signed in as: %s\n", user.Name)
	if user.Role != "" {
		a.io.Printf("Role: %s\n", user.Role)
	}
	if user.Department != "" {
		a.io.Printf("Department: %s\n", user.Department)
	}

	return nil
}

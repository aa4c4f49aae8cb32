package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the AI assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runChat(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "history <session-id>",
		Short: "Show the messages of a past dialog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runChatHistory(cmd.Context(), args[0])
		},
	})

	return cmd
}

func (a *App) runChat(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	a.io.Println("=== AI Assistant ===")
	a.io.Println("Type your question, or 'exit' to quit.")
	a.io.Println()

	// Диалог живёт в рамках одного запуска команды; идентификатор сессии
	// печатается при выходе, чтобы историю можно было поднять позже
	sessionID := ""

	for {
		input, err := a.io.ReadInput("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.printChatFooter(sessionID)
				return nil
			}
			return err
		}

		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			a.printChatFooter(sessionID)
			return nil
		}

		resp, err := a.chat.Send(ctx, sessionID, input)
		if err != nil {
			return humanize(err)
		}
		sessionID = resp.SessionID

		a.io.Println()
		a.io.Printf("assistant: %s\n", resp.Message.Content)
		a.io.Println()
	}
}

func (a *App) printChatFooter(sessionID string) {
	if sessionID == "" {
		return
	}
	a.io.Printf("Session: %s (use 'hospctl chat history %s' to review)\n", sessionID, sessionID)
}

func (a *App) runChatHistory(ctx context.Context, sessionID string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	messages, err := a.chat.History(ctx, sessionID)
	if err != nil {
		return humanize(err)
	}

	if len(messages) == 0 {
		a.io.Println("No messages in this session.")
		return nil
	}
	for _, m := range messages {
		a.io.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04:05"), m.Role, m.Content)
	}

	return nil
}

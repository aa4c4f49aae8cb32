package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/hospctl/internal/client/api"
	"github.com/iudanet/hospctl/internal/client/chat"
	"github.com/iudanet/hospctl/internal/client/dashboard"
	"github.com/iudanet/hospctl/internal/client/iocli"
	"github.com/iudanet/hospctl/internal/client/patients"
	"github.com/iudanet/hospctl/internal/client/plans"
	"github.com/iudanet/hospctl/internal/client/session"
	"github.com/iudanet/hospctl/internal/client/storage/boltdb"
	"github.com/iudanet/hospctl/internal/client/surgeries"
	"github.com/iudanet/hospctl/internal/config"
)

// App держит собранный граф зависимостей клиента.
// Всё состояние сессии явно инжектируется, глобальных синглтонов нет -
// тесты подставляют свои фейки через конструкторы.
type App struct {
	io        iocli.IO
	cfg       *config.Config
	store     *boltdb.Storage
	session   *session.Manager
	patients  patients.Service
	surgeries surgeries.Service
	dashboard dashboard.Service
	chat      chat.Service
	plans     plans.Service
}

// Execute собирает дерево команд и запускает hospctl
func Execute(version, buildDate, gitCommit string) error {
	app := &App{io: iocli.NewStdio()}

	root := &cobra.Command{
		Use:           "hospctl",
		Short:         "Hospital operations dashboard client",
		Long:          "Command line client for the hospital operations API:\npatients, surgeries, care plans, dashboard and the AI assistant.",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", version, buildDate, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.PersistentFlags().String("config", "", "Path to config directory")
	root.PersistentFlags().String("server", "", "Server base URL")
	root.PersistentFlags().String("db", "", "Path to local database")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newWhoamiCmd(app),
		newPatientCmd(app),
		newSurgeryCmd(app),
		newDashboardCmd(app),
		newChatCmd(app),
		newPlansCmd(app),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// setup загружает конфиг и собирает зависимости перед выполнением команды
func (a *App) setup(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Флаги командной строки имеют наивысший приоритет
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	a.cfg = cfg

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	store, err := boltdb.New(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.store = store

	apiClient := api.NewClient(cfg.ServerURL, store, logger, cfg.Timeout)
	a.session = session.NewManager(apiClient, store, logger)
	a.patients = patients.NewService(apiClient)
	a.surgeries = surgeries.NewService(apiClient)
	a.dashboard = dashboard.NewService(apiClient)
	a.chat = chat.NewService(apiClient)
	a.plans = plans.NewService(apiClient)

	return nil
}

func (a *App) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

// newLogger строит slog логгер, пишущий в stderr
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

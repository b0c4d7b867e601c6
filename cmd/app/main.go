package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopsecure/cmd"
	httpin "shopsecure/internal/adapters/in/http"
	"shopsecure/internal/adapters/out/postgres"
	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := postgres.Open(configs.DSN(), postgres.DefaultPoolConfig())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer func() { _ = postgres.Close(gormDB) }()

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = ensureAdmin(ctx, app, configs); err != nil {
		log.Fatalf("Error seeding admin account: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateRetryNotificationsCommandHandler(),
		configs.RetrySchedule,
		configs.RetryBatchSize,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err = startWebServer(ctx, app, configs, logger); err != nil {
		logger.Error("web server stopped", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	return config
}

// ensureAdmin seeds the administrator account when credentials are configured.
func ensureAdmin(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) error {
	if configs.AdminEmail == "" {
		return nil
	}
	command, err := commands.NewEnsureAdminCommand(configs.AdminEmail, configs.AdminPassword)
	if err != nil {
		return err
	}
	return app.CreateEnsureAdminCommandHandler().Handle(ctx, command)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	doc, err := httpin.LoadOpenAPIDoc(ctx)
	if err != nil {
		return err
	}

	e := httpin.NewRouter(
		httpin.NewServer(app.CreateHTTPHandlers(), logger),
		app.Tokens(),
		doc,
		httpin.RouterConfig{
			UploadDir:      app.UploadDir(),
			AllowedOrigins: configs.AllowedOrigins,
			PasscodeRate: httpin.RateLimit{
				Every: configs.PasscodeRateEvery,
				Burst: configs.PasscodeRateBurst,
			},
		},
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anoodleReza/application-tracker/internal/auth"
	"github.com/anoodleReza/application-tracker/internal/config"
	"github.com/anoodleReza/application-tracker/internal/handler"
	"github.com/anoodleReza/application-tracker/internal/metrics"
	"github.com/anoodleReza/application-tracker/internal/reminder"
	"github.com/anoodleReza/application-tracker/internal/repository"
	"github.com/anoodleReza/application-tracker/internal/service"
	"github.com/anoodleReza/application-tracker/internal/utils/email"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewRootCmd creates the root command. Without a subcommand it serves the API.
func NewRootCmd(logger *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "application-tracker",
		Short:         "Job application tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), logger)
		},
	}

	cmd.AddCommand(NewMigrateCmd(logger))
	return cmd
}

func runServer(parent context.Context, logger *logrus.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := repository.MigrateUp(db); err != nil {
		return err
	}

	// Initialize layers
	clock := clockwork.NewRealClock()
	tokens, err := auth.NewTokenService(cfg.JWTSecret, clock)
	if err != nil {
		return err
	}
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, tokens, logger, clock)
	h := handler.NewHandler(svc, auth.NewResolver(tokens), cfg.SecureCookies(), logger, clock)
	router := handler.NewRouter(h, metrics.New(), handler.RouterConfig{
		LoginPath:         cfg.LoginPath,
		ProtectedPrefixes: cfg.ProtectedPrefixes,
	})

	if cfg.RemindersEnabled() {
		scheduler := reminder.NewScheduler(repo, email.NewSender(cfg, logger), cfg.ReminderLookahead, clock, logger)
		if err := scheduler.Start(ctx, cfg.ReminderSchedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	} else {
		logger.Info("SMTP_HOST not set, interview reminders disabled")
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/querytube/insight-services/internal/api"
	"github.com/querytube/insight-services/internal/config"
	"github.com/querytube/insight-services/internal/database"
	"github.com/querytube/insight-services/internal/llm"
	"github.com/querytube/insight-services/internal/repository"
	"github.com/querytube/insight-services/internal/service"
	"github.com/querytube/insight-services/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Run the HTTP server",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving")
	}
}

// loadConfig reads the env file and environment, then applies flag overrides
func loadConfig() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, zerolog.Nop(), err
	}
	if port != "" {
		os.Setenv("PORT", port)
	}

	cfg, err := config.Load()
	if err != nil {
		log := logger.New("sqlassistant", "info", "json")
		log.Error().Err(err).Msg("Failed to load configuration")
		return nil, log, err
	}

	return cfg, logger.New("sqlassistant", cfg.Log.Level, cfg.Log.Format), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().Msg("Starting SQL assistant...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database")
		return err
	}
	defer db.Close()

	if migrateOnStart {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return err
		}
	}

	// Initialize the generative model
	var model llm.Generator = llm.Unconfigured{}
	gemini, err := llm.NewGeminiClient(cmd.Context(), cfg.Model, log)
	switch {
	case err == nil:
		model = gemini
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warn().Msg("GEMINI_API_KEY not set, /ask will fail until it is configured")
	default:
		log.Error().Err(err).Msg("Failed to create model client")
		return err
	}

	repos := repository.New(db)
	services := service.NewAssistantServices(repos, model, cfg.Database.Dialect(), log)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewAssistantRouter(services, cfg, log)

	return listenAndServe(cfg, router, log)
}

// listenAndServe runs the server until SIGINT or SIGTERM
func listenAndServe(cfg *config.Config, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}

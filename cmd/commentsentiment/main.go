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
	"github.com/querytube/insight-services/internal/sentiment"
	"github.com/querytube/insight-services/internal/service"
	"github.com/querytube/insight-services/internal/youtube"
	"github.com/querytube/insight-services/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	envFile string
	port    string
)

var rootCmd = &cobra.Command{
	Use:           "commentsentiment",
	Short:         "Sentiment analysis of YouTube video comments",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are logged before returning
}

var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Run the HTTP server",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default ./.env when present)")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "Server port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}
	if port != "" {
		os.Setenv("PORT", port)
	}

	cfg, err := config.LoadWithoutDatabase()
	if err != nil {
		log := logger.New("commentsentiment", "info", "json")
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log := logger.New("commentsentiment", cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting comment sentiment analyzer...")

	// Only a working client is stored in the interface; a nil *Client
	// would make the source look configured.
	var source youtube.CommentSource
	client, err := youtube.NewClient(cmd.Context(), cfg.YouTube, log)
	switch {
	case err == nil:
		source = client
	case errors.Is(err, youtube.ErrNotConfigured):
		log.Warn().Msg("YOUTUBE_API_KEY not set, /analyze_comments/ will fail until it is configured")
	default:
		log.Warn().Err(err).Msg("Failed to create YouTube client")
	}

	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer())
	services := service.NewSentimentServices(source, cfg.YouTube.APIKey != "", classifier, log)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewSentimentRouter(services, cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
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

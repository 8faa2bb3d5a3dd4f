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

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/erazemk/camorent/internal/api"
	"github.com/erazemk/camorent/internal/auth"
	"github.com/erazemk/camorent/internal/config"
	"github.com/erazemk/camorent/internal/db"
	"github.com/erazemk/camorent/internal/extract"
	"github.com/erazemk/camorent/internal/metrics"
	"github.com/erazemk/camorent/internal/pipeline"
	"github.com/erazemk/camorent/internal/research"
	"github.com/erazemk/camorent/internal/store"
	"github.com/erazemk/camorent/internal/transcribe"
)

const redisKeyPrefix = "camorent:research:"

func newServeCommand(flags *overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(os.Stdout, os.Stderr, cfg.LogPath)
			if err != nil {
				return err
			}
			defer closeLog()
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&flags.addr, "addr", "a", "", "listen address (default $CAMORENT_ADDR or :5001)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// Token secret is generated on first run and kept in the database.
	secret, err := store.GetTokenSecret(ctx, database)
	if err != nil {
		return err
	}

	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		return err
	}

	m, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	var cache research.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, research cache lookups will miss", "addr", cfg.RedisAddr, "error", err)
		}
		cache = research.NewRedisStore(rdb, redisKeyPrefix)
	}

	if !cfg.HasModelKey() {
		slog.Warn("no OpenAI key configured, using pattern extraction; audio transcription will fail")
	}

	p := &pipeline.Pipeline{
		Transcriber: transcribe.NewWhisperClient(transcribe.WhisperConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.TranscriptionModel,
			Timeout: cfg.OpenAITimeout,
		}, nil),
		Extractor:  extract.New(cfg),
		Researcher: research.New(cfg, m, cache),
		Metrics:    m,
	}

	router := api.NewRouter(api.Deps{
		DB:          database,
		Config:      cfg,
		Pipeline:    p,
		Hasher:      hasher,
		TokenSecret: secret,
		Metrics:     m,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.Addr, "password_scheme", hasher.Scheme())
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

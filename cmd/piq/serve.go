package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/config"
	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/export"
	"github.com/chaitenyachand/ProjectIQ/internal/extract"
	"github.com/chaitenyachand/ProjectIQ/internal/server"
	"github.com/chaitenyachand/ProjectIQ/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the ProjectIQ server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (PIQ_NATS_URL not set)")
		}

		// Create the extraction client.
		var extractor server.Extractor
		if cfg.ExtractorURL != "" {
			extractor = extract.NewClient(cfg.ExtractorURL, cfg.ExtractorAPIKey, cfg.ExtractorTimeout)
			logger.Info("extraction enabled", "url", cfg.ExtractorURL)
		} else {
			logger.Info("extraction disabled (PIQ_EXTRACTOR_URL not set)")
		}

		// Create server components.
		iqServer := server.NewServer(store, publisher, extractor)

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: iqServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the export scheduler if any destinations are configured.
		var scheduler *export.Scheduler
		if cfg.ExportInterval > 0 {
			var dests []export.Destination

			if cfg.ExportS3Bucket != "" {
				s3Dest, err := export.NewS3Destination(
					context.Background(),
					cfg.ExportS3Bucket,
					cfg.ExportS3Key,
					cfg.ExportS3Region,
					cfg.ExportS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 export destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("export S3 destination enabled", "bucket", cfg.ExportS3Bucket, "key", cfg.ExportS3Key)
				}
			}

			if cfg.ExportGitRepo != "" {
				gitDest := export.NewGitDestination(cfg.ExportGitRepo, cfg.ExportGitFile, cfg.ExportGitBranch)
				dests = append(dests, gitDest)
				logger.Info("export git destination enabled", "repo", cfg.ExportGitRepo, "file", cfg.ExportGitFile)
			}

			if len(dests) > 0 {
				scheduler = export.NewScheduler(store, dests, cfg.ExportInterval, logger)
				scheduler.Start()
				logger.Info("export scheduler started", "interval", cfg.ExportInterval)
			}
		}

		logger.Info("projectiq server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("export scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}

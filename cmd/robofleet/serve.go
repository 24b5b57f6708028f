package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/robofleet/robofleet"
	"github.com/robofleet/robofleet/internal/config"
	"github.com/robofleet/robofleet/internal/logging"
	"github.com/robofleet/robofleet/internal/metrics"
	httpAdapter "github.com/robofleet/robofleet/pkg/adapters/http"
	redisAdapter "github.com/robofleet/robofleet/pkg/adapters/redis"
	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the fleet registry and exposes it as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if listen != "" {
			cfg.Listen = listen
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		opts := []registry.Option{
			registry.WithLogger(logger),
			registry.WithTuning(cfg.Tuning),
		}
		if cfg.RedisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: cfg.RedisAddr})
			opts = append(opts, registry.WithLocker(redisAdapter.NewLocker(client, "robofleet:")))
			logger.Info("distributed item locking enabled", "redis_addr", cfg.RedisAddr)
		}
		reg := robofleet.New(opts...)

		seed := make([]domain.ProvisionRequest, 0, len(cfg.Seed))
		for _, s := range cfg.Seed {
			pos := s.Position
			energy := s.Energy
			seed = append(seed, domain.ProvisionRequest{ID: s.ID, Position: &pos, Energy: &energy})
		}
		if err := robofleet.Seed(cmd.Context(), reg, seed); err != nil {
			fmt.Printf("Error seeding fleet: %v\n", err)
			os.Exit(1)
		}

		handler, err := httpAdapter.NewHandler(reg,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(metrics.New()),
		)
		if err != nil {
			fmt.Printf("Error building HTTP handler: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting Robofleet server", "addr", srv.Addr, "robots", len(cfg.Seed))
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("Robofleet server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Bind address (overrides config)")
}

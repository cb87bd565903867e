package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/catalog"
	"github.com/ziadkadry99/tilepat/internal/patterns"
	"github.com/ziadkadry99/tilepat/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pattern HTTP API",
	Long: `Starts an HTTP server exposing the catalog, raw geometry, SVG documents and
CSS backgrounds for every pattern, backed by the configured geometry source.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, svc, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("warm") {
			cfg.Server.Warm, _ = cmd.Flags().GetBool("warm")
		}
		pal, err := cfg.NormalizedPalette()
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, logger)
		patterns.RegisterRoutes(srv.Router(), svc, pal, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Server.Warm {
			go func() {
				start := time.Now()
				if err := svc.Cache().Warm(ctx, catalog.IDs(), cfg.WarmConcurrency); err != nil {
					logger.WithError(err).Warn("cache warm-up incomplete")
					return
				}
				logger.WithField("duration", time.Since(start)).Info("cache warmed")
			}()
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "tilepat server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Source: %s\n", cfg.Source.Kind)
		fmt.Fprintf(os.Stderr, "  Patterns: %d\n", len(svc.Catalog()))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("warm", false, "prefetch every pattern's geometry at startup")
	rootCmd.AddCommand(serveCmd)
}

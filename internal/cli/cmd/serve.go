package cmd

import (
	"context"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/briwestervelt/formal/internal/infrastructure/config"
	"github.com/briwestervelt/formal/internal/infrastructure/httpapi"
	"github.com/briwestervelt/formal/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the host emulator and its HTTP API",
	Long: `Start the emulated phone host with the configuration relay registered,
and expose it over HTTP.

Endpoints:
  GET  /health
  POST /events/{ready|showConfiguration|webviewclosed}
  GET  /settings
  GET  /deliveries?limit=N
  GET  /metrics

Changes to the [device] section of the config file apply without a restart.

Examples:
  formal serve
  formal serve --listen 127.0.0.1:9000
  curl -X POST localhost:8765/events/webviewclosed \
    -d '{"config":{"backgroundColor":"1E90FF","bluetoothVibes":true}}'`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (defaults to server.listen)")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), shutdownSignals...)
	defer stop()
	log := logging.FromContext(ctx)

	rt := a.NewRuntime()

	if a.ConfigManager != nil {
		a.ConfigManager.OnConfigChange(func(cfg *config.Config) {
			rt.ApplyDeviceConfig(ctx, cfg)
		})
		if err := a.ConfigManager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watching disabled")
		}
	}

	addr := serveListen
	if addr == "" {
		addr = a.Config.Server.Listen
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The bus stops through Shutdown so queued deliveries still drain.
		return rt.Bus.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		return httpapi.Serve(gctx, addr, a.Handler(gctx, rt))
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := rt.Bus.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Int("pending", rt.Bus.Pending()).Msg("host shut down with pending work")
		}
		return nil
	})

	log.Info().Str("addr", addr).Msg("formal host emulator started")
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("formal host emulator stopped")
	return nil
}

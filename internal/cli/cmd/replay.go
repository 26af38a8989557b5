package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/briwestervelt/formal/internal/cli"
	"github.com/briwestervelt/formal/internal/cli/model"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/script"
)

const defaultReplayTimeout = 10 * time.Second

var (
	replayConfig  string
	replayTimeout time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay [script.js]",
	Short: "Drive the host emulator from a script or a single payload",
	Long: `Run a scenario against the in-process host and watch, then print what
the watch stored.

A script gets three globals:
  emit(name, event)        queue a host event, event.response is optional
  closeConfiguration(obj)  close the configuration page with obj as result
  console.log(...)         write a log line

With --config, the usual lifecycle (ready, showConfiguration, webviewclosed)
is emitted with the given JSON as the page result.

Examples:
  formal replay scenario.js
  formal replay --config '{"backgroundColor":"1E90FF","bluetoothVibes":true}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayConfig, "config", "c", "", "configuration page result as JSON")
	replayCmd.Flags().DurationVar(&replayTimeout, "timeout", defaultReplayTimeout, "time allowed for the scenario and its deliveries")
}

func runReplay(_ *cobra.Command, args []string) error {
	if (len(args) == 0) == (replayConfig == "") {
		return errors.New("pass either a script file or --config")
	}

	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), shutdownSignals...)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, replayTimeout)
	defer cancel()

	started := time.Now().Truncate(time.Millisecond)
	rt := a.NewRuntime()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rt.Bus.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		scenarioErr := runScenario(gctx, rt, args)
		if scenarioErr == nil {
			scenarioErr = rt.Bus.Drain(gctx)
		}
		// Shutdown must not be bounded by a cancelled scenario context,
		// otherwise Run never returns.
		shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancelShutdown()
		return errors.Join(scenarioErr, rt.Bus.Shutdown(shutdownCtx))
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	return printReplayResult(context.WithoutCancel(ctx), a, started)
}

func runScenario(ctx context.Context, rt *cli.Runtime, args []string) error {
	if replayConfig != "" {
		return rt.Lifecycle(ctx, entity.EncodeResponse(replayConfig))
	}
	return script.NewRunner(rt.Bus).RunFile(ctx, args[0])
}

func printReplayResult(ctx context.Context, a *cli.App, since time.Time) error {
	settings, err := a.ApplySettingsUC.Current(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	fmt.Println(a.Theme.Box.Render(model.RenderSettings(a.Theme, settings)))

	deliveries, err := a.ListDeliveriesUC.Execute(ctx, 0)
	if err != nil {
		return fmt.Errorf("list deliveries: %w", err)
	}
	for _, d := range deliveries {
		if d.CreatedAt.Before(since) {
			break
		}
		line := fmt.Sprintf("%s %d bytes %s", a.Theme.StatusBadge(d.Status), d.Size, d.TransactionID)
		if d.Reason != "" {
			line += " " + a.Theme.Subtle.Render(d.Reason)
		}
		fmt.Println(line)
	}
	return nil
}

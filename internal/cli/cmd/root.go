// Package cmd provides Cobra CLI commands for formal.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/briwestervelt/formal/internal/cli"
	"github.com/briwestervelt/formal/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "formal",
		Short: "Configuration relay for the Formal watchface",
		Long: `formal - the phone-side companion of the Formal watchface.

It answers the host lifecycle events (ready, showConfiguration,
webviewclosed), opens the configuration page and relays the chosen colors
and the bluetooth vibration toggle to the watch as an AppMessage.

The phone host and the watch are emulated in-process: 'formal serve'
exposes them over HTTP, 'formal replay' drives them from a script, and
'formal settings' shows what the watch ended up storing.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version", "schema", "encode":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/briwestervelt/formal/internal/cli/model"
	"github.com/briwestervelt/formal/internal/infrastructure/httpapi"
)

var (
	settingsPlain bool
	settingsJSON  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the settings stored on the emulated watch",
	Long: `Show the watchface colors and the bluetooth vibration toggle as the
watch last stored them.

Examples:
  formal settings           # interactive view, r to refresh
  formal settings --plain   # print once
  formal settings --json`,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().BoolVar(&settingsPlain, "plain", false, "print once without the interactive view")
	settingsCmd.Flags().BoolVar(&settingsJSON, "json", false, "output as JSON")
}

func runSettings(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if settingsPlain || settingsJSON {
		settings, err := a.ApplySettingsUC.Current(a.Ctx())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if settingsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(httpapi.NewSettingsView(settings))
		}
		fmt.Println(a.Theme.Box.Render(model.RenderSettings(a.Theme, settings)))
		return nil
	}

	m := model.NewSettingsModel(a.Ctx(), a.Theme, a.ApplySettingsUC)
	_, err = tea.NewProgram(m).Run()
	return err
}

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

const defaultDeliveriesLimit = 50

var (
	deliveriesLimit int
	deliveriesJSON  bool
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Browse the AppMessage delivery log",
	Long: `List the messages the host tried to deliver to the watch, newest first,
with their acknowledgement status.

Examples:
  formal deliveries
  formal deliveries --limit 10 --json`,
	RunE: runDeliveries,
}

func init() {
	rootCmd.AddCommand(deliveriesCmd)
	deliveriesCmd.Flags().IntVarP(&deliveriesLimit, "limit", "n", defaultDeliveriesLimit, "maximum deliveries to show")
	deliveriesCmd.Flags().BoolVar(&deliveriesJSON, "json", false, "output as JSON")
}

func runDeliveries(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if deliveriesJSON {
		deliveries, err := a.ListDeliveriesUC.Execute(a.Ctx(), deliveriesLimit)
		if err != nil {
			return fmt.Errorf("list deliveries: %w", err)
		}
		out := make([]httpapi.DeliveryView, 0, len(deliveries))
		for _, d := range deliveries {
			out = append(out, httpapi.NewDeliveryView(d))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	m := model.NewDeliveriesModel(a.Ctx(), a.Theme, a.ListDeliveriesUC, deliveriesLimit)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

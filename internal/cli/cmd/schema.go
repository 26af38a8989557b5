package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briwestervelt/formal/internal/infrastructure/config"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [config|payload]",
	Short:     "Print a JSON schema",
	Long:      `Print the JSON schema of the config file (default) or of the configuration page result.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{config.SchemaConfig, config.SchemaPayload},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := config.SchemaConfig
		if len(args) == 1 {
			kind = args[0]
		}
		data, err := config.GenerateSchema(kind)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

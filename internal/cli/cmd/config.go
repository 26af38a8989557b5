package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/briwestervelt/formal/internal/application/usecase"
)

var configSection string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if a.ConfigManager == nil {
			return fmt.Errorf("no config file in use")
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.ConfigManager.GetConfigFile())
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with defaults",
	Long: `List every configuration key with its type, default and description.
Each key can also be set with an environment variable: server.listen
becomes FORMAL_SERVER_LISTEN. The logging keys use FORMAL_LOG_LEVEL and
FORMAL_LOG_FORMAT.`,
	RunE: runConfigKeys,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.Flags().StringVarP(&configSection, "section", "s", "", "only show one section")
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	out, err := a.ConfigSchemaUC.Execute(a.Ctx(), usecase.GetConfigSchemaInput{Section: configSection})
	if err != nil {
		return err
	}
	if len(out.Keys) == 0 {
		fmt.Fprintf(os.Stderr, "no keys in section %q\n", configSection)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	section := ""
	for _, k := range out.Keys {
		if k.Section != section {
			if section != "" {
				fmt.Fprintln(w)
			}
			section = k.Section
			fmt.Fprintln(w, a.Theme.Title.Render(section))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", k.Key, k.Type, k.Default, k.Description)
	}
	return w.Flush()
}

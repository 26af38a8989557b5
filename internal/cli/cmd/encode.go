package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/appmessage"
	"github.com/briwestervelt/formal/internal/logging"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <json>",
	Short: "Show how a configuration page result reaches the watch",
	Long: `Encode a configuration page result the way the page hands it to the
host, decode it the way the relay does, and print the resulting AppMessage
and its dictionary bytes. Pass - to read the JSON from stdin.

Example:
  formal encode '{"backgroundColor":"1E90FF","bluetoothVibes":true}'`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	input := args[0]
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(data)
	}

	ctx := logging.WithContext(context.Background(), logging.NewFromEnv())
	return writeEncoding(ctx, cmd.OutOrStdout(), input)
}

func writeEncoding(ctx context.Context, w io.Writer, jsonText string) error {
	response := entity.EncodeResponse(jsonText)
	fmt.Fprintf(w, "response:   %s\n", response)

	payload, err := usecase.DecodeConfigurationPayload(response)
	if err != nil {
		return err
	}
	if !payload.BackgroundSet {
		fmt.Fprintln(w, "message:    none (backgroundColor missing or falsy)")
		return nil
	}

	msg := usecase.BuildAppMessage(ctx, payload)
	text, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "message:    %s\n", text)

	data, err := appmessage.EncodeMessage(msg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "appmessage: %s (%d bytes)\n", hex.EncodeToString(data), len(data))
	return nil
}


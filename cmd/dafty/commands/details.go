package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/internal/output"
)

var detailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Fetch one listing from the Daft.ie API",
	Long: `Fetch the full record of one listing from the Daft.ie API.

An API key is required (DAFTY_API_KEY or DAFT_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
	addOutputFlags(detailsCmd, "json")
}

func runDetails(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		logError("%v", err)
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := newClient()
	if err != nil {
		logError("%v", err)
		return err
	}
	defer client.Close()

	raw, err := client.GetDetails(ctx, args[0])
	if err != nil {
		logError("%v", err)
		return err
	}

	out, err := openOutput(outPath, false)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer out.Close()

	w, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}
	if err := w.WriteValue(raw); err != nil {
		return err
	}
	return w.Close()
}

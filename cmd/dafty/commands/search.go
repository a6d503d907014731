package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/output"
	"github.com/amineremache/dafty-mcp/pkg/listing"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search rental listings",
	Long: `Search Daft.ie rental listings.

Every filter is optional. Locations may be repeated; a listing matching
any of them is kept. Prices are monthly rent in euro.

Examples:
  dafty search -l Ringsend --beds 2 --max-price 2500
  dafty search -l "Carrigaline, Cork" -l Douglas --type house --format table
  dafty search -l "Dublin 8" --format jsonl -o results.jsonl`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addCriteriaFlags(searchCmd)
	addOutputFlags(searchCmd, "json")
}

// addOutputFlags registers --format and --output.
func addOutputFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("format", defaultFormat, "output format: json, jsonl, yaml, table")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return searchAndWrite(ctx, cmd, criteria)
}

// searchAndWrite runs a search and renders the results per --format/--output.
func searchAndWrite(ctx context.Context, cmd *cobra.Command, criteria listing.Criteria) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		logError("%v", err)
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")

	client, err := newClient()
	if err != nil {
		logError("%v", err)
		return err
	}
	defer client.Close()

	start := time.Now()
	results, err := client.Search(ctx, criteria)
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
	if err := w.WriteListings(results); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Debug("search written", "format", format, "output", outPath)
	logInfo("Found %s %s in %s", humanize.Comma(int64(len(results))), plural(len(results), "listing", "listings"),
		time.Since(start).Round(100*time.Millisecond))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

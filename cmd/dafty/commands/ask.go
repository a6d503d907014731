package commands

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/query"
)

var askCmd = &cobra.Command{
	Use:   "ask <request>",
	Short: "Search with a plain-English request",
	Long: `Translate a plain-English request into search filters, then search.

A language model is used when llm_provider is configured or an
ANTHROPIC_API_KEY / OPENAI_API_KEY is present; otherwise a built-in
pattern parser handles beds, prices, property types and "in <place>".

Examples:
  dafty ask "2 bed apartment in Ringsend under 2500"
  dafty ask --dry-run "house near Cork between 1500 and 2k"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Bool("dry-run", false, "print the translated criteria without searching")
	addOutputFlags(askCmd, "json")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := cfg.NewLLMProvider()
	if err != nil {
		logger.Warn("language model unavailable, using pattern parser", "error", err)
		provider = nil
	}

	res, err := query.New(provider).Translate(ctx, strings.Join(args, " "))
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Info("request translated", "source", res.Source, "criteria", res.Criteria)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if err := res.Criteria.Validate(); err != nil {
		logError("%v", err)
		return err
	}
	return searchAndWrite(ctx, cmd, res.Criteria)
}

// Package commands implements the CLI commands for dafty.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amineremache/dafty-mcp/internal/config"
	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/daft"
)

// cfg is resolved once per invocation, before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "dafty",
	Short: "Search Daft.ie rentals from the command line or as a tool server",
	Long: `Dafty searches Daft.ie rental listings, completes each one from its
detail page and filters the results locally.

It runs as a CLI or as a tool server for LLM hosts (JSON-RPC on stdio, or HTTP).

Examples:
  # Two-bed places in Ringsend up to 2,500 a month
  dafty search -l Ringsend --beds 2 --max-price 2500

  # Describe what you want in plain English
  dafty ask "studio in Dublin 8 under 1800"

  # Serve tools on stdio for an MCP host
  dafty serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./.dafty.yaml or $HOME/.dafty.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress progress output")
	flags.Bool("log-json", false, "log as JSON")
	flags.Bool("no-color", false, "disable coloured logs")
	flags.String("base-url", "", "site base URL")
	flags.Int("max-pages", 0, "maximum result pages to walk")
	flags.String("fetch-mode", "", "fetch mode: static, dynamic")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("max_pages", flags.Lookup("max-pages"))
	_ = viper.BindPFlag("fetch_mode", flags.Lookup("fetch-mode"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		logError("%v", err)
		return err
	}
	cfg = loaded

	if err := logger.Init(logger.Options{
		Level: cfg.LogLevel,
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
		Color: !viper.GetBool("no_color") && colorTerminal(os.Stderr),
	}); err != nil {
		logError("%v", err)
		return err
	}

	logger.Debug("config loaded",
		"base_url", cfg.BaseURL,
		"max_pages", cfg.MaxPages,
		"fetch_mode", cfg.FetchMode,
		"config_file", viper.ConfigFileUsed())
	return nil
}

// newClient builds a search client from the resolved config.
func newClient() (*daft.Client, error) {
	return daft.New(cfg.ClientOptions()...)
}

// openOutput returns stdout or the named file.
func openOutput(path string, appendMode bool) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func colorTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

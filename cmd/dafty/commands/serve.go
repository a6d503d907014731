package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/mcp"
	"github.com/amineremache/dafty-mcp/internal/query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tool server",
	Long: `Run the tool server.

By default tools are served as line-delimited JSON-RPC 2.0 on stdin and
stdout, which is what MCP hosts launch. Logs go to stderr.

With --http the same tools are served over HTTP:
  GET  /healthz
  GET  /tools
  POST /tools/{name}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("http", "", "serve over HTTP on this address (e.g. :8080) instead of stdio")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := newClient()
	if err != nil {
		logError("%v", err)
		return err
	}
	defer client.Close()

	provider, err := cfg.NewLLMProvider()
	if err != nil {
		logger.Warn("language model unavailable, parse_rental_query uses pattern parser", "error", err)
		provider = nil
	}
	server := mcp.NewServer(client, query.New(provider))

	addr, _ := cmd.Flags().GetString("http")
	if addr == "" {
		return server.Serve(ctx, os.Stdin, os.Stdout)
	}
	return serveHTTP(ctx, addr, server.HTTPHandler())
}

func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tool server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logError("%v", err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down tool server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

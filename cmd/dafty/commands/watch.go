package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/output"
	"github.com/amineremache/dafty-mcp/pkg/listing"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a search on a schedule and print new listings",
	Long: `Re-run a search on a schedule and write listings not seen before in
this session as JSONL. Seen ids are kept in memory only.

The schedule is a standard five-field cron expression or a descriptor
such as "@hourly" or "@every 30m".

Examples:
  dafty watch -l Ringsend --max-price 2500
  dafty watch --cron "0 8-20 * * *" -l "Dublin 4" -o new.jsonl`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addCriteriaFlags(watchCmd)
	watchCmd.Flags().String("cron", "@every 30m", "schedule")
	watchCmd.Flags().Bool("now", true, "run once immediately before the first scheduled run")
	watchCmd.Flags().StringP("output", "o", "", "append new listings to this file (default: stdout)")
}

type searchFunc func(ctx context.Context, c listing.Criteria) ([]listing.Listing, error)

// watcher runs a search and writes only listings it has not written before.
type watcher struct {
	search   searchFunc
	criteria listing.Criteria
	out      output.Writer

	mu   sync.Mutex
	seen map[string]struct{}
}

func newWatcher(search searchFunc, criteria listing.Criteria, out output.Writer) *watcher {
	return &watcher{
		search:   search,
		criteria: criteria,
		out:      out,
		seen:     make(map[string]struct{}),
	}
}

// run performs one search and returns how many new listings were written.
// Listings are marked seen only once written, so a failed search or write
// leaves the seen set untouched.
func (w *watcher) run(ctx context.Context) (int, error) {
	results, err := w.search(ctx, w.criteria)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var fresh []listing.Listing
	batch := make(map[string]struct{}, len(results))
	for _, l := range results {
		if _, ok := w.seen[l.ID]; ok {
			continue
		}
		if _, ok := batch[l.ID]; ok {
			continue
		}
		batch[l.ID] = struct{}{}
		fresh = append(fresh, l)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	if err := w.out.WriteListings(fresh); err != nil {
		return 0, fmt.Errorf("failed to write listings: %w", err)
	}
	for id := range batch {
		w.seen[id] = struct{}{}
	}
	return len(fresh), nil
}

func (w *watcher) tick(ctx context.Context) {
	n, err := w.run(ctx)
	if err != nil {
		logger.Error("watch search failed", "error", err)
		return
	}
	w.mu.Lock()
	total := len(w.seen)
	w.mu.Unlock()
	logger.Info("watch search complete", "new", n, "seen", total)
}

// cronLogger routes cron's own messages into slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	schedule, _ := cmd.Flags().GetString("cron")
	if _, err := cron.ParseStandard(schedule); err != nil {
		err = fmt.Errorf("invalid schedule %q: %w", schedule, err)
		logError("%v", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := newClient()
	if err != nil {
		logError("%v", err)
		return err
	}
	defer client.Close()

	outPath, _ := cmd.Flags().GetString("output")
	out, err := openOutput(outPath, true)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer out.Close()

	w := newWatcher(client.Search, criteria, output.NewJSONLWriter(out))

	cl := cronLogger{log: logger.With("component", "watch")}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	id, err := c.AddFunc(schedule, func() { w.tick(ctx) })
	if err != nil {
		return err
	}

	if now, _ := cmd.Flags().GetBool("now"); now {
		w.tick(ctx)
	}

	c.Start()
	logInfo("Watching (%s), next run %s", schedule, humanize.Time(c.Entry(id).Next))

	<-ctx.Done()
	logInfo("Stopping watch")
	<-c.Stop().Done()
	return nil
}

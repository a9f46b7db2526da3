package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"
)

var CommandCollect = &cobra.Command{
	Use:   "collect [flags]",
	Short: "Fetch every source and write the categorized lists",
	Long: `Fetch every enabled source, parse the resolvers each one lists, and write the merged
lists into the output directory, one newline delimited file per list.

Sources are fetched in parallel. A source that cannot be fetched or parsed is logged and
skipped; the command only fails when every source failed. The number of addresses in
each list is printed to STDOUT as a JSON object.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()

		if flags.Changed("output") {
			cfg.Output, _ = flags.GetString("output")
		}
		if flags.Changed("timeout") {
			cfg.Timeout, _ = flags.GetDuration("timeout")
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency, _ = flags.GetInt("concurrency")
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		names, err := flags.GetStringSlice("sources")
		if err != nil {
			return fmt.Errorf("invalid sources: %w", err)
		}

		srcs, err := cfg.Enabled(names...)
		if err != nil {
			return fmt.Errorf("dnslists: %w", err)
		}

		if len(srcs) == 0 {
			return errors.New("dnslists: no sources enabled")
		}

		var (
			ctx    context.Context    = cmd.Context()
			cancel context.CancelFunc = func() {}
		)

		if cfg.Timeout != 0 {
			ctx, cancel = context.WithTimeout(cmd.Context(), cfg.Timeout)
		}

		defer cancel()

		concurrency := cfg.Concurrency
		if concurrency == 0 {
			concurrency = runtime.GOMAXPROCS(0)
		}

		log := slog.Default()

		results, err := core.Collect(ctx, srcs, core.CollectOptions{
			Client: core.NewClient(core.ClientOptions{
				Timeout: cfg.RequestTimeout,
				Retries: cfg.Retries,
				Logger:  log,
			}),
			Lock:   semaphore.NewWeighted(int64(concurrency)),
			Logger: log,
		})

		var merr *multierror.Error
		if err != nil && !errors.As(err, &merr) {
			return fmt.Errorf("encountered error while collecting: %w", err)
		}

		catalog := core.BuildCatalog(results, cfg.PerSource)

		if len(catalog.Failed) == len(srcs) {
			return fmt.Errorf("dnslists: every source failed: %w", err)
		}

		if len(catalog.Failed) > 0 {
			log.Warn("some sources failed", "failed", catalog.Failed)
		}

		counts, err := output.WriteLists(cfg.Output, catalog.Lists)
		if err != nil {
			return err
		}

		if cfg.PerSource {
			if err := output.WriteSourceLists(cfg.Output, catalog.Sources); err != nil {
				return err
			}
		}

		if cfg.Summary {
			err := output.WriteSummary(filepath.Join(cfg.Output, output.SummaryFile), output.Summary{
				Generated: time.Now(),
				Catalog:   catalog,
				Results:   results,
			})
			if err != nil {
				return err
			}
		}

		log.Info("wrote lists",
			"dir", cfg.Output,
			"endpoints", catalog.Endpoints,
			"addresses", catalog.Stats.Addresses,
			"invalid", catalog.Stats.Invalid,
		)

		return json.NewEncoder(cmd.OutOrStdout()).Encode(counts)
	},
}

func init() {
	CommandCollect.Flags().String("output", "", "directory to write the lists to, overrides the config file")
	CommandCollect.Flags().Duration("timeout", 0, "timeout for the whole collection, 0s for no timeout, overrides the config file")
	CommandCollect.Flags().Int("concurrency", 0, "number of sources fetched at once, 0 for GOMAXPROCS, overrides the config file")
	CommandCollect.Flags().StringSlice("sources", nil, "names of the sources to collect, all enabled sources if not given")

	CommandRoot.AddCommand(CommandCollect)
}

package core

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/picatz/dnslists/pkg/endpoint"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Result is the outcome of collecting one source.
type Result struct {
	Source   Source
	Records  []endpoint.Observation
	Duration time.Duration
	Err      error
}

// CollectOptions configure [Collect].
type CollectOptions struct {
	// Client fetches documents. Defaults to NewClient(ClientOptions{}).
	Client *retryablehttp.Client

	// Lock bounds how many sources are fetched at once. Defaults to
	// GOMAXPROCS.
	Lock *semaphore.Weighted

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Collect fetches and parses every source concurrently. A failing source
// never stops the others: its error is kept on its [Result] and also
// appended to the returned *multierror.Error. Results are in the order of
// srcs.
func Collect(ctx context.Context, srcs Sources, opts CollectOptions) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Client == nil {
		opts.Client = NewClient(ClientOptions{})
	}

	if opts.Lock == nil {
		opts.Lock = semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	results := make([]Result, len(srcs))

	var eg errgroup.Group

	for i, src := range srcs {
		i, src := i, src
		eg.Go(func() error {
			results[i] = collectOne(ctx, src, opts)
			return nil
		})
	}

	_ = eg.Wait()

	var merr *multierror.Error
	for _, result := range results {
		if result.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", result.Source.Name, result.Err))
		}
	}

	return results, merr.ErrorOrNil()
}

func collectOne(ctx context.Context, src Source, opts CollectOptions) (result Result) {
	result.Source = src

	if err := opts.Lock.Acquire(ctx, 1); err != nil {
		result.Err = err
		return result
	}
	defer opts.Lock.Release(1)

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	log := opts.Logger.With("source", src.Name)
	log.Debug("fetching source", "url", src.URL)

	if src.Parse == nil {
		result.Err = fmt.Errorf("dnslists: source %q has no parser", src.Name)
		return result
	}

	doc, err := Fetch(ctx, opts.Client, src.URL)
	if err != nil {
		result.Err = err
		log.Warn("fetch failed", "error", err)
		return result
	}

	records, err := src.Parse(doc)
	if err != nil {
		result.Err = fmt.Errorf("dnslists: error parsing document: %w", err)
		log.Warn("parse failed", "error", err)
		return result
	}

	if len(records) == 0 {
		result.Err = ErrNoContent
		log.Warn("no resolvers extracted, the document format may have changed")
		return result
	}

	result.Records = records
	log.Info("collected source", "records", len(records), "bytes", len(doc))

	return result
}

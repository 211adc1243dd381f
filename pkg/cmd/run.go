package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dkarwin/scour/pkg/api"
	"github.com/dkarwin/scour/pkg/corpus"
	"github.com/dkarwin/scour/pkg/crawler"
	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/output"
	"github.com/dkarwin/scour/pkg/query"
	"github.com/dkarwin/scour/pkg/repo/users"
	"github.com/dkarwin/scour/pkg/views"
	"github.com/dkarwin/scour/pkg/work"
)

// RunCommand executes the composed pipeline: build the index from files
// and/or a crawl, write the requested JSON artifacts, run the query batch,
// and finally serve the portal when a port was requested.
func RunCommand(ctx context.Context, flags *cmdFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sanitizeFlags(flags)

	// Concurrent mode is on as soon as any flag implies shared workers.
	var queue *work.Queue

	if flags.URL != "" || flags.portSet || flags.threadsSet {
		queue = work.New(flags.Threads)
		defer queue.Shutdown()
	}

	idx := index.NewSafe()

	if flags.Path != "" {
		if err := corpus.New(idx, queue).Build(flags.Path); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if flags.URL != "" {
		if err := crawler.New(idx, queue, flags.Limit).Crawl(flags.URL); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if flags.IndexPath != "" {
		writeArtifact(flags.IndexPath, idx, output.WriteIndex)
	}

	if flags.CountsPath != "" {
		writeArtifact(flags.CountsPath, idx, output.WriteCounts)
	}

	processor := query.New(idx, queue)

	if flags.QueryPath != "" {
		if err := processor.ProcessQueries(flags.QueryPath, flags.Exact); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if flags.ResultsPath != "" {
		writeResults(flags.ResultsPath, processor)
	}

	if flags.portSet {
		return serve(ctx, cfg, idx, processor)
	}

	return nil
}

// sanitizeFlags repairs invalid numeric flag values, reporting each to stderr
// and continuing with the documented default.
func sanitizeFlags(flags *cmdFlags) {
	if flags.Limit < 1 {
		fmt.Fprintf(os.Stderr, "invalid limit %d, using %d\n", flags.Limit, crawler.DefaultLimit)
		flags.Limit = crawler.DefaultLimit
	}

	if flags.threadsSet && flags.Threads < 1 {
		fmt.Fprintf(os.Stderr, "invalid thread count %d, using %d\n", flags.Threads, work.DefaultWorkers)
		flags.Threads = work.DefaultWorkers
	}
}

// writeArtifact writes one index-derived JSON file under the read lock.
// Failures are reported and the run continues; output files are best-effort.
func writeArtifact(path string, idx *index.SafeInvertedIndex, write func(w io.Writer, x *index.InvertedIndex) error) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	idx.View(func(x *index.InvertedIndex) {
		if err := write(f, x); err != nil {
			fmt.Fprintf(os.Stderr, "cannot write %s: %v\n", path, err)
		}
	})
}

// writeResults writes the query result map as JSON.
func writeResults(path string, processor *query.Processor) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if err := output.WriteResults(f, processor.Results()); err != nil {
		fmt.Fprintf(os.Stderr, "cannot write %s: %v\n", path, err)
	}
}

// serve opens the account store and runs the portal until ctx is cancelled.
// Failure to open the store or bind the port aborts before serving anything.
func serve(ctx context.Context, cfg *appConfig, idx *index.SafeInvertedIndex, processor *query.Processor) error {
	store, err := users.Open(cfg.Users.Path)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}

	defer func() { _ = store.Close() }()

	apiSvc, err := api.New(cfg.API, processor, idx, store, views.New())
	if err != nil {
		return fmt.Errorf("failed to create API service: %w", err)
	}

	if err := apiSvc.Run(ctx); err != nil {
		return fmt.Errorf("failed to run API service: %w", err)
	}

	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/processor"
	"github.com/deploymenttheory/go-filemeta/internal/storage"
)

// BatchOptions configures a report run
type BatchOptions struct {
	Output  string
	Format  string
	Workers int
	Mode    fileanalyzer.Mode
	Hash    bool
}

// RunBatch analyzes the paths concurrently and writes a report. Cancelling ctx
// stops the workers and writes the records collected so far. The returned
// error wraps ErrFilesFailed when any file failed.
func RunBatch(ctx context.Context, analyzer processor.Analyzer, opts BatchOptions, paths []string) error {
	store, err := storage.New(opts.Format, opts.Output)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	proc := processor.New(processor.Options{
		Workers: opts.Workers,
		Mode:    opts.Mode,
		Hash:    opts.Hash,
	}, analyzer, store)

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			logger.Infof("Interrupted, writing partial report...")
			proc.Stop()
		case <-finished:
		}
	}()

	proc.Start()
	proc.Submit(paths...)
	proc.Wait()

	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to write report %s: %w", opts.Output, err)
	}

	stats := proc.Stats()
	logger.Infof("Analyzed %d files in %v (%d errors), report written to %s",
		stats.FilesProcessed, proc.Duration(), stats.Errors, opts.Output)

	stored := store.Stats()
	logger.Infof("Report holds %d files (%d failed, %d unique hashes)",
		stored.FilesStored, stored.FilesFailed, stored.UniqueHashes)
	logger.Infof("Files by type: %v", stored.FilesByType)

	if stats.Errors > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, stats.Errors, len(paths))
	}
	return nil
}

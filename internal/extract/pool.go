package extract

import (
	"context"
	"runtime"
	"sync"

	"grouper/internal/errors"
	"grouper/internal/logging"
	"grouper/internal/scan"
)

// maxWorkers caps the extraction pool regardless of core count.
const maxWorkers = 8

// FileRefs is the extraction result for one scanned file.
type FileRefs struct {
	File   scan.ScannedFile
	Refs   []string
	Digest string

	// Warnings are the non-fatal conditions hit while extracting this file.
	Warnings []errors.Warning
}

// ContentFunc provides file content on demand so large trees are never
// pre-loaded in bulk.
type ContentFunc func(path string) ([]byte, error)

// ExtractAll runs import extraction over the scanned file set on a bounded
// worker pool. Results come back in scan order, not completion order, so
// output stays deterministic. Workers check for cancellation between files;
// a cancelled run returns the context error and no partial result.
func ExtractAll(ctx context.Context, files []scan.ScannedFile, content ContentFunc, workers int, logger *logging.Logger) ([]FileRefs, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]FileRefs, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = extractOne(ctx, files[idx], content, logger)
			}
		}()
	}

	// Feed jobs, stopping at the per-file boundary on cancellation.
	var cancelled error
feed:
	for i := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break feed
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func extractOne(ctx context.Context, file scan.ScannedFile, content ContentFunc, logger *logging.Logger) FileRefs {
	result := FileRefs{File: file}

	data, err := content(file.Path)
	if err != nil {
		logger.Warn("Failed to read file", map[string]interface{}{
			"file":  file.Path,
			"error": err.Error(),
		})
		result.Warnings = append(result.Warnings,
			errors.Warn(errors.StaleFile, "file could not be read", file.Path))
		return result
	}
	result.Digest = scan.Digest(data)

	refs, err := Extract(ctx, file, data)
	if err != nil {
		// Parse failures are non-fatal: zero references, one warning.
		logger.Warn("Parse failure during import extraction", map[string]interface{}{
			"file":  file.Path,
			"error": err.Error(),
		})
		result.Warnings = append(result.Warnings,
			errors.Warn(errors.ParseFailure, "file has unparseable syntax", file.Path))
		return result
	}

	result.Refs = refs
	return result
}

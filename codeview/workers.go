package codeview

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/logging"
	"github.com/arjunmahishi/codeview/scanner"
)

// FileResult is the outcome of rendering one file in a batch.
type FileResult struct {
	File   string  `json:"file"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// RenderFiles renders every analyzable file under opts.Path, or the single
// file opts.Path names. Each file is registered under its path relative to
// the root. A file that fails to
// render is reported in its FileResult; it does not stop the batch.
func (r *Renderer) RenderFiles(ctx context.Context, opts FilesOptions) ([]FileResult, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}

	found, err := scanner.Collect(ctx, scanner.Config{
		Root:      opts.Path,
		Supported: Supported,
		MaxBytes:  opts.MaxBytes,
	})
	if err != nil {
		return nil, err
	}
	files := found.Files

	logger := r.logger(ctx)
	logger.Debug("collected files",
		logging.FieldPath, opts.Path,
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, opts.Jobs,
	)
	for _, path := range found.Oversized {
		logger.Warn("skipping oversized file", logging.FieldPath, path, logging.FieldMaxBytes, opts.MaxBytes)
	}

	if len(files) == 0 {
		return []FileResult{}, nil
	}

	results := runWorkers(ctx, files, opts.Jobs, func(job scanner.FileJob) (FileResult, bool) {
		res, err := r.Render(ctx, Request{
			Source:    job.AbsPath,
			Filename:  job.DisplayPath,
			Highlight: opts.Highlight,
		})
		if err != nil {
			logger.Warn("render failed", logging.FieldPath, job.DisplayPath, logging.FieldError, err)
			return FileResult{File: job.DisplayPath, Error: err.Error()}, true
		}
		return FileResult{File: job.DisplayPath, Result: res}, true
	})

	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})
	return results, ctx.Err()
}

// Supported reports whether the analyzer handles a file name.
func Supported(name string) bool {
	return lang.ByExtension(filepath.Ext(name)) != nil
}

// runWorkers processes files on a bounded pool of goroutines. process
// returns false to drop a file from the results. Files not yet started when
// ctx is canceled are skipped. Result order is not defined.
func runWorkers[T any](
	ctx context.Context,
	files []scanner.FileJob,
	jobs int,
	process func(scanner.FileJob) (T, bool),
) []T {
	results := make(chan T, 128)
	jobQueue := make(chan scanner.FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		for job := range jobQueue {
			if ctx.Err() != nil {
				continue
			}
			if res, ok := process(job); ok {
				results <- res
			}
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		defer close(jobQueue)
		for _, f := range files {
			select {
			case jobQueue <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for res := range results {
		all = append(all, res)
	}

	return all
}

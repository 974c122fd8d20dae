package converter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchResult reports the outcome of one conversion in a batch.
type BatchResult struct {
	InputPath  string
	OutputPath string
	Err        error
}

// BatchJobs builds one job per input, writing <outDir>/<name>.png. Inputs
// sharing a base name get numbered outputs (<name>-1.png, ...) so no job
// overwrites another.
func BatchJobs(inputs []string, outDir string, size int, logger *slog.Logger) []ConvertOptions {
	jobs := make([]ConvertOptions, 0, len(inputs))
	used := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		out := uniqueOutputPath(OutputPathFor(in, outDir), used)
		used[out] = struct{}{}
		jobs = append(jobs, ConvertOptions{
			InputPath:  in,
			OutputPath: out,
			Size:       size,
			Logger:     logger,
		})
	}
	return jobs
}

// OutputPathFor returns the thumbnail path for input inside outDir.
func OutputPathFor(input, outDir string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	return filepath.Join(outDir, name)
}

func uniqueOutputPath(p string, used map[string]struct{}) string {
	if _, taken := used[p]; !taken {
		return p
	}
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}

// RunBatch converts jobs with at most workers conversions in flight.
// A failing job never stops the others; its error is kept in its result.
// Jobs not yet started when ctx is cancelled report ctx.Err().
func RunBatch(ctx context.Context, jobs []ConvertOptions, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]BatchResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		results[i] = BatchResult{InputPath: job.InputPath, OutputPath: job.OutputPath}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Err = NewPipeline(job).Convert()
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return results
}

// Failed returns the results that carry an error.
func Failed(results []BatchResult) []BatchResult {
	var failed []BatchResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

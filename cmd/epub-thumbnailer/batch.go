package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yuanying/epub-thumbnailer/internal/converter"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] <file>...",
		Short: "Convert many EPUB files in parallel",
		Long: `batch writes <out-dir>/<name>.png for every input file. A file that
cannot be converted is reported and skipped; the others still run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSettings(cmd)
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("out-dir")
			workers := s.cfg.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}
			if workers < 0 {
				return fmt.Errorf("--workers must not be negative, got %d", workers)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			jobs := converter.BatchJobs(args, outDir, s.cfg.Size, s.logger)
			results := converter.RunBatch(ctx, jobs, workers)

			p := newPrinter(cmd.OutOrStdout())
			for _, r := range results {
				if r.Err != nil {
					p.println(p.red("✗"), r.InputPath, p.gray(r.Err.Error()))
					continue
				}
				p.println(p.green("✓"), r.InputPath, p.gray("→ "+r.OutputPath))
			}

			if failed := converter.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d conversions failed", len(failed), len(results))
			}
			p.println(p.green(fmt.Sprintf("%d thumbnails written", len(results))))
			return nil
		},
	}

	cmd.Flags().StringP("out-dir", "o", ".", "Directory for the generated thumbnails")
	cmd.Flags().IntP("workers", "j", 0, "Parallel conversions (default: from config, else CPU count)")
	return cmd
}

// printer writes status lines with optional colour.
type printer struct {
	out    io.Writer
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:    out,
		green:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		gray:   color.New(color.FgHiBlack).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
	}
}

func (p *printer) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuanying/epub-thumbnailer/internal/config"
	"github.com/yuanying/epub-thumbnailer/internal/converter"
	"github.com/yuanying/epub-thumbnailer/internal/thumbnail"
)

// version is set via ldflags at build time: -ldflags "-X main.version=x.y.z"
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epub-thumbnailer <in_file> <out_file>",
		Short: "Create PNG thumbnails from EPUB cover images",
		Long: `epub-thumbnailer finds the cover image of an EPUB file and writes it
as a PNG thumbnail no larger than --size pixels in either dimension.

The cover is taken from the package metadata when declared there, and
otherwise guessed from image file names and sizes inside the archive.`,
		Args:          cobra.ExactArgs(2),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}

			opts.Logger.Debug("converting", "input", opts.InputPath, "output", opts.OutputPath, "size", opts.Size)
			if err := converter.NewPipeline(opts).Convert(); err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/epub-thumbnailer/config.yaml)")
	pf.IntP("size", "s", thumbnail.DefaultSize, "Maximum thumbnail width and height in pixels")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text, json")
	pf.BoolP("verbose", "v", false, "Enable debug logging (overrides --log-level)")

	cmd.AddCommand(newBatchCmd(), newRegisterCmd(), newUnregisterCmd(), newConfigCmd())
	return cmd
}

// settings merges the config file with explicitly set flags.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
}

func readSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("size") {
		cfg.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if cfg.Size <= 0 {
		return nil, fmt.Errorf("--size must be positive, got %d", cfg.Size)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	if !validLogFormat(cfg.LogFormat) {
		return nil, fmt.Errorf("--log-format: unknown format %q (want text or json)", cfg.LogFormat)
	}

	return &settings{
		cfg:    cfg,
		logger: buildLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat),
	}, nil
}

func readCLIOptions(cmd *cobra.Command, args []string) (converter.ConvertOptions, error) {
	s, err := readSettings(cmd)
	if err != nil {
		return converter.ConvertOptions{}, err
	}
	if len(args) < 2 {
		return converter.ConvertOptions{}, fmt.Errorf("expected <in_file> <out_file>, got %d arguments", len(args))
	}
	return converter.ConvertOptions{
		InputPath:  args[0],
		OutputPath: args[1],
		Size:       s.cfg.Size,
		Logger:     s.logger,
	}, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q (want debug, info, warn or error)", level)
}

func validLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json", "":
		return true
	}
	return false
}

func buildLogger(w io.Writer, level, format string) *slog.Logger {
	lvl, err := parseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

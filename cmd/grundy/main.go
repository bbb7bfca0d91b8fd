package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/splitgrundy/internal/config"
	"github.com/mitchelldurbincs/splitgrundy/internal/grundy"
	"github.com/mitchelldurbincs/splitgrundy/internal/listing"
	"github.com/mitchelldurbincs/splitgrundy/internal/logging"
)

var errWatchWithoutFile = errors.New("--watch requires an existing config file")

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"max-size":   "table.max_size",
	"format":     "output.format",
	"zeros-only": "output.zeros_only",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("grundy failed")
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "grundy",
		Short: "List the Grundy values of the splitting game",
		Long: `grundy computes the Sprague-Grundy value of every board size below
--max-size and prints one "<size> <value>" line per size.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath, watch, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to config file")
	flags.Int("max-size", 500, "Compute board sizes 0 through max-size-1")
	flags.String("format", string(listing.FormatText), "Output format (text, json)")
	flags.Bool("zeros-only", false, "Only list sizes whose Grundy value is 0")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.BoolVar(&watch, "watch", false, "Recompute the listing whenever the config file changes")

	return cmd
}

func run(cmd *cobra.Command, configPath string, watch bool, stdout, stderr io.Writer) error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	v := config.GetViper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if err := config.Reload(); err != nil {
		return err
	}
	cfg := config.Get()

	if watch && !config.ConfigFileExists() {
		return fmt.Errorf("%w: %q", errWatchWithoutFile, config.ConfigFilePath())
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr).
		With().Str("run_id", uuid.NewString()).Logger()

	if err := render(cfg, logger, stdout); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	stopped, err := config.WatchConfig(cmd.Context(), func(c *config.Config, err error) {
		if err != nil {
			logger.Error().Err(err).Msg("Ignoring invalid config change")
			return
		}
		if err := render(c, logger, stdout); err != nil {
			logger.Error().Err(err).Msg("Failed to render listing after config change")
		}
	})
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	logger.Info().Str("file", config.ConfigFilePath()).Msg("Watching config for changes")

	<-cmd.Context().Done()
	<-stopped
	logger.Info().Msg("Stopped watching config")
	return nil
}

// render builds the table described by cfg and writes the listing
func render(cfg *config.Config, logger zerolog.Logger, out io.Writer) error {
	format, err := listing.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger.Info().
		Int("max_size", cfg.Table.MaxSize).
		Str("format", string(format)).
		Bool("zeros_only", cfg.Output.ZerosOnly).
		Msg("Building grundy table")

	b := grundy.NewBuilder(grundy.WithLogger(logger), grundy.WithLimit(cfg.Table.Limit))
	if err := b.Extend(cfg.Table.MaxSize); err != nil {
		return err
	}
	table, err := b.Prefix(cfg.Table.MaxSize)
	if err != nil {
		return err
	}

	stats := table.Stats()
	logger.Info().
		Int("sizes", stats.Sizes).
		Uint32("max_value", uint32(stats.MaxValue)).
		Int("max_value_at", stats.MaxValueAt).
		Int("zero_positions", stats.ZeroCount).
		Dur("elapsed", b.Stats().Elapsed).
		Msg("Grundy table complete")

	return listing.NewWriter(out, format, cfg.Output.ZerosOnly).Write(table)
}

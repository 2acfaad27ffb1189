package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/vidkit/config"
	"github.com/bnema/vidkit/internal/adapter/ffmpeg"
	sqlitestore "github.com/bnema/vidkit/internal/adapter/storage/sqlite"
	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/infrastructure/logger"
	"github.com/bnema/vidkit/internal/port"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "vidkit",
		Short:         "Probe, convert and frame-sample video files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.ensureConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newFramesCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

// commandContext carries lazily loaded configuration and adapter
// constructors shared by the subcommands.
type commandContext struct {
	cfg *config.Config
}

func (c *commandContext) ensureConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *commandContext) prober() port.Prober {
	return ffmpeg.NewProber(c.cfg.FFprobeBin)
}

func (c *commandContext) transcoder() port.Transcoder {
	return ffmpeg.NewTranscoder(c.cfg.FFmpegBin)
}

func (c *commandContext) opener() port.VideoOpener {
	return ffmpeg.NewVideoOpener(c.cfg.FFmpegBin, c.prober())
}

func (c *commandContext) openStore() (*sqlitestore.Store, error) {
	if err := os.MkdirAll(c.cfg.DataDir, 0755); err != nil {
		return nil, err
	}
	return sqlitestore.NewStore(c.cfg.DataDir)
}

// recordRun appends a run to the catalog. Catalog failures never override
// the outcome of the operation itself; they are logged and dropped.
func (c *commandContext) recordRun(run *domain.Run) {
	store, err := c.openStore()
	if err != nil {
		logger.Warn.Printf("run catalog unavailable: %v", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Save(run); err != nil {
		logger.Warn.Printf("failed to record run: %v", err)
	}
}

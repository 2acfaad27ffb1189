package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/vidkit/internal/adapter/imagefile"
	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/service"
)

func newFramesCommand(ctx *commandContext) *cobra.Command {
	var intervalFlag int

	cmd := &cobra.Command{
		Use:   "frames <file>",
		Short: "Extract every Nth frame of a video as JPEG images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			sampler, err := service.NewFrameSampler(inputPath, ctx.cfg.FrameExt, ctx.opener(), imagefile.NewWriter())
			if err != nil {
				return err
			}
			sampler.SetProgressOutput(cmd.ErrOrStderr())

			summary, err := sampler.ExtractFrames(cmd.Context(), intervalFlag)

			run := domain.NewRun(domain.RunKindFrames, inputPath)
			run.Stride = intervalFlag
			if err != nil {
				run.MarkFailed(err)
				ctx.recordRun(run)
				return err
			}
			run.OutputPath = summary.OutputDir
			run.FramesRead = summary.FramesRead
			run.FramesExtracted = summary.FramesExtracted
			ctx.recordRun(run)

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d of %d frames into %s\n",
				summary.FramesExtracted, summary.FramesRead, summary.OutputDir)
			return nil
		},
	}

	cmd.Flags().IntVarP(&intervalFlag, "interval", "n", 1, "Sampling stride: keep every Nth frame")

	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/service"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a video file to another container format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			svc, err := service.NewConversionService(cmd.Context(), inputPath, ctx.prober(), ctx.transcoder())
			if err != nil {
				return err
			}

			if !svc.Validate() {
				return fmt.Errorf("%s is not suitable for conversion", inputPath)
			}

			outputPath, err := svc.Convert(cmd.Context(), formatFlag, outputFlag)
			if errors.Is(err, domain.ErrSameFormat) {
				// Informational: nothing was converted, nothing failed.
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %v\n", err)
				return nil
			}

			run := domain.NewRun(domain.RunKindConvert, inputPath)
			run.Format = formatFlag
			run.OutputPath = outputPath
			if err != nil {
				run.MarkFailed(err)
				ctx.recordRun(run)
				return err
			}
			ctx.recordRun(run)

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully converted %s to %s\n", inputPath, outputPath)

			if !svc.VerifyOutput(cmd.Context(), outputPath) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: converted file failed verification")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Target container format (e.g. mp4, matroska)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (default: input path with the new extension)")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

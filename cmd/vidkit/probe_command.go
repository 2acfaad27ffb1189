package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/service"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a video file's container and stream metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.NewConversionService(cmd.Context(), args[0], ctx.prober(), ctx.transcoder())
			if err != nil {
				return err
			}

			summary, err := svc.Describe()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), streamTable(svc.Probe()))

			if !svc.Validate() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: file is not suitable for conversion")
			}
			return nil
		},
	}
}

func streamTable(probe *domain.SimplifiedProbe) string {
	headers := []string{"#", "Type", "Codec", "Frame rate", "Resolution", "Color space"}
	rows := make([][]string, 0, len(probe.Streams))
	for i := range probe.Streams {
		s := &probe.Streams[i]
		rows = append(rows, []string{
			strconv.Itoa(i),
			strOr(s.CodecType),
			strOr(s.CodecName),
			frameRateOr(s.FrameRate),
			resolutionOr(s.Width, s.Height),
			strOr(s.ColorSpace),
		})
	}
	return renderTable(headers, rows)
}

func strOr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func frameRateOr(s *string) string {
	if s == nil {
		return "-"
	}
	if fr := domain.FormatFrameRate(*s); fr != "" {
		return fr
	}
	return "-"
}

func resolutionOr(w, h *int) string {
	if w == nil || h == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", *w, *h)
}

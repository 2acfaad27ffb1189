package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bnema/vidkit/internal/domain"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversion and extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRecent(limitFlag)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			headers := []string{"Kind", "Input", "Output", "Frames", "Status", "When"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					string(run.Kind),
					run.InputPath,
					run.OutputPath,
					framesColumn(run),
					string(run.Status),
					humanize.Time(run.CreatedAt),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "l", 20, "Maximum number of runs to list")

	return cmd
}

func framesColumn(run *domain.Run) string {
	if run.Kind != domain.RunKindFrames {
		return "-"
	}
	return strconv.Itoa(run.FramesExtracted) + "/" + strconv.Itoa(run.FramesRead)
}

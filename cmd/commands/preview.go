package commands

// Command to print the heatmap in the terminal
// Renders coloured blocks with lipgloss, bucketing years to the terminal width

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/render"

	"github.com/spf13/cobra"
)

var previewColumns int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a coloured preview of the heatmap in the terminal",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewColumns, "columns", defaultColumns(), "Terminal width in characters (env: COLUMNS)")
}

func defaultColumns() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 100
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	chart, err := newPipeline(cfg, nil, "").Build(ctx)
	if err != nil {
		if errors.Is(err, render.ErrNothingDrawn) {
			return nil
		}
		return err
	}
	return charts.Preview(cmd.OutOrStdout(), chart, previewColumns)
}

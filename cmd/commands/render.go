package commands

// Command to render the heatmap once
// Fetches the dataset, lays out the chart and writes every configured format
// A failed fetch is logged as a warning and nothing is written

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"temperature-heatmap/internal/features/render"
	logging "temperature-heatmap/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the dataset once and write the configured chart formats",
	Long:  `Fetch the temperature dataset, build the heatmap and write each format in output.formats to output.dir.`,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, err := renderOnce(ctx)
	return err
}

// renderOnce runs the configured pipeline. When nothing could be drawn it
// returns a nil result and a nil error; the warning is already logged.
func renderOnce(ctx context.Context) (*render.Result, error) {
	p := newPipeline(cfg, cfg.Output.Formats, cfg.Output.Dir)
	res, err := p.Run(ctx)
	if err != nil {
		if errors.Is(err, render.ErrNothingDrawn) {
			return nil, nil
		}
		logging.LogError("Render failed", zap.Error(err))
		return nil, err
	}

	for _, out := range res.Outputs {
		logging.LogInfo("Chart written",
			zap.String("format", out.Format),
			zap.String("path", out.Path),
			zap.Int("bytes", len(out.Data)))
		fmt.Fprintln(os.Stdout, out.Path)
	}
	return res, nil
}

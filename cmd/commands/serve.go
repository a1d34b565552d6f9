package commands

// Command to serve the heatmap over HTTP
// Every page load fetches the dataset once and renders it
// Implements graceful shutdown for proper termination

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "temperature-heatmap/internal/api/http"
	logging "temperature-heatmap/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive heatmap page and chart images over HTTP",
	Long:  `Serve / (interactive page), /chart.svg, /chart.png, /echarts, /trend.png, /api/v1/cells and /health.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := httpapi.NewApp(newDatasetClient(cfg), chartOptions(cfg))
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logging.LogSuccess("Server is running", zap.String("addr", addr), zap.String("dataset", cfg.Dataset.URL))

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError("Server stopped", zap.Error(err))
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.LogInfo("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.LogWarn("Error during shutdown", zap.Error(err))
		return nil
	}
	logging.LogSuccess("Server stopped gracefully")
	return nil
}

package commands

// Command to keep the rendered charts fresh
// Re-renders on a gocron schedule and optionally posts the PNG to Telegram
// When Telegram is configured, also answers /heatmap and /trend in the chat
// Implements graceful shutdown for proper termination

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	bot "temperature-heatmap/bots_monitor"
	logging "temperature-heatmap/internal/infra/log"
	"temperature-heatmap/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchPublish bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the charts every watch.interval",
	Long:  `Re-render the configured formats every watch.interval. With --publish and Telegram configured, each fresh PNG is sent to the chat.`,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchPublish, "publish", false, "Send each rendered PNG to Telegram")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup

	publisher, api, err := initializeBot(cfg)
	if err != nil {
		return err
	}
	if publisher != nil {
		handler := bot.NewCommandHandler(publisher, bot.PipelineSource(newPipeline(cfg, nil, "")))
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.RunCommandHandler(ctx, api, handler)
		}()
	} else if watchPublish {
		logging.LogWarn("--publish set but Telegram is not configured, charts will only be written to disk")
	}

	sched := scheduler.New(cfg.Watch.Interval, 0, func(ctx context.Context) error {
		res, err := renderOnce(ctx)
		if err != nil || res == nil {
			return err
		}
		if watchPublish && publisher != nil {
			return publishResult(publisher, res)
		}
		return nil
	})
	if err := sched.Start(ctx); err != nil {
		logging.LogError("Failed to start scheduler", zap.Error(err))
		return err
	}

	logging.LogSuccess("Watching dataset", zap.Duration("interval", cfg.Watch.Interval))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, gracefully stopping...")
	sched.Stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.LogSuccess("Stopped gracefully")
	case <-time.After(10 * time.Second):
		logging.LogWarn("Timeout waiting for command handler to stop, forcing shutdown")
	}
	return nil
}

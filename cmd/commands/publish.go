package commands

// Command to post the heatmap to Telegram
// Renders the PNG once and sends it with the subtitle as caption

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"temperature-heatmap/internal/clients_api/telegram"
	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/render"
	"temperature-heatmap/internal/infra/config"
	logging "temperature-heatmap/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the heatmap PNG and send it to the Telegram chat",
	RunE:  runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	publisher, _, err := initializeBot(cfg)
	if err != nil {
		return err
	}
	if publisher == nil {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id are required for publish")
	}

	res, err := newPipeline(cfg, []string{"png"}, cfg.Output.Dir).Run(ctx)
	if err != nil {
		if errors.Is(err, render.ErrNothingDrawn) {
			return nil
		}
		return err
	}
	return publishResult(publisher, res)
}

// initializeBot returns nil values when Telegram is not configured.
func initializeBot(cfg *config.Config) (*telegram.Publisher, *tgbotapi.BotAPI, error) {
	if !cfg.Telegram.Enabled() {
		return nil, nil, nil
	}
	chatID, err := cfg.Telegram.ChatIDInt()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid telegram.chat_id: %w", err)
	}
	publisher, bot, err := telegram.NewPublisher(cfg.Telegram.BotToken, chatID)
	if err != nil {
		logging.LogError("Failed to initialize Telegram bot", zap.Error(err))
		return nil, nil, err
	}
	return publisher, bot, nil
}

// publishResult sends the PNG output of res, rendering it in memory when the
// pipeline did not produce one.
func publishResult(publisher *telegram.Publisher, res *render.Result) error {
	if out, ok := res.Find("png"); ok {
		if out.Path != "" {
			return publisher.SendPhoto(out.Path, res.Chart.Subtitle)
		}
		return publisher.SendPhotoBytes("heatmap.png", out.Data, res.Chart.Subtitle)
	}

	data, err := charts.RenderBytes(charts.PNG{}, res.Chart)
	if err != nil {
		return err
	}
	return publisher.SendPhotoBytes("heatmap.png", data, res.Chart.Subtitle)
}

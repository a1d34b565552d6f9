package bot

// Package bot answers chart commands in the configured Telegram chat.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"temperature-heatmap/internal/clients_api/telegram"
	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/heatmap"
	"temperature-heatmap/internal/features/render"
	log "temperature-heatmap/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = "" +
	"Commands:\n" +
	"• <code>/heatmap</code> - monthly temperature heatmap\n" +
	"• <code>/trend</code> - annual mean temperature line\n" +
	"• <code>/helps</code> - this message"

// ChartSource renders one format from a fresh fetch.
type ChartSource func(ctx context.Context, format string) (data []byte, caption string, err error)

// PipelineSource adapts a render pipeline into a ChartSource.
func PipelineSource(p *render.Pipeline) ChartSource {
	return func(ctx context.Context, format string) ([]byte, string, error) {
		r, err := charts.Lookup(format)
		if err != nil {
			return nil, "", err
		}
		chart, err := p.Build(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err := charts.RenderBytes(r, chart)
		if err != nil {
			return nil, "", err
		}
		return data, chart.Subtitle, nil
	}
}

// CommandHandler answers commands sent to one chat and ignores the rest.
type CommandHandler struct {
	publisher *telegram.Publisher
	source    ChartSource
}

func NewCommandHandler(publisher *telegram.Publisher, source ChartSource) *CommandHandler {
	return &CommandHandler{publisher: publisher, source: source}
}

// RunCommandHandler polls updates until ctx is done.
func RunCommandHandler(ctx context.Context, bot *tgbotapi.BotAPI, h *CommandHandler) {
	if bot == nil {
		log.LogWarn("Bot is nil, command handler not started")
		return
	}

	log.LogInfo("Starting command handler", zap.Int64("chatID", h.publisher.ChatID()))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		h.Handle(ctx, update.Message)
	}
	log.LogInfo("Command handler stopped")
}

// Handle answers a single message. It returns the command it served, or ""
// when the message was ignored.
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) string {
	if message.Chat == nil || message.Chat.ID != h.publisher.ChatID() || !message.IsCommand() {
		return ""
	}

	command := message.Command()
	log.LogDebug("Received command",
		zap.String("command", command),
		zap.String("args", message.CommandArguments()),
		zap.Int64("chatID", message.Chat.ID))

	switch command {
	case "heatmap":
		h.sendChart(ctx, message, "png", "heatmap.png")
	case "trend":
		h.sendChart(ctx, message, "trend", "trend.png")
	case "helps", "help", "start":
		if err := h.publisher.SendText(message.Chat.ID, helpText, message.MessageID); err != nil {
			log.LogError("Failed to send help message", zap.Error(err))
		}
	default:
		return ""
	}
	return command
}

func (h *CommandHandler) sendChart(ctx context.Context, message *tgbotapi.Message, format, name string) {
	data, caption, err := h.source(ctx, format)
	if err != nil {
		reply := "Chart unavailable, try again later."
		if errors.Is(err, charts.ErrNotEnoughYears) {
			reply = "Not enough years of data for a trend."
		}
		log.LogWarn("Chart command failed", zap.String("format", format), zap.Error(err))
		if err := h.publisher.SendText(message.Chat.ID, reply, message.MessageID); err != nil {
			log.LogError("Failed to send error reply", zap.Error(err))
		}
		return
	}

	caption = strings.TrimSpace(fmt.Sprintf("%s\n%s", captionTitle(format), caption))
	file := tgbotapi.FileBytes{Name: name, Bytes: data}
	if err := h.publisher.SendPhotoTo(message.Chat.ID, file, caption, message.MessageID); err != nil {
		log.LogError("Failed to send chart reply", zap.String("format", format), zap.Error(err))
	}
}

func captionTitle(format string) string {
	if format == "trend" {
		return "Annual Mean Land-Surface Temperature"
	}
	return heatmap.DefaultTitle
}

package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"temperature-heatmap/internal/clients_api/telegram"
	"temperature-heatmap/internal/features/charts"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.sent = append(r.sent, c)
	return tgbotapi.Message{}, nil
}

func commandMessage(chatID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	return &tgbotapi.Message{
		MessageID: 11,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func newHandler(source ChartSource) (*CommandHandler, *recordingSender) {
	s := &recordingSender{}
	return NewCommandHandler(telegram.NewPublisherWithSender(s, 42), source), s
}

func TestHeatmapCommandSendsPhoto(t *testing.T) {
	var gotFormat string
	h, s := newHandler(func(ctx context.Context, format string) ([]byte, string, error) {
		gotFormat = format
		return []byte("png-bytes"), "1900 - 1910: base temperature 8.66°C", nil
	})

	if cmd := h.Handle(context.Background(), commandMessage(42, "/heatmap")); cmd != "heatmap" {
		t.Fatalf("expected heatmap command, got %q", cmd)
	}
	if gotFormat != "png" {
		t.Fatalf("expected png format, got %q", gotFormat)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(s.sent))
	}
	photo, ok := s.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("expected photo reply, got %T", s.sent[0])
	}
	if photo.ReplyToMessageID != 11 || photo.ChatID != 42 {
		t.Fatalf("unexpected reply target %+v", photo.BaseChat)
	}
	if !strings.Contains(photo.Caption, "Monthly Global Land-Surface Temperature") ||
		!strings.Contains(photo.Caption, "base temperature 8.66°C") {
		t.Fatalf("unexpected caption %q", photo.Caption)
	}
}

func TestTrendCommandNotEnoughYears(t *testing.T) {
	h, s := newHandler(func(ctx context.Context, format string) ([]byte, string, error) {
		return nil, "", charts.ErrNotEnoughYears
	})

	h.Handle(context.Background(), commandMessage(42, "/trend"))
	msg, ok := s.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected text reply, got %T", s.sent[0])
	}
	if !strings.Contains(msg.Text, "Not enough years") {
		t.Fatalf("unexpected reply %q", msg.Text)
	}
}

func TestFetchFailureRepliesWithText(t *testing.T) {
	h, s := newHandler(func(ctx context.Context, format string) ([]byte, string, error) {
		return nil, "", errors.New("nothing drawn")
	})

	h.Handle(context.Background(), commandMessage(42, "/heatmap"))
	if msg, ok := s.sent[0].(tgbotapi.MessageConfig); !ok || !strings.Contains(msg.Text, "unavailable") {
		t.Fatalf("unexpected reply %#v", s.sent[0])
	}
}

func TestIgnoredMessages(t *testing.T) {
	h, s := newHandler(func(ctx context.Context, format string) ([]byte, string, error) {
		t.Fatalf("source should not be called")
		return nil, "", nil
	})

	tests := []*tgbotapi.Message{
		commandMessage(99, "/heatmap"),
		commandMessage(42, "/unknown"),
		{Text: "heatmap please", Chat: &tgbotapi.Chat{ID: 42}},
	}
	for _, m := range tests {
		if cmd := h.Handle(context.Background(), m); cmd != "" {
			t.Fatalf("message %q should be ignored, got %q", m.Text, cmd)
		}
	}
	if len(s.sent) != 0 {
		t.Fatalf("expected no replies, got %d", len(s.sent))
	}
}

func TestHelpCommand(t *testing.T) {
	h, s := newHandler(nil)
	if cmd := h.Handle(context.Background(), commandMessage(42, "/helps")); cmd != "helps" {
		t.Fatalf("expected helps, got %q", cmd)
	}
	msg := s.sent[0].(tgbotapi.MessageConfig)
	if msg.ParseMode != tgbotapi.ModeHTML || !strings.Contains(msg.Text, "/heatmap") {
		t.Fatalf("unexpected help reply %+v", msg)
	}
}

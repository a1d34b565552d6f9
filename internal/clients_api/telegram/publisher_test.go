package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestSendPhoto(t *testing.T) {
	s := &fakeSender{}
	p := NewPublisherWithSender(s, -100123)

	if err := p.SendPhoto("out/heatmap.png", "1753 - 2015: base temperature 8.66°C"); err != nil {
		t.Fatalf("SendPhoto failed: %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(s.sent))
	}
	photo, ok := s.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("expected PhotoConfig, got %T", s.sent[0])
	}
	if photo.ChatID != -100123 {
		t.Fatalf("unexpected chat id %d", photo.ChatID)
	}
	if photo.Caption != "1753 - 2015: base temperature 8.66°C" || photo.ParseMode != tgbotapi.ModeHTML {
		t.Fatalf("unexpected caption %q (%s)", photo.Caption, photo.ParseMode)
	}
	if fp, ok := photo.File.(tgbotapi.FilePath); !ok || string(fp) != "out/heatmap.png" {
		t.Fatalf("unexpected file %#v", photo.File)
	}
}

func TestSendPhotoBytesEscapesCaption(t *testing.T) {
	s := &fakeSender{}
	p := NewPublisherWithSender(s, 7)

	if err := p.SendPhotoBytes("trend.png", []byte{1, 2, 3}, "a < b & c"); err != nil {
		t.Fatalf("SendPhotoBytes failed: %v", err)
	}
	photo := s.sent[0].(tgbotapi.PhotoConfig)
	if photo.Caption != "a &lt; b &amp; c" {
		t.Fatalf("caption not escaped: %q", photo.Caption)
	}
	if fb, ok := photo.File.(tgbotapi.FileBytes); !ok || fb.Name != "trend.png" || len(fb.Bytes) != 3 {
		t.Fatalf("unexpected file %#v", photo.File)
	}
}

func TestSendPhotoError(t *testing.T) {
	s := &fakeSender{err: errors.New("Bad Request: chat not found")}
	p := NewPublisherWithSender(s, 7)
	if err := p.SendPhoto("x.png", ""); err == nil {
		t.Fatalf("expected error")
	}
}

package telegram

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	logging "temperature-heatmap/internal/infra/log"
)

// Sender is the part of *tgbotapi.BotAPI the publisher needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Publisher posts rendered charts to a single chat.
type Publisher struct {
	sender Sender
	chatID int64
}

// NewPublisher connects to the Bot API with token.
func NewPublisher(token string, chatID int64) (*Publisher, *tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return NewPublisherWithSender(bot, chatID), bot, nil
}

func NewPublisherWithSender(sender Sender, chatID int64) *Publisher {
	return &Publisher{sender: sender, chatID: chatID}
}

func (p *Publisher) ChatID() int64 { return p.chatID }

// SendPhoto posts an image from disk. The caption is sent as escaped HTML.
func (p *Publisher) SendPhoto(path, caption string) error {
	return p.SendPhotoTo(p.chatID, tgbotapi.FilePath(path), caption, 0)
}

// SendPhotoBytes posts an in-memory image.
func (p *Publisher) SendPhotoBytes(name string, data []byte, caption string) error {
	return p.SendPhotoTo(p.chatID, tgbotapi.FileBytes{Name: name, Bytes: data}, caption, 0)
}

// SendPhotoTo posts file to chatID, optionally as a reply.
func (p *Publisher) SendPhotoTo(chatID int64, file tgbotapi.RequestFileData, caption string, replyTo int) error {
	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = html.EscapeString(caption)
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyToMessageID = replyTo

	if _, err := p.sender.Send(photo); err != nil {
		logging.LogError("Failed to send chart photo", zap.Int64("chat_id", chatID), zap.Error(err))
		return fmt.Errorf("failed to send photo: %w", err)
	}
	logging.LogSuccess("Chart sent to Telegram", zap.Int64("chat_id", chatID))
	return nil
}

// SendText posts an HTML message to chatID, optionally as a reply.
func (p *Publisher) SendText(chatID int64, text string, replyTo int) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyTo
	if _, err := p.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes rank-change messages to a Telegram chat. A nil *Notifier
// is valid and sends nothing, so callers never have to branch on whether
// notifications are configured.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier returns nil without error when token or chatID are unset.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	slog.Info("Telegram notifications enabled", "username", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: chatID}, nil
}

func (n *Notifier) Send(text string) error {
	if n == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Error sending telegram message", "error", err)
		return err
	}
	return nil
}

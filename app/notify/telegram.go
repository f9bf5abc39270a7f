package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"rssdigest/app/config"
	"rssdigest/app/feed"
)

// TelegramNotifier sends a MarkdownV2 message to a fixed chat through the
// Bot API.
type TelegramNotifier struct {
	bot    *tele.Bot
	chatID int64
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat_id %q: %w", cfg.ChatID, err)
	}

	// Offline skips the getMe round-trip at startup: the bot only ever sends.
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.BotToken,
		Offline: true,
		Client:  &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Name() string {
	return "telegram"
}

func (n *TelegramNotifier) Send(_ context.Context, item feed.Item, summary string) error {
	_, err := n.bot.Send(tele.ChatID(n.chatID), messageText(item, summary), &tele.SendOptions{
		ParseMode: tele.ModeMarkdownV2,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

// messageText renders the MarkdownV2 message body. Plain-text fields go
// through EscapeMarkdown; the link target only needs its own reserved pair
// escaped, escaping more would corrupt the URL.
func messageText(item feed.Item, summary string) string {
	return fmt.Sprintf("📰 *%s*\n\n*%s*\n\n%s\n\n[🔗 Read more](%s)\n\n_Category: %s_",
		EscapeMarkdown(item.FeedName),
		EscapeMarkdown(item.Title),
		EscapeMarkdown(summary),
		escapeLinkURL(item.URL),
		EscapeMarkdown(item.Category))
}

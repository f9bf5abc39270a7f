package notify

import (
	"context"
	"log/slog"

	"rssdigest/app/config"
	"rssdigest/app/feed"
)

// Dispatcher fans one item out to every configured channel. Channels are
// independent: a failing channel is logged and reported in the result map,
// never surfaced as an error to the caller.
type Dispatcher struct {
	channels []Notifier
}

func NewDispatcher(cfg config.NotifyConfig) *Dispatcher {
	var channels []Notifier

	if cfg.Feishu.Enabled && cfg.Feishu.WebhookURL != "" {
		channels = append(channels, NewFeishuNotifier(cfg.Feishu.WebhookURL))
	}

	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier, err := NewTelegramNotifier(cfg.Telegram)
		if err != nil {
			slog.Warn("Skipping telegram channel", "error", err)
		} else {
			channels = append(channels, notifier)
		}
	}

	if cfg.Email.Enabled && cfg.Email.SMTPHost != "" && cfg.Email.Username != "" && cfg.Email.To != "" {
		channels = append(channels, NewEmailNotifier(cfg.Email))
	}

	return &Dispatcher{channels: channels}
}

// HasChannels reports whether at least one channel was configured.
func (d *Dispatcher) HasChannels() bool {
	return len(d.channels) > 0
}

// Run delivers one item to every channel and returns per-channel success.
func (d *Dispatcher) Run(ctx context.Context, item feed.Item, summary string) map[string]bool {
	results := make(map[string]bool, len(d.channels))

	for _, channel := range d.channels {
		if err := channel.Send(ctx, item, summary); err != nil {
			slog.Error("Notification failed", "channel", channel.Name(),
				"title", item.Title, "error", err)
			results[channel.Name()] = false
			continue
		}

		slog.Debug("Notification sent", "channel", channel.Name(), "title", item.Title)
		results[channel.Name()] = true
	}

	return results
}

// Package notify delivers spike alerts via the Telegram Bot API. Detected
// spikes are formatted into human-readable messages and sent with retry
// logic for transient API failures.
package notify

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trendscope/trendscope/internal/models"
)

// Notifier sends spike alerts to a Telegram chat.
type Notifier struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewNotifier creates a Telegram notifier. Zero or negative retry settings
// fall back to 3 attempts with a one second base delay.
func NewNotifier(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Notifier{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// Send delivers a spike alert, retrying with linear backoff.
func (n *Notifier) Send(spikes []models.Spike) error {
	if len(spikes) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, formatMessage(spikes))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < n.maxRetries; i++ {
		_, err := n.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(n.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", n.maxRetries, lastErr)
}

// formatMessage renders spikes into a MarkdownV2 message.
func formatMessage(spikes []models.Spike) string {
	message := "🚨 *Trend Spikes Detected*\n\n"

	if len(spikes) > 0 {
		dateStr := escapeMarkdownV2(spikes[0].Timestamp.Format("2006-01-02 15:04:05"))
		message += fmt.Sprintf("📅 Detected: %s\n\n", dateStr)
	}

	for i, spike := range spikes {
		name := escapeMarkdownV2(spike.TrendName)
		zStr := escapeMarkdownV2(fmt.Sprintf("%.1f", spike.ZScore))
		scoreStr := escapeMarkdownV2(fmt.Sprintf("%.2f", spike.CurrentScore))
		baselineStr := escapeMarkdownV2(fmt.Sprintf("%.2f", spike.BaselineMean))

		message += fmt.Sprintf("%d\\. %s %s\n", i+1, severityEmoji(spike.Severity), name)
		message += fmt.Sprintf("   Severity: *%s* \\(z\\-score %s\\)\n", spike.Severity, zStr)
		message += fmt.Sprintf("   Score: %s \\(baseline %s\\)\n\n", scoreStr, baselineStr)
	}

	return message
}

func severityEmoji(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return "🔴"
	case models.SeverityHigh:
		return "🟠"
	default:
		return "🟡"
	}
}

// escapeMarkdownV2 escapes the characters Telegram MarkdownV2 reserves:
// _ * [ ] ( ) ~ ` > # + - = | { } . !
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}

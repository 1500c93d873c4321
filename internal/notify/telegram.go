// Package notify sends cycle reports to operators over Telegram.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"discussion_bot/internal/pipeline"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram reports cycle results to a single chat.
//
// A failing cycle is reported once per outcome change, so an hourly failure
// does not repeat the same message; the first successful cycle afterwards is
// reported as a recovery. Created channels and failed creates are always reported.
type Telegram struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger

	mu   sync.Mutex
	last pipeline.Outcome
}

// NewTelegram creates a notifier using the given bot token.
func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log, last: pipeline.OutcomeOK}, nil
}

// Report sends a message for res when it is worth an operator's attention.
func (t *Telegram) Report(_ context.Context, res *pipeline.CycleResult) {
	t.mu.Lock()
	prev := t.last
	t.last = res.Outcome
	t.mu.Unlock()

	var text string
	switch {
	case !res.OK():
		if res.Outcome == prev {
			return
		}
		text = FormatFailure(res)
	case prev != pipeline.OutcomeOK:
		text = FormatRecovery(prev) + "\n\n" + FormatReport(res)
	case len(res.Created) > 0 || len(res.Failed) > 0:
		text = FormatReport(res)
	default:
		return
	}

	t.SendMessage(text)
}

// SendMessage sends a text message to the configured chat.
func (t *Telegram) SendMessage(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("send message", "chat_id", t.chatID, "error", err)
	}
}

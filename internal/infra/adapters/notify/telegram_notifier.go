package notify

import (
	"context"
	"fmt"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.RunNotifier = (*TelegramNotifier)(nil)

// TelegramNotifier posts run outcomes to an operator chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("%w: telegram token or chat id missing", domain.ErrMissingCredentials)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) NotifyRunFinished(ctx context.Context, run *model.PipelineRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := fmt.Sprintf("Pipeline run %s (%s) finished: %s in %dms",
		run.ID, run.ProjectName, run.Status, run.DurationMs)
	if run.Error != "" {
		text += "\n" + run.Error
	}
	if run.Status == model.RunStatusCompleted && run.Response != nil && run.Response.Assets.VideoURL != "" {
		text += "\n" + run.Response.Assets.VideoURL
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}

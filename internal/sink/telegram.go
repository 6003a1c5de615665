package sink

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramPoster is the alternative social sink: crisis alerts go to a
// Telegram channel instead of X.
type TelegramPoster struct {
	bot       *tgbotapi.BotAPI
	channelID int64
}

func NewTelegramPoster(bot *tgbotapi.BotAPI, channelID int64) *TelegramPoster {
	return &TelegramPoster{bot: bot, channelID: channelID}
}

func (p *TelegramPoster) Post(_ context.Context, text string) error {
	_, err := p.bot.Send(tgbotapi.NewMessage(p.channelID, text))
	return err
}

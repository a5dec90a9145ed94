package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"p2p_market/internal/domain/entity"
	"p2p_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TelegramBot шлёт события переходов сделок в операционный чат.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run запускает обработку событий из канала.
func (b *TelegramBot) Run(ctx context.Context, events <-chan entity.DealEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := b.SendEvent(ctx, event); err != nil {
				logger(ctx).Error("failed to send deal event", "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendEvent(ctx context.Context, event entity.DealEvent) error {
	deal := event.Deal

	text := fmt.Sprintf(
		"<b>%s</b>\n\n"+
			"Code: <code>#%s</code>\n"+
			"Status: %s\n"+
			"Amount: %v USDT / %v ETB\n"+
			"Commission: %v USDT",
		event.Action,
		deal.TradeCode,
		deal.Status,
		deal.USDTAmount,
		deal.ETBAmount,
		deal.CommissionAmount,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/coach"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const baseContextKey = "base_context"

type Dialog interface {
	Say(ctx context.Context, id, text string) (core.TurnResult, error)
}

// Bot runs one practice session per Telegram chat.
type Bot struct {
	bot     *tele.Bot
	sender  *sender
	dialog  Dialog
	router  core.CmdRouter
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	dialog Dialog,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		dialog:  dialog,
		router:  router,
		ownerID: cfg.GetTelegramOwnerID(),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Owner ID 0 leaves the bot open, e.g. for a sales team group.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if bot.ownerID != 0 && (c.Sender() == nil || c.Sender().ID != bot.ownerID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Name() string { return "telegram" }

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")

	if err := b.bot.SetCommands(b.menu()); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to set telegram commands")
	}
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) menu() []tele.Command {
	var cmds []tele.Command
	for _, c := range b.router.ListCommands() {
		cmds = append(cmds, tele.Command{Text: c.Name(), Description: c.Description()})
	}
	return cmds
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	id := sessionID(c.Chat().ID)
	ctx = log.WithSession(ctx, id)
	logger := log.FromCtx(ctx)

	if reply, ok := b.router.Execute(ctx, id, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
	}

	_ = c.Notify(tele.Typing)

	res, err := b.dialog.Say(ctx, id, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("turn failed")
		return b.sender.sendMarkdown(ctx, c.Chat(), coach.UserMessage(err), false)
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), res.Message, false); err != nil {
		return err
	}
	if hint := coach.Hint(res); hint != "" {
		return b.sender.sendMarkdown(ctx, c.Chat(), "_"+hint+"_", true)
	}
	return nil
}

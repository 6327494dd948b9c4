package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

type TelegramConfig struct {
	Token   string `env:"COACH_TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID int64  `env:"COACH_TELEGRAM_OWNER_ID"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) GetTelegramToken() string {
	return c.Token
}

// GetTelegramOwnerID returns 0 when the bot is open to every chat.
func (c TelegramConfig) GetTelegramOwnerID() int64 {
	return c.OwnerID
}

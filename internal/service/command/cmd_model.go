package command

import (
	"context"

	"github.com/sandevgo/pitchcoach/internal/core"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	formatter *ResponseFormatter
}

func NewModelCommand(cfg core.ProviderConfig) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the model playing coach and buyer"
}

func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Current Model"),
		c.formatter.Label("Provider", c.cfg.GetProvider()),
		c.formatter.Label("Model", c.cfg.GetModel()),
		c.formatter.Tip("change it with COACH_LLM_PROVIDER and COACH_LLM_MODEL, or run `coach init`"),
	), nil
}

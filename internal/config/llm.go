package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

type LLMConfig struct {
	Provider string `env:"COACH_LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"COACH_LLM_MODEL" envDefault:"gpt-4o"`
	APIKey   string `env:"COACH_LLM_API_KEY"`
	BaseURL  string `env:"COACH_LLM_BASE_URL"`

	GenerationTimeout time.Duration `env:"COACH_GENERATION_TIMEOUT" envDefault:"60s"`
	Temperature       float64       `env:"COACH_LLM_TEMPERATURE" envDefault:"0.7"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c, err := ParseLLMConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func ParseLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c LLMConfig) GetModel() string {
	return c.Model
}

func (c LLMConfig) GetProvider() string {
	return c.Provider
}

func (c LLMConfig) GetAPIKey() string {
	return c.APIKey
}

func (c LLMConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c LLMConfig) GetGenerationTimeout() time.Duration {
	return c.GenerationTimeout
}

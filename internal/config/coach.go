package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

type CoachConfig struct {
	// Score at which the buyer offers to move into negotiation
	ScoreGate int `env:"COACH_SCORE_GATE" envDefault:"6"`
	// Closing below this absolute price is flagged as BELOW_THRESHOLD
	DealThreshold float64 `env:"COACH_DEAL_THRESHOLD" envDefault:"60000"`
	// Corpus chunk size in characters
	ChunkSize int `env:"COACH_CHUNK_SIZE" envDefault:"100000"`

	PitchContextChars       int `env:"COACH_PITCH_CONTEXT_CHARS" envDefault:"2500"`
	ResponseContextChars    int `env:"COACH_RESPONSE_CONTEXT_CHARS" envDefault:"2500"`
	NegotiationContextChars int `env:"COACH_NEGOTIATION_CONTEXT_CHARS" envDefault:"2000"`

	// Generation calls in flight across all sessions
	MaxConcurrentGenerations int `env:"COACH_MAX_CONCURRENT_GENERATIONS" envDefault:"4"`
	// Model context window in tokens; 0 turns the prompt size check off
	ContextWindow int `env:"COACH_CONTEXT_WINDOW" envDefault:"128000"`
}

func NewCoachConfig(ctx context.Context) *CoachConfig {
	c, err := ParseCoachConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Coach config")
	}
	return c
}

func ParseCoachConfig() (*CoachConfig, error) {
	c := &CoachConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c CoachConfig) GetScoreGate() int {
	return c.ScoreGate
}

func (c CoachConfig) GetDealThreshold() float64 {
	return c.DealThreshold
}

func (c CoachConfig) GetChunkSize() int {
	return c.ChunkSize
}

func (c CoachConfig) GetPitchContextChars() int {
	return c.PitchContextChars
}

func (c CoachConfig) GetResponseContextChars() int {
	return c.ResponseContextChars
}

func (c CoachConfig) GetNegotiationContextChars() int {
	return c.NegotiationContextChars
}

func (c CoachConfig) GetMaxConcurrentGenerations() int {
	return c.MaxConcurrentGenerations
}

func (c CoachConfig) GetContextWindow() int {
	return c.ContextWindow
}

package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

// Provider is a generator that can also list its models for the setup wizard.
type Provider interface {
	core.AIProvider
	Models(ctx context.Context) ([]core.Model, error)
}

// Providers lists the accepted values of COACH_LLM_PROVIDER.
var Providers = []string{"openai", "anthropic", "openrouter", "ollama", "litellm", "custom"}

// NewProvider creates the provider selected by configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (Provider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case "openai":
		return NewOpenAI(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAPIKey(), cfg.GetModel()).withBaseURL(cfg.GetBaseURL()), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "ollama":
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "litellm":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("litellm provider needs COACH_LLM_BASE_URL")
		}
		return NewLiteLLM(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("custom provider needs COACH_LLM_BASE_URL")
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}

package llm

import (
	"context"
	"strings"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// LiteLLM is a LiteLLM proxy. Model names are the proxy's aliases,
// e.g. "azure-gpt-4o".
type LiteLLM struct {
	*OpenAICompatible
}

func NewLiteLLM(baseURL, apiKey, model string) *LiteLLM {
	return &LiteLLM{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1"),
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

func (l *LiteLLM) Models(ctx context.Context) ([]core.Model, error) {
	return l.listOpenAIModels(ctx)
}

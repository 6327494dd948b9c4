package llm

import (
	"context"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// CustomOpenAI talks to any server exposing the OpenAI chat completions API.
type CustomOpenAI struct {
	*OpenAICompatible
}

func NewCustomOpenAI(baseURL, apiKey, model string) *CustomOpenAI {
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

func (c *CustomOpenAI) Models(ctx context.Context) ([]core.Model, error) {
	return c.listOpenAIModels(ctx)
}

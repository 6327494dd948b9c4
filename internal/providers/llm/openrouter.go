package llm

import (
	"context"

	"github.com/sandevgo/pitchcoach/internal/core"
)

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://openrouter.ai/api",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.CoachRepositoryURL,
				"X-Title":      core.CoachName,
			},
		}),
	}
}

func (o *OpenRouter) Models(ctx context.Context) ([]core.Model, error) {
	return o.listOpenAIModels(ctx)
}

package llm

import (
	"context"

	"github.com/sandevgo/pitchcoach/internal/core"
)

type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://api.openai.com",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

func (o *OpenAI) Models(ctx context.Context) ([]core.Model, error) {
	return o.listOpenAIModels(ctx)
}

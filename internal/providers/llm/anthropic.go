package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sandevgo/pitchcoach/internal/core"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4096
)

type Anthropic struct {
	baseProvider
}

func NewAnthropic(apiKey, model string) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("https://api.anthropic.com", apiKey, model),
	}
}

func (a *Anthropic) withBaseURL(baseURL string) *Anthropic {
	if baseURL != "" {
		a.baseURL = baseURL
	}
	return a
}

func (a *Anthropic) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}
}

// Chat moves system messages into the top-level system field, the only
// place the Messages API accepts them, and folds runs of the same role.
func (a *Anthropic) Chat(ctx context.Context, history []core.Message, opts core.ChatOptions) (core.Message, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	var (
		system   []string
		messages []msg
	)
	for _, m := range history {
		if m.Role == core.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		// the Messages API wants user and assistant turns to alternate
		if n := len(messages); n > 0 && messages[n-1].Role == m.Role {
			messages[n-1].Content += "\n\n" + m.Content
			continue
		}
		messages = append(messages, msg{Role: m.Role, Content: m.Content})
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}
	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxTokens,
		"messages":   messages,
	}
	if len(system) > 0 {
		payload["system"] = strings.Join(system, "\n\n")
	}
	if opts.Temperature > 0 {
		payload["temperature"] = opts.Temperature
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, a.headers())
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("%w: read body: %v", core.ErrGenerationUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return core.Message{}, statusError(resp.StatusCode, data)
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("%w: decode: %v", core.ErrGenerationUpstream, err)
	}

	var text strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return core.Message{Role: core.RoleAssistant, Content: text.String()}, nil
}

type anthropicModelPage struct {
	Data []struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Type        string `json:"type"`
	} `json:"data"`
	HasMore bool   `json:"has_more"`
	LastID  string `json:"last_id"`
}

// Models walks every page of the model list.
func (a *Anthropic) Models(ctx context.Context) ([]core.Model, error) {
	var (
		models []core.Model
		query  = url.Values{"limit": {"1000"}}
	)
	for {
		var page anthropicModelPage
		if err := a.get(ctx, "/v1/models?"+query.Encode(), &page); err != nil {
			return nil, err
		}
		for _, m := range page.Data {
			if m.Type == "model" {
				models = append(models, core.Model{ID: m.ID, Name: m.DisplayName})
			}
		}
		if !page.HasMore || page.LastID == "" {
			return models, nil
		}
		query.Set("after_id", page.LastID)
	}
}

func (a *Anthropic) get(ctx context.Context, path string, out any) error {
	resp, err := a.doRequest(ctx, http.MethodGet, path, nil, a.headers())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

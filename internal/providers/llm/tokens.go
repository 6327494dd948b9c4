package llm

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// perMessageOverhead approximates the role and separator tokens the chat
// format adds around each message.
const perMessageOverhead = 4

// TokenCounter estimates prompt sizes. The encoding is loaded on first use,
// since tiktoken may need to fetch it.
type TokenCounter struct {
	model string

	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

func NewTokenCounter(model string) *TokenCounter {
	return &TokenCounter{model: model}
}

func (t *TokenCounter) load() {
	t.enc, t.err = tiktoken.EncodingForModel(t.model)
	if t.err != nil {
		t.enc, t.err = tiktoken.GetEncoding("cl100k_base")
	}
	if t.err != nil {
		t.err = fmt.Errorf("get tokenizer: %w", t.err)
	}
}

func (t *TokenCounter) Count(text string) (int, error) {
	t.once.Do(t.load)
	if t.err != nil {
		return 0, t.err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *TokenCounter) CountMessages(history []core.Message) (int, error) {
	total := 0
	for _, m := range history {
		n, err := t.Count(m.Content)
		if err != nil {
			return 0, err
		}
		total += n + perMessageOverhead
	}
	return total, nil
}

package core

import "context"

// AIProvider is the generation capability. Implementations must map failures
// onto ErrGenerationAuth, ErrGenerationTimeout or ErrGenerationUpstream.
type AIProvider interface {
	Chat(ctx context.Context, history []Message, opts ChatOptions) (Message, error)
}

type TokenCounter interface {
	CountMessages(history []Message) (int, error)
}

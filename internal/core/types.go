package core

const (
	CoachName          = "PitchCoach"
	CoachUserAgent     = "PitchCoach/0.1"
	CoachRepositoryURL = "https://github.com/sandevgo/pitchcoach"
	CoachVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length,omitempty"`
}

// ChatOptions tunes a single generation call.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

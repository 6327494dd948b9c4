package coach

import (
	"errors"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// UserMessage turns a turn error into text for chat users.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyCorpus):
		return "No training materials yet. Add some with `coach ingest` first."
	case errors.Is(err, core.ErrSessionNotFound):
		return "No active session. Send /start to begin."
	case errors.Is(err, core.ErrMissingInput):
		return "Please type a reply."
	case errors.Is(err, core.ErrInvalidSessionState):
		return "That doesn't fit this stage of the session. Check /state or /reset to start over."
	case errors.Is(err, core.ErrGenerationAuth):
		return "The AI provider rejected the API key. Check COACH_LLM_API_KEY."
	case errors.Is(err, core.ErrGenerationTimeout):
		return "The AI took too long to answer. Please send the same message again."
	case errors.Is(err, core.ErrGenerationUpstream):
		return "The AI provider failed to answer. Please try again."
	case errors.Is(err, core.ErrContextTooLarge):
		return "This session has grown too long for the model. Send /reset, then /start to begin again."
	case errors.Is(err, core.ErrDocumentNotFound):
		return "No such material."
	default:
		return "Something went wrong: " + err.Error()
	}
}

package core

import "errors"

var (
	ErrEmptyCorpus         = errors.New("no usable reference material")
	ErrMissingInput        = errors.New("empty turn text")
	ErrGenerationAuth      = errors.New("generation auth error")
	ErrGenerationTimeout   = errors.New("generation timeout")
	ErrGenerationUpstream  = errors.New("generation upstream error")
	ErrInvalidSessionState = errors.New("turn not allowed in current session state")
	ErrSessionNotFound     = errors.New("session not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrContextTooLarge     = errors.New("conversation exceeds the model context window")
)

// IsGenerationError reports whether err came from the generation capability.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationAuth) ||
		errors.Is(err, ErrGenerationTimeout) ||
		errors.Is(err, ErrGenerationUpstream)
}

package installer

import (
	"strconv"

	"github.com/sandevgo/pitchcoach/internal/config"
	"github.com/sandevgo/pitchcoach/pkg/env"
)

const (
	ChannelHTTP     = "HTTP API"
	ChannelTelegram = "Telegram"
	ChannelCLI      = "Terminal chat"
)

// InstallState collects the answers of the wizard.
type InstallState struct {
	LLM      config.LLMConfig
	Telegram config.TelegramConfig
	Channel  string
}

func NewInstallState() *InstallState {
	return &InstallState{Channel: ChannelHTTP}
}

// NeedsBaseURL reports whether the provider cannot work without an endpoint.
func (s *InstallState) NeedsBaseURL() bool {
	switch s.LLM.Provider {
	case "litellm", "custom":
		return true
	}
	return false
}

// AcceptsBaseURL reports whether the wizard asks for an endpoint at all.
func (s *InstallState) AcceptsBaseURL() bool {
	return s.NeedsBaseURL() || s.LLM.Provider == "ollama"
}

// KeyOptional is true for self-hosted providers.
func (s *InstallState) KeyOptional() bool {
	return s.AcceptsBaseURL()
}

// EnvFile renders the .env content. Transport flags are always written so
// they override the defaults.
func (s *InstallState) EnvFile() (string, error) {
	llm, err := env.Vars(&s.LLM)
	if err != nil {
		return "", err
	}

	transports := map[string]string{
		"COACH_ENABLE_HTTP":     strconv.FormatBool(s.Channel == ChannelHTTP),
		"COACH_ENABLE_TELEGRAM": strconv.FormatBool(s.Channel == ChannelTelegram),
		"COACH_ENABLE_CLI":      strconv.FormatBool(s.Channel == ChannelCLI),
	}

	var telegram map[string]string
	if s.Channel == ChannelTelegram {
		if telegram, err = env.Vars(&s.Telegram); err != nil {
			return "", err
		}
	}
	return env.Marshal(llm, transports, telegram)
}

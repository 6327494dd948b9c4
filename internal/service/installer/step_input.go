package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pitchcoach/internal/service/ui"
)

// InputStep asks for one line of text. It is skipped when applies returns
// false for the answers collected so far.
type InputStep struct {
	input  textinput.Model
	ready  bool
	prompt string
	err    error

	applies  func(state *InstallState) bool
	setup    func(state *InstallState, in *textinput.Model) (prompt string)
	validate func(state *InstallState, value string) error
	apply    func(state *InstallState, value string) error
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	return ti
}

func secret(in *textinput.Model) {
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
}

// NewBaseURLStep asks for the endpoint of self-hosted providers.
func NewBaseURLStep() Step {
	return &InputStep{
		applies: func(state *InstallState) bool { return state.AcceptsBaseURL() },
		setup: func(state *InstallState, in *textinput.Model) string {
			switch state.LLM.Provider {
			case "ollama":
				in.SetValue("http://localhost:11434")
				return "Ollama URL:"
			case "litellm":
				in.Placeholder = "http://localhost:4000"
				return "LiteLLM proxy URL:"
			default:
				in.Placeholder = "https://api.example.com/v1"
				return "OpenAI-compatible base URL:"
			}
		},
		validate: func(state *InstallState, value string) error {
			if value == "" && state.NeedsBaseURL() {
				return fmt.Errorf("a base URL is required for %s", state.LLM.Provider)
			}
			return nil
		},
		apply: func(state *InstallState, value string) error {
			state.LLM.BaseURL = value
			return nil
		},
	}
}

func NewAPIKeyStep() Step {
	return &InputStep{
		applies: func(state *InstallState) bool { return true },
		setup: func(state *InstallState, in *textinput.Model) string {
			secret(in)
			switch state.LLM.Provider {
			case "anthropic":
				in.Placeholder = "sk-ant-..."
			case "openrouter":
				in.Placeholder = "sk-or-v1-..."
			case "openai":
				in.Placeholder = "sk-..."
			}
			if state.KeyOptional() {
				in.Placeholder = "optional, press enter to skip"
				return "API key (optional):"
			}
			return "API key:"
		},
		validate: func(state *InstallState, value string) error {
			if value == "" && !state.KeyOptional() {
				return fmt.Errorf("%s needs an API key", state.LLM.Provider)
			}
			return nil
		},
		apply: func(state *InstallState, value string) error {
			state.LLM.APIKey = value
			return nil
		},
	}
}

func NewTelegramTokenStep() Step {
	return &InputStep{
		applies: func(state *InstallState) bool { return state.Channel == ChannelTelegram },
		setup: func(state *InstallState, in *textinput.Model) string {
			secret(in)
			in.Placeholder = "123456789:ABCDEF..."
			return "Telegram bot token:"
		},
		validate: func(state *InstallState, value string) error {
			if value == "" {
				return fmt.Errorf("the bot token is required")
			}
			return nil
		},
		apply: func(state *InstallState, value string) error {
			state.Telegram.Token = value
			return nil
		},
	}
}

func NewTelegramOwnerStep() Step {
	return &InputStep{
		applies: func(state *InstallState) bool { return state.Channel == ChannelTelegram },
		setup: func(state *InstallState, in *textinput.Model) string {
			in.Placeholder = "empty lets every chat practice"
			return "Your Telegram user ID:"
		},
		validate: func(state *InstallState, value string) error {
			if value == "" {
				return nil
			}
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return fmt.Errorf("user ID must be a number")
			}
			return nil
		},
		apply: func(state *InstallState, value string) error {
			if value == "" {
				state.Telegram.OwnerID = 0
				return nil
			}
			id, err := strconv.ParseInt(value, 10, 64)
			state.Telegram.OwnerID = id
			return err
		},
	}
}

func (s *InputStep) Init() tea.Cmd {
	return next
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		if !s.applies(state) {
			return nil, nil
		}
		s.input = newInput()
		s.prompt = s.setup(state, &s.input)
		s.ready = true
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if err := s.validate(state, value); err != nil {
			s.err = err
			return s, nil
		}
		if err := s.apply(state, value); err != nil {
			s.err = err
			return s, nil
		}
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	if !s.ready {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.prompt + "\n\n" + s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(ui.ErrorStyle.Render(s.err.Error()) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}

package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pitchcoach/internal/providers/llm"
	"github.com/sandevgo/pitchcoach/internal/service/ui"
)

// ChoiceStep is a single-select list.
type ChoiceStep struct {
	title   string
	choices []string
	cursor  int
	apply   func(state *InstallState, choice string)
}

// NewProviderStep selects the generation provider.
func NewProviderStep() Step {
	return &ChoiceStep{
		title:   "Select your AI provider:",
		choices: llm.Providers,
		apply: func(state *InstallState, choice string) {
			state.LLM.Provider = choice
		},
	}
}

// NewChannelStep selects where practice sessions happen.
func NewChannelStep() Step {
	return &ChoiceStep{
		title:   "Where do you want to practice?",
		choices: []string{ChannelHTTP, ChannelTelegram, ChannelCLI},
		apply: func(state *InstallState, choice string) {
			state.Channel = choice
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor])
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(ui.SelectedStyle.Render(fmt.Sprintf("❯ %s", choice)) + "\n")
		} else {
			b.WriteString(ui.ItemStyle.Render(fmt.Sprintf("  %s", choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pitchcoach/internal/service/ui"
)

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps(runtimePath string) []Step {
	return []Step{
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewSaveEnvStep(runtimePath),
		NewInitializeFilesStep(runtimePath),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []item
type errMsg error
type nextMsg struct{}

// next wakes a step up right after it becomes current, so steps that do not
// apply can pass without waiting for a key press.
func next() tea.Msg { return nextMsg{} }

// wizard walks the steps in order. A step returning nil from Update is done.
type wizard struct {
	steps    []Step
	pos      int
	state    *InstallState
	width    int
	height   int
	quitting bool
	err      error
}

func newWizard(runtimePath string) wizard {
	return wizard{steps: getSteps(runtimePath), state: NewInstallState()}
}

func (w wizard) done() bool { return w.pos >= len(w.steps) }

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return nil
	}
	return w.steps[0].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.quitting || w.done() {
		return w, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.quitting = true
			return w, tea.Quit
		}
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
	case errMsg:
		// the model step shows fetch errors itself and offers a skip
		if _, ok := w.steps[w.pos].(*ModelStep); !ok {
			w.err = msg
			return w, nil
		}
	}

	step, cmd := w.steps[w.pos].Update(msg, w.state, w.width, w.height)
	if step != nil {
		w.steps[w.pos] = step
		return w, cmd
	}
	return w.advance()
}

func (w wizard) advance() (tea.Model, tea.Cmd) {
	w.pos++
	if w.done() {
		return w, tea.Quit
	}
	return w, w.steps[w.pos].Init()
}

func (w wizard) View() string {
	switch {
	case w.quitting:
		return "Setup cancelled.\n"
	case w.err != nil:
		return ui.ErrorStyle.Render("Error: "+w.err.Error()) + "\n\n(press ctrl+c to quit)\n"
	case w.done():
		return "Configuration complete!\n"
	}

	header := ui.HeaderStyle.Render("Setting up PitchCoach 🤝")
	progress := ui.DescStyle.Render(fmt.Sprintf("step %d of %d", w.pos+1, len(w.steps)))
	return header + "  " + progress + "\n\n" + w.steps[w.pos].View(w.state)
}

// RunWizard starts the TUI and writes the configuration into runtimePath.
func RunWizard(runtimePath string) (*InstallState, error) {
	final, err := tea.NewProgram(newWizard(runtimePath), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	w := final.(wizard)
	switch {
	case w.quitting:
		return nil, errors.New("setup interrupted")
	case w.err != nil:
		return nil, w.err
	}
	return w.state, nil
}

package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pitchcoach/internal/service/coach"
	"github.com/sandevgo/pitchcoach/internal/service/ui"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	runtimePath string
	err         error
	saved       bool
}

func NewSaveEnvStep(runtimePath string) Step {
	return &SaveEnvStep{runtimePath: runtimePath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return next
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := SaveEnv(s.runtimePath, state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv writes <runtimePath>/.env. An existing file is never overwritten.
func SaveEnv(runtimePath string, state *InstallState) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := state.EnvFile()
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0600)
}

// InitializeFilesStep writes the editable session script and the materials
// directory.
type InitializeFilesStep struct {
	runtimePath string
	err         error
	done        bool
}

func NewInitializeFilesStep(runtimePath string) Step {
	return &InitializeFilesStep{runtimePath: runtimePath}
}

func (s *InitializeFilesStep) Init() tea.Cmd {
	return next
}

func (s *InitializeFilesStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := InitializeFiles(s.runtimePath); err != nil {
		s.err = err
		return s, nil
	}

	s.done = true
	return nil, nil
}

func (s *InitializeFilesStep) View(state *InstallState) string {
	if s.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Runtime files initialized successfully!\n"
	}
	return "Initializing runtime files...\n"
}

// InitializeFiles writes coach.yaml unless the user already has one.
func InitializeFiles(runtimePath string) error {
	if err := os.MkdirAll(filepath.Join(runtimePath, "materials"), 0755); err != nil {
		return fmt.Errorf("failed to create materials directory: %w", err)
	}

	script := filepath.Join(runtimePath, "coach.yaml")
	if _, err := os.Stat(script); err == nil {
		return nil
	}
	if err := os.WriteFile(script, coach.DefaultScriptYAML(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", script, err)
	}
	return nil
}

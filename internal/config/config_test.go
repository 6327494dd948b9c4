package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachConfigDefaults(t *testing.T) {
	c, err := ParseCoachConfig()
	require.NoError(t, err)

	assert.Equal(t, 6, c.GetScoreGate())
	assert.Equal(t, 60000.0, c.GetDealThreshold())
	assert.Equal(t, 100_000, c.GetChunkSize())
	assert.Equal(t, 2500, c.GetPitchContextChars())
	assert.Equal(t, 2500, c.GetResponseContextChars())
	assert.Equal(t, 2000, c.GetNegotiationContextChars())
	assert.Equal(t, 4, c.GetMaxConcurrentGenerations())
	assert.Equal(t, 128000, c.GetContextWindow())
}

func TestCoachConfigFromEnv(t *testing.T) {
	t.Setenv("COACH_SCORE_GATE", "8")
	t.Setenv("COACH_DEAL_THRESHOLD", "45000.5")
	t.Setenv("COACH_NEGOTIATION_CONTEXT_CHARS", "1500")
	t.Setenv("COACH_CONTEXT_WINDOW", "8192")

	c, err := ParseCoachConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, c.GetScoreGate())
	assert.Equal(t, 45000.5, c.GetDealThreshold())
	assert.Equal(t, 1500, c.GetNegotiationContextChars())
	assert.Equal(t, 8192, c.GetContextWindow())
}

func TestLLMConfig(t *testing.T) {
	t.Setenv("COACH_LLM_PROVIDER", "anthropic")
	t.Setenv("COACH_LLM_MODEL", "claude-sonnet-4-5")
	t.Setenv("COACH_GENERATION_TIMEOUT", "2m")

	c, err := ParseLLMConfig()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", c.GetProvider())
	assert.Equal(t, "claude-sonnet-4-5", c.GetModel())
	assert.Equal(t, 2*time.Minute, c.GetGenerationTimeout())
	assert.Equal(t, 0.7, c.Temperature)
	assert.Empty(t, c.GetBaseURL())
}

func TestTelegramConfigRequiresToken(t *testing.T) {
	t.Setenv("COACH_TELEGRAM_TOKEN", "")

	err := env.Parse(&TelegramConfig{})
	assert.Error(t, err)

	t.Setenv("COACH_TELEGRAM_TOKEN", "123:ABC")
	c := NewTelegramConfig(context.Background())
	assert.Equal(t, "123:ABC", c.GetTelegramToken())
	assert.Zero(t, c.GetTelegramOwnerID())
}

func TestAppConfigPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COACH_RUNTIME_PATH", dir)
	t.Setenv("COACH_MATERIALS_DIR", "")

	c := NewAppConfig(context.Background())

	assert.Equal(t, dir, c.GetRuntimePath())
	assert.Equal(t, filepath.Join(dir, "pitchcoach.db"), c.GetDatabasePath())
	assert.Equal(t, filepath.Join(dir, "coach.yaml"), c.GetScriptPath())
	assert.Equal(t, filepath.Join(dir, "materials"), c.GetMaterialsPath())
	assert.True(t, c.IsHTTPSelected())
	assert.False(t, c.IsTelegramSelected())

	t.Setenv("COACH_MATERIALS_DIR", "/srv/playbooks")
	assert.Equal(t, "/srv/playbooks", NewAppConfig(context.Background()).GetMaterialsPath())
}

func TestResolveRuntimePath(t *testing.T) {
	assert.Equal(t, "/abs/path", resolveRuntimePath("/abs/path"))
	assert.True(t, filepath.IsAbs(resolveRuntimePath("")))
	assert.Equal(t, defaultRuntimeDir, filepath.Base(resolveRuntimePath("")))
}

func TestIsDebug(t *testing.T) {
	t.Setenv("COACH_DEBUG", "1")
	assert.True(t, IsDebug())
	t.Setenv("COACH_DEBUG", "0")
	assert.False(t, IsDebug())
}

func TestIsJSONLog(t *testing.T) {
	t.Setenv("COACH_LOG_FORMAT", "json")
	assert.True(t, IsJSONLog())

	t.Setenv("COACH_LOG_FORMAT", "console")
	assert.False(t, IsJSONLog())
}

package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"COACH_RUNTIME_PATH" envDefault:".pitchcoach"`

	// Transport Flags
	EnableTelegram bool `env:"COACH_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"COACH_ENABLE_CLI" envDefault:"false"`
	EnableHTTP     bool `env:"COACH_ENABLE_HTTP" envDefault:"true"`

	HTTPAddr string `env:"COACH_HTTP_ADDR" envDefault:":5000"`

	// Training materials dropped here are ingested and watched
	MaterialsDir   string `env:"COACH_MATERIALS_DIR"`
	WatchMaterials bool   `env:"COACH_WATCH_MATERIALS" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "pitchcoach.db")
}

func (c AppConfig) GetScriptPath() string {
	return filepath.Join(c.RuntimePath, "coach.yaml")
}

func (c AppConfig) GetMaterialsPath() string {
	if c.MaterialsDir != "" {
		return c.MaterialsDir
	}
	return filepath.Join(c.RuntimePath, "materials")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}

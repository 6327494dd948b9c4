package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/pitchcoach/internal/config"
	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/providers/llm"
	"github.com/sandevgo/pitchcoach/internal/service/coach"
	"github.com/sandevgo/pitchcoach/internal/service/command"
	"github.com/sandevgo/pitchcoach/internal/service/corpus"
	"github.com/sandevgo/pitchcoach/internal/service/ingest"
	"github.com/sandevgo/pitchcoach/internal/service/retrieval"
	"github.com/sandevgo/pitchcoach/internal/service/session"
	"github.com/sandevgo/pitchcoach/internal/storage/sqlite"
	"github.com/sandevgo/pitchcoach/internal/transport/api"
	"github.com/sandevgo/pitchcoach/internal/transport/cli"
	"github.com/sandevgo/pitchcoach/internal/transport/telegram"
	"github.com/sandevgo/pitchcoach/pkg/log"
	"github.com/sandevgo/pitchcoach/pkg/srv"
)

// stack is everything a transport needs, built once per process.
type stack struct {
	app     *config.AppConfig
	db      *sql.DB
	library *ingest.Library
	coach   *coach.Coach
	dialog  *coach.Dialog
	router  core.CmdRouter
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	s, err := newStack(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize coach")
	}
	services := []srv.Service{srv.NewCleanup("sqlite", s.db.Close)}

	if s.app.WatchMaterials {
		services = append(services, ingest.NewWatcher(s.app.GetMaterialsPath(), s.library))
	}

	transports, err := initTransports(ctx, s)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no transport enabled, set COACH_ENABLE_HTTP, COACH_ENABLE_TELEGRAM or COACH_ENABLE_CLI")
	}
	return append(services, transports...)
}

func newStack(ctx context.Context) (*stack, error) {
	lib, err := newLibraryStack(ctx)
	if err != nil {
		return nil, err
	}

	// a bare library with materials in the watched dir gets them on first run
	if lib.index.IsEmpty() {
		if _, err := lib.library.ImportDir(ctx, lib.app.GetMaterialsPath()); err != nil &&
			!errors.Is(err, core.ErrEmptyCorpus) && !errors.Is(err, os.ErrNotExist) {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to import materials directory")
		}
	}

	llmCfg := config.NewLLMConfig(ctx)

	c, err := initCoach(ctx, lib.app, lib.coach, llmCfg, lib.index)
	if err != nil {
		_ = lib.db.Close()
		return nil, err
	}

	dialog := coach.NewDialog(c)
	router := command.New(command.NewCommands(llmCfg, dialog, lib.library))

	return &stack{
		app:     lib.app,
		db:      lib.db,
		library: lib.library,
		coach:   c,
		dialog:  dialog,
		router:  router,
	}, nil
}

type libraryStack struct {
	app     *config.AppConfig
	coach   *config.CoachConfig
	db      *sql.DB
	index   *corpus.Index
	library *ingest.Library
}

// newLibraryStack opens the material library and loads it into the corpus.
// The ingest and library commands need nothing more.
func newLibraryStack(ctx context.Context) (*libraryStack, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	appCfg := config.NewAppConfig(ctx)
	coachCfg := config.NewCoachConfig(ctx)

	if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	index := corpus.NewIndex(coachCfg.GetChunkSize())
	library := ingest.NewLibrary(sqlite.NewDocumentsRepo(db), index, ingest.NewFetcher())

	n, err := library.Reload(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load material library: %w", err)
	}
	log.FromCtx(ctx).Info().Int("documents", n).Msg("material library loaded")

	return &libraryStack{app: appCfg, coach: coachCfg, db: db, index: index, library: library}, nil
}

func initCoach(
	ctx context.Context,
	appCfg *config.AppConfig,
	coachCfg *config.CoachConfig,
	llmCfg *config.LLMConfig,
	index *corpus.Index,
) (*coach.Coach, error) {
	script, err := coach.LoadScript(appCfg.GetScriptPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load session script: %w", err)
	}

	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	cfg := coach.Config{
		Rules: session.Rules{
			ScoreGate:     coachCfg.GetScoreGate(),
			DealThreshold: coachCfg.GetDealThreshold(),
		},
		Budgets: coach.Budgets{
			Pitch:       coachCfg.GetPitchContextChars(),
			Response:    coachCfg.GetResponseContextChars(),
			Negotiation: coachCfg.GetNegotiationContextChars(),
		},
		Timeout:       llmCfg.GetGenerationTimeout(),
		Temperature:   llmCfg.Temperature,
		MaxConcurrent: coachCfg.GetMaxConcurrentGenerations(),
		ContextWindow: coachCfg.GetContextWindow(),
	}

	c := coach.New(provider, index, retrieval.NewEngine(index, nil), script, cfg)
	c.SetTokenCounter(llm.NewTokenCounter(llmCfg.GetModel()))
	return c, nil
}

func initTransports(ctx context.Context, s *stack) ([]srv.Service, error) {
	var services []srv.Service

	if s.app.IsHTTPSelected() {
		services = append(services, api.NewServer(s.app.HTTPAddr, s.coach, s.library))
	}

	if s.app.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, s.dialog, s.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if s.app.EnableCLI {
		rl, err := cli.NewReadLine(s.dialog, s.router, s.app.GetHistoryPath())
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

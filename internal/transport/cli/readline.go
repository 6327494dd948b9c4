package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/coach"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const defaultSessionID = "cli-local"

type Dialog interface {
	Start(ctx context.Context, id string) (core.TurnResult, error)
	Say(ctx context.Context, id, text string) (core.TurnResult, error)
}

type ReadLine struct {
	dialog Dialog
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(dialog Dialog, router core.CmdRouter, historyFile string) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		dialog: dialog,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Name() string { return "cli" }

func (r *ReadLine) Start(ctx context.Context) error {
	ctx = log.WithSession(ctx, defaultSessionID)
	logger := log.FromCtx(ctx)
	logger.Info().Msg("practice chat started. Type 'exit' to quit.")

	out := r.rl.Stdout()

	res, err := r.dialog.Start(ctx, defaultSessionID)
	if err != nil {
		fmt.Fprintln(out, coach.UserMessage(err))
	} else {
		fmt.Fprintf(out, "%s\n\n", res.Message)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		fmt.Fprintf(out, "%s\n\n", r.handle(ctx, line))
	}
}

func (r *ReadLine) handle(ctx context.Context, line string) string {
	if reply, ok := r.router.Execute(ctx, defaultSessionID, line); ok {
		return reply
	}

	res, err := r.dialog.Say(ctx, defaultSessionID, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("turn failed")
		return coach.UserMessage(err)
	}

	if hint := coach.Hint(res); hint != "" {
		return fmt.Sprintf("%s\n\n\033[38;5;240m%s\033[0m", res.Message, hint)
	}
	return res.Message
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

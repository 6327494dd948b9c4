package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/negotiation"
)

type StartCommand struct {
	sessions Sessions
}

func NewStartCommand(sessions Sessions) *StartCommand {
	return &StartCommand{sessions: sessions}
}

func (c *StartCommand) Name() string {
	return "start"
}

func (c *StartCommand) Description() string {
	return "Start a new practice session"
}

func (c *StartCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	res, err := c.sessions.Start(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

type ResetCommand struct {
	sessions  Sessions
	formatter *ResponseFormatter
}

func NewResetCommand(sessions Sessions) *ResetCommand {
	return &ResetCommand{sessions: sessions, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Discard the current session"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if err := c.sessions.Reset(ctx, sessionID); err != nil {
		return "", err
	}
	return c.formatter.Combine(
		c.formatter.Success("Session discarded"),
		c.formatter.Tip("send /start to practice again"),
	), nil
}

type StateCommand struct {
	sessions  Sessions
	formatter *ResponseFormatter
}

func NewStateCommand(sessions Sessions) *StateCommand {
	return &StateCommand{sessions: sessions, formatter: NewResponseFormatter()}
}

func (c *StateCommand) Name() string {
	return "state"
}

func (c *StateCommand) Description() string {
	return "Show score, phase and price history"
}

func (c *StateCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	snap, err := c.sessions.Snapshot(sessionID)
	if err != nil {
		return "", err
	}

	current := "none"
	if snap.CurrentProposedValue != nil {
		current = snap.CurrentProposedValue.RawText
	}

	sections := []string{
		c.formatter.Info("Session"),
		c.formatter.Label("Score", c.formatter.Score(snap.EffectivenessScore, negotiation.MaxScore)),
		c.formatter.Label("Phase", string(snap.Phase)),
		c.formatter.Label("Your price", current),
	}
	if snap.DealClosed {
		sections = append(sections, c.formatter.Label("Closed", string(snap.ClosingReason)))
	} else if next := c.sessions.Expect(sessionID); next != "" {
		sections = append(sections, c.formatter.Label("Next", string(next)))
	}

	if len(snap.NegotiationHistory) > 0 {
		sections = append(sections, c.formatter.Section("💰", "Price History", c.formatter.List(historyLines(snap.NegotiationHistory))))
	}
	return c.formatter.Combine(sections...), nil
}

func historyLines(history []core.MonetaryProposal) []string {
	lines := make([]string, 0, len(history))
	for _, p := range history {
		who := "you"
		if p.ProposedBy == core.PartyCounterpart {
			who = "buyer"
		}
		lines = append(lines, fmt.Sprintf("round %d, %s: %s", p.Round, who, strings.TrimSpace(p.RawText)))
	}
	return lines
}

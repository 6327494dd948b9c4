package coach

import (
	"context"
	"sync"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// Dialog serves chat transports, where the user just types. It remembers
// which kind of turn the last reply asked for and submits the next message
// as that kind.
type Dialog struct {
	coach *Coach

	mu     sync.Mutex
	expect map[string]core.TurnKind
}

func NewDialog(c *Coach) *Dialog {
	return &Dialog{
		coach:  c,
		expect: make(map[string]core.TurnKind),
	}
}

func (d *Dialog) Coach() *Coach {
	return d.coach
}

func (d *Dialog) Start(ctx context.Context, id string) (core.TurnResult, error) {
	res, err := d.coach.StartSession(ctx, id)
	if err != nil {
		return res, err
	}
	d.setExpect(id, res.Expect)
	return res, nil
}

// Say submits text as the expected kind. On error the expectation is kept,
// so the user can simply retry.
func (d *Dialog) Say(ctx context.Context, id, text string) (core.TurnResult, error) {
	res, err := d.coach.Submit(ctx, id, text, d.Expect(id))
	if err != nil {
		return res, err
	}
	d.setExpect(id, res.Expect)
	return res, nil
}

// Expect returns the kind the next message is submitted as.
func (d *Dialog) Expect(id string) core.TurnKind {
	d.mu.Lock()
	defer d.mu.Unlock()

	if k, ok := d.expect[id]; ok {
		return k
	}
	return core.TurnPitch
}

func (d *Dialog) Reset(ctx context.Context, id string) error {
	d.mu.Lock()
	delete(d.expect, id)
	d.mu.Unlock()

	return d.coach.Reset(ctx, id)
}

func (d *Dialog) setExpect(id string, kind core.TurnKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expect[id] = kind
}

func (d *Dialog) Snapshot(id string) (core.Snapshot, error) {
	return d.coach.Snapshot(id)
}

// Hint is a one-line prompt for the next message in chat transports.
func Hint(res core.TurnResult) string {
	switch {
	case res.Snapshot.DealClosed:
		return "Deal closed. Send /start to practice again."
	case res.OfferNegotiation:
		return "Your score reached the bar. Ready to move into negotiation? (yes / not yet)"
	case res.Expect == core.TurnPriceProposal:
		return "Name your price."
	default:
		return ""
	}
}

package negotiation

import (
	"time"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// Ledger is the append-only record of every proposal in a session. It is not
// safe for concurrent use; the owning session serializes access.
type Ledger struct {
	entries []core.MonetaryProposal
	now     func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// NextRound is the round a new entry would get: one salesperson and one
// counterpart entry per round.
func (l *Ledger) NextRound() int {
	return roundFor(len(l.entries) + 1)
}

func roundFor(position int) int {
	return (position + 1) / 2
}

// Stage numbers proposals as if they were appended, without recording them.
func (l *Ledger) Stage(proposals ...core.MonetaryProposal) []core.MonetaryProposal {
	staged := make([]core.MonetaryProposal, len(proposals))
	for i, p := range proposals {
		p.Round = roundFor(len(l.entries) + i + 1)
		if p.Timestamp.IsZero() {
			p.Timestamp = l.now()
		}
		staged[i] = p
	}
	return staged
}

func (l *Ledger) Record(p core.MonetaryProposal) core.MonetaryProposal {
	p = l.Stage(p)[0]
	l.entries = append(l.entries, p)
	return p
}

// Current returns the latest entry made by party.
func (l *Ledger) Current(party core.Party) (core.MonetaryProposal, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ProposedBy == party {
			return l.entries[i], true
		}
	}
	return core.MonetaryProposal{}, false
}

func (l *Ledger) History() []core.MonetaryProposal {
	out := make([]core.MonetaryProposal, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

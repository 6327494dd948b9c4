package negotiation

import (
	"testing"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposal(party core.Party, raw string) core.MonetaryProposal {
	ext := Extract(raw)
	return core.MonetaryProposal{RawText: raw, Value: ext.Value, ProposedBy: party}
}

func TestLedger_RoundsPairEntries(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 1, l.NextRound())

	parties := []core.Party{
		core.PartySalesperson, core.PartyCounterpart,
		core.PartySalesperson, core.PartyCounterpart,
		core.PartySalesperson,
	}
	wantRounds := []int{1, 1, 2, 2, 3}

	prev := 0
	for i, p := range parties {
		rec := l.Record(proposal(p, "50000"))
		assert.Equal(t, wantRounds[i], rec.Round)
		assert.False(t, rec.Timestamp.IsZero())
		assert.GreaterOrEqual(t, rec.Round, prev)
		assert.LessOrEqual(t, rec.Round-prev, 1)
		prev = rec.Round
	}
	assert.Equal(t, 5, l.Len())
}

func TestLedger_Current(t *testing.T) {
	l := NewLedger()

	_, ok := l.Current(core.PartySalesperson)
	assert.False(t, ok)

	l.Record(proposal(core.PartySalesperson, "80000"))
	l.Record(proposal(core.PartyCounterpart, "60000"))
	l.Record(proposal(core.PartySalesperson, "72000"))

	sales, ok := l.Current(core.PartySalesperson)
	require.True(t, ok)
	assert.Equal(t, "72000", sales.RawText)

	counter, ok := l.Current(core.PartyCounterpart)
	require.True(t, ok)
	require.NotNil(t, counter.Value)
	assert.Equal(t, 60000.0, *counter.Value)
}

func TestLedger_StageDoesNotRecord(t *testing.T) {
	l := NewLedger()
	l.Record(proposal(core.PartySalesperson, "80000"))

	staged := l.Stage(
		proposal(core.PartyCounterpart, "60000"),
		proposal(core.PartySalesperson, "70000"),
	)
	require.Len(t, staged, 2)
	assert.Equal(t, 1, staged[0].Round)
	assert.Equal(t, 2, staged[1].Round)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_HistoryIsACopy(t *testing.T) {
	l := NewLedger()
	l.Record(proposal(core.PartySalesperson, "80000"))

	h := l.History()
	h[0].RawText = "tampered"

	assert.Equal(t, "80000", l.History()[0].RawText)
}

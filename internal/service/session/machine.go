package session

import (
	"fmt"
	"sync"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/negotiation"
)

// DefaultScoreGate is the effectiveness score needed before negotiation opens.
const DefaultScoreGate = 6

type Rules struct {
	ScoreGate     int
	DealThreshold float64
}

func DefaultRules() Rules {
	return Rules{ScoreGate: DefaultScoreGate, DealThreshold: DefaultDealThreshold}
}

// Machine owns one practice session: phase, score, the proposal ledger and
// the conversation log sent to the generator.
//
// Turns are serialized by BeginTurn. Reads such as Snapshot take only the
// state lock and never wait for a turn that is still generating.
type Machine struct {
	id    string
	rules Rules

	turn sync.Mutex
	// retired is set under the turn lock once the session is removed from
	// its registry. Turns that were queued behind the removal must not run.
	retired bool

	mu     sync.RWMutex
	state  core.SessionState
	ledger *negotiation.Ledger
	log    []core.Message
}

func New(id string, rules Rules) *Machine {
	if rules.ScoreGate <= 0 {
		rules.ScoreGate = DefaultScoreGate
	}
	if rules.DealThreshold <= 0 {
		rules.DealThreshold = DefaultDealThreshold
	}
	return &Machine{
		id:     id,
		rules:  rules,
		state:  freshState(),
		ledger: negotiation.NewLedger(),
	}
}

func freshState() core.SessionState {
	return core.SessionState{Phase: core.PhasePitch, ClosingReason: core.ClosingNone}
}

func (m *Machine) ID() string {
	return m.id
}

func (m *Machine) Rules() Rules {
	return m.rules
}

// BeginTurn blocks until no other turn runs on this session. The returned
// func ends the turn.
func (m *Machine) BeginTurn() func() {
	m.turn.Lock()
	return m.turn.Unlock
}

// Reset discards everything and seeds the log with the system prompt.
func (m *Machine) Reset(systemPrompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = freshState()
	m.ledger = negotiation.NewLedger()
	m.log = nil
	if systemPrompt != "" {
		m.log = append(m.log, core.Message{Role: core.RoleSystem, Content: systemPrompt})
	}
}

// Check reports whether a turn of kind is allowed in the current phase.
func (m *Machine) Check(kind core.TurnKind) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state.DealClosed {
		return fmt.Errorf("%w: deal already closed", core.ErrInvalidSessionState)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown turn kind %q", core.ErrInvalidSessionState, kind)
	}

	switch kind {
	case core.TurnPitch, core.TurnResponse, core.TurnReadiness:
		if m.state.Phase != core.PhasePitch {
			return fmt.Errorf("%w: %s turn during %s", core.ErrInvalidSessionState, kind, m.state.Phase)
		}
	case core.TurnPriceProposal, core.TurnNegotiation:
		if m.state.Phase != core.PhaseNegotiation {
			return fmt.Errorf("%w: %s turn during %s", core.ErrInvalidSessionState, kind, m.state.Phase)
		}
	}
	return nil
}

// ReadyToNegotiate reports whether the score gate is reached while still pitching.
func (m *Machine) ReadyToNegotiate() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readyLocked()
}

func (m *Machine) readyLocked() bool {
	return m.state.Phase == core.PhasePitch &&
		!m.state.DealClosed &&
		m.state.EffectivenessScore >= m.rules.ScoreGate
}

func (m *Machine) State() core.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Conversation returns a copy of the committed log.
func (m *Machine) Conversation() []core.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Message, len(m.log))
	copy(out, m.log)
	return out
}

func (m *Machine) History() []core.MonetaryProposal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.History()
}

// LastCounterOffer is the buyer's latest entry in the ledger.
func (m *Machine) LastCounterOffer() (core.MonetaryProposal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Current(core.PartyCounterpart)
}

// Round is the negotiation round the next proposal opens or joins.
func (m *Machine) Round() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.NextRound()
}

// Stage numbers proposals against the committed ledger without recording them.
func (m *Machine) Stage(proposals ...core.MonetaryProposal) []core.MonetaryProposal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Stage(proposals...)
}

// Change is everything a successful turn writes back.
type Change struct {
	Messages  []core.Message
	Proposals []core.MonetaryProposal
	// Score is the parsed effectiveness score, nil when none was found.
	Score *int
	// Phase is left empty to keep the current phase.
	Phase         core.Phase
	ClosingReason core.ClosingReason
}

// Commit applies a turn's outcome in one step. Score never decreases and a
// closed session stays closed.
func (m *Machine) Commit(c Change) core.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log = append(m.log, c.Messages...)
	for _, p := range c.Proposals {
		m.ledger.Record(p)
	}

	if c.Score != nil && *c.Score > m.state.EffectivenessScore {
		m.state.EffectivenessScore = *c.Score
	}

	if m.state.DealClosed {
		return m.state
	}

	switch c.Phase {
	case core.PhaseNegotiation:
		if m.readyLocked() {
			m.state.Phase = core.PhaseNegotiation
		}
	case core.PhaseClosed:
		m.state.Phase = core.PhaseClosed
		m.state.DealClosed = true
		m.state.ClosingReason = c.ClosingReason
		if m.state.ClosingReason == "" || m.state.ClosingReason == core.ClosingNone {
			m.state.ClosingReason = core.ClosingNormal
		}
	}
	return m.state
}

func (m *Machine) Snapshot() core.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := core.Snapshot{
		SessionID:          m.id,
		EffectivenessScore: m.state.EffectivenessScore,
		Phase:              m.state.Phase,
		DealClosed:         m.state.DealClosed,
		ClosingReason:      m.state.ClosingReason,
		NegotiationHistory: m.ledger.History(),
	}
	if cur, ok := m.ledger.Current(core.PartySalesperson); ok {
		snap.CurrentProposedValue = &cur
	}
	return snap
}

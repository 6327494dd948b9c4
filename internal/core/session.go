package core

import "time"

type Phase string

const (
	PhasePitch       Phase = "PITCH"
	PhaseNegotiation Phase = "NEGOTIATION"
	PhaseClosed      Phase = "CLOSED"
)

type ClosingReason string

const (
	ClosingNone                  ClosingReason = "NONE"
	ClosingBelowThreshold        ClosingReason = "BELOW_THRESHOLD"
	ClosingBelowCounterpartOffer ClosingReason = "BELOW_COUNTERPART_OFFER"
	ClosingNormal                ClosingReason = "NORMAL"
)

type Party string

const (
	PartySalesperson Party = "SALESPERSON"
	PartyCounterpart Party = "COUNTERPART"
)

// TurnKind is supplied by the caller from the prompt it displayed last.
// The state machine never guesses it from the turn text.
type TurnKind string

const (
	TurnPitch         TurnKind = "pitch"
	TurnResponse      TurnKind = "response"
	TurnReadiness     TurnKind = "readiness"
	TurnPriceProposal TurnKind = "price_proposal"
	TurnNegotiation   TurnKind = "negotiation"
)

func (k TurnKind) Valid() bool {
	switch k {
	case TurnPitch, TurnResponse, TurnReadiness, TurnPriceProposal, TurnNegotiation:
		return true
	}
	return false
}

// MonetaryProposal is one ledger entry. Value is nil when no number could be
// read from RawText.
type MonetaryProposal struct {
	RawText    string    `json:"raw_text"`
	Value      *float64  `json:"value"`
	ProposedBy Party     `json:"proposed_by"`
	Round      int       `json:"round"`
	Timestamp  time.Time `json:"timestamp"`
}

type SessionState struct {
	EffectivenessScore int           `json:"effectiveness_score"`
	Phase              Phase         `json:"phase"`
	DealClosed         bool          `json:"deal_closed"`
	ClosingReason      ClosingReason `json:"closing_reason"`
}

// Snapshot is the read-only view of a session.
type Snapshot struct {
	SessionID            string             `json:"session_id"`
	EffectivenessScore   int                `json:"effectiveness_score"`
	Phase                Phase              `json:"phase"`
	CurrentProposedValue *MonetaryProposal  `json:"current_proposed_value"`
	DealClosed           bool               `json:"deal_closed"`
	ClosingReason        ClosingReason      `json:"closing_reason"`
	NegotiationHistory   []MonetaryProposal `json:"negotiation_history"`
}

type TurnResult struct {
	Message  string   `json:"message"`
	Snapshot Snapshot `json:"state"`
	// OfferNegotiation is set once the score gate is reached while still pitching.
	OfferNegotiation   bool   `json:"offer_negotiation"`
	NegotiationStarted bool   `json:"negotiation_started"`
	CounterValue       string `json:"counter_value,omitempty"`
	// Expect is the kind the next displayed prompt asks for. Empty once closed.
	Expect TurnKind `json:"expect,omitempty"`
}

package coach

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/negotiation"
	"github.com/sandevgo/pitchcoach/internal/service/session"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const (
	pitchMaxTokens   = 1200
	defaultMaxTokens = 1000

	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.7
	defaultConcurrency = 4
)

type Corpus interface {
	IsEmpty() bool
	Documents() []core.CorpusDocument
}

type Retriever interface {
	Retrieve(query string, maxChars int) string
}

// Budgets caps the retrieved grounding per turn kind, in characters.
type Budgets struct {
	Pitch       int
	Response    int
	Negotiation int
}

type Config struct {
	Rules       session.Rules
	Budgets     Budgets
	Timeout     time.Duration
	Temperature float64

	// MaxConcurrent caps generation calls across all sessions.
	MaxConcurrent int
	// ContextWindow is the model limit in tokens, prompt and reply together.
	// Zero skips the check.
	ContextWindow int
}

func DefaultConfig() Config {
	return Config{
		Rules:         session.DefaultRules(),
		Budgets:       Budgets{Pitch: 2500, Response: 2500, Negotiation: 2000},
		Timeout:       defaultTimeout,
		Temperature:   defaultTemperature,
		MaxConcurrent: defaultConcurrency,
	}
}

// Coach runs practice sessions: it checks the session phase, pulls grounding
// from the corpus, asks the generator and commits the outcome.
type Coach struct {
	ai        core.AIProvider
	corpus    Corpus
	retriever Retriever
	script    *Script
	cfg       Config
	sessions  *session.Registry
	slots     *semaphore.Weighted
	tokens    core.TokenCounter
}

func New(ai core.AIProvider, corpus Corpus, retriever Retriever, script *Script, cfg Config) *Coach {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultConcurrency
	}
	return &Coach{
		ai:        ai,
		corpus:    corpus,
		retriever: retriever,
		script:    script,
		cfg:       cfg,
		sessions:  session.NewRegistry(cfg.Rules),
		slots:     semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

// SetTokenCounter enables the context window check.
func (c *Coach) SetTokenCounter(tc core.TokenCounter) {
	c.tokens = tc
}

// StartSession opens id, or starts it over, and returns the welcome message.
func (c *Coach) StartSession(ctx context.Context, id string) (core.TurnResult, error) {
	if c.corpus.IsEmpty() {
		return core.TurnResult{}, core.ErrEmptyCorpus
	}

	m, end := c.sessions.AcquireOrOpen(id)
	defer end()

	m.Reset(c.script.render(c.script.SystemPrompt, nil))

	log.FromCtx(ctx).Info().Str("session", id).Msg("session started")

	welcome := c.script.render(c.script.Welcome, map[string]string{
		"documents": strconv.Itoa(len(c.corpus.Documents())),
	})
	return core.TurnResult{
		Message:  welcome,
		Snapshot: m.Snapshot(),
		Expect:   core.TurnPitch,
	}, nil
}

// Submit runs one turn. Nothing is committed unless the whole turn succeeds,
// so a failed turn can be retried as is.
func (c *Coach) Submit(ctx context.Context, id, text string, kind core.TurnKind) (core.TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.TurnResult{}, core.ErrMissingInput
	}
	if (kind == core.TurnPitch || kind == core.TurnResponse) && c.corpus.IsEmpty() {
		return core.TurnResult{}, core.ErrEmptyCorpus
	}

	m, end, err := c.sessions.Acquire(id)
	if err != nil {
		return core.TurnResult{}, err
	}
	defer end()

	if err := m.Check(kind); err != nil {
		return core.TurnResult{}, err
	}

	ctx = log.WithSession(ctx, id)
	log.FromCtx(ctx).Debug().
		Str("kind", string(kind)).
		Str("phase", string(m.State().Phase)).
		Int("chars", len(text)).
		Msg("turn received")

	switch kind {
	case core.TurnPitch:
		return c.analyzePitch(ctx, m, text)
	case core.TurnResponse:
		return c.analyzeResponse(ctx, m, text)
	case core.TurnReadiness:
		return c.startNegotiation(ctx, m, text)
	case core.TurnPriceProposal:
		return c.proposePrice(ctx, m, text)
	default:
		return c.negotiate(ctx, m, text)
	}
}

func (c *Coach) Snapshot(id string) (core.Snapshot, error) {
	m, err := c.sessions.Get(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return m.Snapshot(), nil
}

// Reset discards the session. The next StartSession begins from scratch.
func (c *Coach) Reset(ctx context.Context, id string) error {
	m, end, err := c.sessions.Acquire(id)
	if err != nil {
		return err
	}
	defer end()

	c.sessions.Retire(m)
	log.FromCtx(ctx).Info().Str("session", id).Msg("session reset")
	return nil
}

func (c *Coach) analyzePitch(ctx context.Context, m *session.Machine, pitch string) (core.TurnResult, error) {
	grounding := c.retriever.Retrieve(pitch+" "+c.script.Queries.Pitch, c.cfg.Budgets.Pitch)
	prompt := c.script.render(c.script.Prompts.PitchAnalysis, map[string]string{
		"context": grounding,
		"pitch":   pitch,
	})

	return c.pitchTurn(ctx, m, pitch, prompt, pitchMaxTokens)
}

func (c *Coach) analyzeResponse(ctx context.Context, m *session.Machine, response string) (core.TurnResult, error) {
	grounding := c.retriever.Retrieve(response+" "+c.script.Queries.Response, c.cfg.Budgets.Response)
	prompt := c.script.render(c.script.Prompts.ResponseFeedback, map[string]string{
		"context":  grounding,
		"response": response,
	})

	return c.pitchTurn(ctx, m, response, prompt, defaultMaxTokens)
}

func (c *Coach) pitchTurn(ctx context.Context, m *session.Machine, text, prompt string, maxTokens int) (core.TurnResult, error) {
	staged := []core.Message{
		{Role: core.RoleUser, Content: text},
		{Role: core.RoleUser, Content: prompt},
	}

	reply, err := c.generate(ctx, m, staged, maxTokens)
	if err != nil {
		return core.TurnResult{}, err
	}

	change := session.Change{
		Messages: append(staged, core.Message{Role: core.RoleAssistant, Content: reply}),
	}
	if score, ok := negotiation.ParseScore(reply); ok {
		change.Score = &score
	}
	st := m.Commit(change)

	offer := m.ReadyToNegotiate()
	log.FromCtx(ctx).Info().
		Int("score", st.EffectivenessScore).
		Bool("offer_negotiation", offer).
		Msg("pitch turn analyzed")

	expect := core.TurnResponse
	if offer {
		expect = core.TurnReadiness
	}
	return core.TurnResult{
		Message:          reply,
		Snapshot:         m.Snapshot(),
		OfferNegotiation: offer,
		Expect:           expect,
	}, nil
}

func (c *Coach) startNegotiation(ctx context.Context, m *session.Machine, text string) (core.TurnResult, error) {
	userMsg := core.Message{Role: core.RoleUser, Content: text}

	if !negotiation.ContainsReadinessSignal(text) {
		reply := c.script.render(c.script.Replies.Decline, nil)
		m.Commit(session.Change{
			Messages: []core.Message{userMsg, {Role: core.RoleAssistant, Content: reply}},
		})
		return core.TurnResult{
			Message:  reply,
			Snapshot: m.Snapshot(),
			Expect:   core.TurnResponse,
		}, nil
	}

	if !m.ReadyToNegotiate() {
		return core.TurnResult{}, fmt.Errorf("%w: effectiveness score %d is below %d",
			core.ErrInvalidSessionState, m.State().EffectivenessScore, m.Rules().ScoreGate)
	}

	reply := c.script.render(c.script.Replies.NegotiationStart, nil)
	m.Commit(session.Change{
		Messages: []core.Message{userMsg, {Role: core.RoleAssistant, Content: reply}},
		Phase:    core.PhaseNegotiation,
	})

	log.FromCtx(ctx).Info().Msg("negotiation started")

	return core.TurnResult{
		Message:            reply,
		Snapshot:           m.Snapshot(),
		NegotiationStarted: true,
		Expect:             core.TurnPriceProposal,
	}, nil
}

func (c *Coach) proposePrice(ctx context.Context, m *session.Machine, text string) (core.TurnResult, error) {
	ext := negotiation.Extract(text)
	offer := core.MonetaryProposal{RawText: text, ProposedBy: core.PartySalesperson}
	if ext.Found {
		offer.RawText = ext.RawText
		offer.Value = ext.Value
	}

	grounding := c.retriever.Retrieve(c.script.Queries.CounterOffer, c.cfg.Budgets.Negotiation)
	staged := []core.Message{
		{Role: core.RoleUser, Content: c.script.render(c.script.Prompts.PriceStatement, map[string]string{"proposal": text})},
		{Role: core.RoleUser, Content: c.script.render(c.script.Prompts.CounterOffer, map[string]string{
			"proposal": text,
			"context":  grounding,
		})},
	}

	reply, err := c.generate(ctx, m, staged, defaultMaxTokens)
	if err != nil {
		return core.TurnResult{}, err
	}

	counter := c.counterOffer(reply)
	round := m.Round()
	m.Commit(session.Change{
		Messages:  append(staged, core.Message{Role: core.RoleAssistant, Content: reply}),
		Proposals: m.Stage(offer, counter),
	})

	log.FromCtx(ctx).Info().
		Int("round", round).
		Str("offer", offer.RawText).
		Str("counter", counter.RawText).
		Msg("counter-offer generated")

	return core.TurnResult{
		Message:      reply,
		Snapshot:     m.Snapshot(),
		CounterValue: counter.RawText,
		Expect:       core.TurnNegotiation,
	}, nil
}

func (c *Coach) negotiate(ctx context.Context, m *session.Machine, text string) (core.TurnResult, error) {
	ext := negotiation.Extract(text)

	var offers []core.MonetaryProposal
	if ext.Found {
		offers = append(offers, core.MonetaryProposal{
			RawText:    ext.RawText,
			Value:      ext.Value,
			ProposedBy: core.PartySalesperson,
		})
	}
	userMsg := core.Message{Role: core.RoleUser, Content: text}

	if negotiation.ContainsAcceptanceSignal(text) {
		return c.closeDeal(ctx, m, userMsg, ext, offers)
	}

	history := append(m.History(), m.Stage(offers...)...)
	lines := make([]string, 0, len(history))
	for _, p := range history {
		lines = append(lines, c.script.historyLine(p))
	}

	grounding := c.retriever.Retrieve(c.script.Queries.Negotiation, c.cfg.Budgets.Negotiation)
	staged := []core.Message{
		userMsg,
		{Role: core.RoleUser, Content: c.script.render(c.script.Prompts.ContinuedNegotiation, map[string]string{
			"history":  strings.Join(lines, "\n"),
			"response": text,
			"context":  grounding,
		})},
	}

	reply, err := c.generate(ctx, m, staged, defaultMaxTokens)
	if err != nil {
		return core.TurnResult{}, err
	}

	counter := c.counterOffer(reply)
	round := m.Round()
	m.Commit(session.Change{
		Messages:  append(staged, core.Message{Role: core.RoleAssistant, Content: reply}),
		Proposals: m.Stage(append(offers, counter)...),
	})

	log.FromCtx(ctx).Info().
		Int("round", round).
		Str("counter", counter.RawText).
		Msg("negotiation continued")

	return core.TurnResult{
		Message:      reply,
		Snapshot:     m.Snapshot(),
		CounterValue: counter.RawText,
		Expect:       core.TurnNegotiation,
	}, nil
}

func (c *Coach) closeDeal(
	ctx context.Context,
	m *session.Machine,
	userMsg core.Message,
	ext negotiation.Extraction,
	offers []core.MonetaryProposal,
) (core.TurnResult, error) {
	var counterValue *float64
	if last, ok := m.LastCounterOffer(); ok {
		counterValue = last.Value
	}
	reason := session.ClassifyClosure(ext.Value, counterValue, m.Rules().DealThreshold)

	reply := c.script.closing(reason, ext.RawText)
	st := m.Commit(session.Change{
		Messages:      []core.Message{userMsg, {Role: core.RoleAssistant, Content: reply}},
		Proposals:     m.Stage(offers...),
		Phase:         core.PhaseClosed,
		ClosingReason: reason,
	})

	log.FromCtx(ctx).Info().
		Str("reason", string(st.ClosingReason)).
		Str("value", ext.RawText).
		Msg("deal closed")

	return core.TurnResult{
		Message:  reply,
		Snapshot: m.Snapshot(),
	}, nil
}

// counterOffer reads the buyer's number from a generated reply. The entry is
// kept even without a number so the history shows the round happened.
func (c *Coach) counterOffer(reply string) core.MonetaryProposal {
	p := core.MonetaryProposal{
		RawText:    c.script.Replies.UndeterminedCounter,
		ProposedBy: core.PartyCounterpart,
	}
	if ext := negotiation.Extract(reply); ext.Found {
		p.RawText = ext.RawText
		p.Value = ext.Value
	}
	return p
}

// generate sends the committed conversation plus staged messages. Failures
// carry one of the generation sentinels or ErrContextTooLarge.
func (c *Coach) generate(ctx context.Context, m *session.Machine, staged []core.Message, maxTokens int) (string, error) {
	history := append(m.Conversation(), staged...)
	if err := c.checkContext(ctx, history, maxTokens); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// waiting for a slot counts against the turn timeout
	started := time.Now()
	if err := c.slots.Acquire(ctx, 1); err != nil {
		err = classify(ctx, err)
		log.FromCtx(ctx).Warn().Err(err).Msg("no generation slot")
		return "", err
	}
	defer c.slots.Release(1)

	msg, err := c.ai.Chat(ctx, history, core.ChatOptions{
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		err = classify(ctx, err)
		log.FromCtx(ctx).Error().Err(err).Dur("elapsed", time.Since(started)).Msg("generation failed")
		return "", err
	}

	log.FromCtx(ctx).Debug().Dur("elapsed", time.Since(started)).Msg("generation complete")
	return msg.Content, nil
}

// checkContext refuses a prompt the model cannot take together with the reply
// budget. A tokenizer that fails to load skips the check.
func (c *Coach) checkContext(ctx context.Context, history []core.Message, maxTokens int) error {
	if c.tokens == nil || c.cfg.ContextWindow <= 0 {
		return nil
	}

	n, err := c.tokens.CountMessages(history)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("prompt tokens not counted")
		return nil
	}
	log.FromCtx(ctx).Debug().Int("prompt_tokens", n).Int("max_tokens", maxTokens).Msg("calling generator")

	if n+maxTokens > c.cfg.ContextWindow {
		return fmt.Errorf("%w: %d prompt and %d reply tokens, window is %d",
			core.ErrContextTooLarge, n, maxTokens, c.cfg.ContextWindow)
	}
	return nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case core.IsGenerationError(err):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", core.ErrGenerationTimeout, err)
	default:
		return fmt.Errorf("%w: %v", core.ErrGenerationUpstream, err)
	}
}

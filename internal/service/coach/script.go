package coach

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandevgo/pitchcoach/internal/core"
)

//go:embed coach.yaml
var defaultScript []byte

// DefaultScriptYAML is the built-in script, written out by `coach init`.
func DefaultScriptYAML() []byte {
	return defaultScript
}

// Script is the product copy of a practice session: the prompts sent to the
// generator and the fixed replies that never reach it.
type Script struct {
	Product        string  `yaml:"product"`
	ProductSummary string  `yaml:"product_summary"`
	SystemPrompt   string  `yaml:"system_prompt"`
	Welcome        string  `yaml:"welcome"`
	Queries        Queries `yaml:"queries"`
	Prompts        Prompts `yaml:"prompts"`
	Replies        Replies `yaml:"replies"`
}

// Queries are appended to, or used as, retrieval queries per turn kind.
type Queries struct {
	Pitch        string `yaml:"pitch"`
	Response     string `yaml:"response"`
	CounterOffer string `yaml:"counter_offer"`
	Negotiation  string `yaml:"negotiation"`
}

type Prompts struct {
	PitchAnalysis        string `yaml:"pitch_analysis"`
	ResponseFeedback     string `yaml:"response_feedback"`
	PriceStatement       string `yaml:"price_statement"`
	CounterOffer         string `yaml:"counter_offer"`
	ContinuedNegotiation string `yaml:"continued_negotiation"`
	HistoryLine          string `yaml:"history_line"`
}

type Replies struct {
	Decline             string                        `yaml:"decline"`
	NegotiationStart    string                        `yaml:"negotiation_start"`
	UnknownValue        string                        `yaml:"unknown_value"`
	UndeterminedCounter string                        `yaml:"undetermined_counter"`
	Closing             map[core.ClosingReason]string `yaml:"closing"`
	Performance         string                        `yaml:"performance"`
}

// DefaultScript parses the embedded script.
func DefaultScript() (*Script, error) {
	return ParseScript(defaultScript)
}

// LoadScript reads the script at path, falling back to the built-in one
// when the file does not exist.
func LoadScript(path string) (*Script, error) {
	if path == "" {
		return DefaultScript()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultScript()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	required := map[string]string{
		"product":                       s.Product,
		"system_prompt":                 s.SystemPrompt,
		"welcome":                       s.Welcome,
		"prompts.pitch_analysis":        s.Prompts.PitchAnalysis,
		"prompts.response_feedback":     s.Prompts.ResponseFeedback,
		"prompts.counter_offer":         s.Prompts.CounterOffer,
		"prompts.continued_negotiation": s.Prompts.ContinuedNegotiation,
		"replies.decline":               s.Replies.Decline,
		"replies.negotiation_start":     s.Replies.NegotiationStart,
	}

	var missing []string
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	for _, reason := range []core.ClosingReason{core.ClosingBelowThreshold, core.ClosingBelowCounterpartOffer, core.ClosingNormal} {
		if strings.TrimSpace(s.Replies.Closing[reason]) == "" {
			missing = append(missing, "replies.closing."+string(reason))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("script is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// render fills {placeholders}. Product fields are always available.
func (s *Script) render(tmpl string, vars map[string]string) string {
	pairs := []string{
		"{product}", s.Product,
		"{product_summary}", s.ProductSummary,
	}
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (s *Script) closing(reason core.ClosingReason, value string) string {
	if value == "" {
		value = s.Replies.UnknownValue
	}
	msg := s.render(s.Replies.Closing[reason], map[string]string{"value": value})
	if s.Replies.Performance != "" {
		msg += "\n\n" + s.render(s.Replies.Performance, nil)
	}
	return msg
}

func (s *Script) historyLine(p core.MonetaryProposal) string {
	tmpl := s.Prompts.HistoryLine
	if tmpl == "" {
		tmpl = "Round {round}: {party} proposed {value}"
	}
	return s.render(tmpl, map[string]string{
		"round": fmt.Sprint(p.Round),
		"party": partyLabel(p.ProposedBy),
		"value": p.RawText,
	})
}

func partyLabel(p core.Party) string {
	if p == core.PartyCounterpart {
		return "buyer"
	}
	return "salesperson"
}

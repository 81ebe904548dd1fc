package relevance

import (
	"errors"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\b\w+\b`)

// Engine matches and scores text against a fixed, ordered keyword list.
// Matching and scoring deliberately use different semantics: MatchesAny is a
// substring test, so multi-word keywords can match; Score counts whole
// word-boundary tokens, so multi-word keywords never contribute to the score.
type Engine struct {
	keywords []string
	lowered  []string
	pattern  *regexp.Regexp
}

// NewEngine builds an Engine from the given keyword list.
func NewEngine(keywords []string) (*Engine, error) {
	if len(keywords) == 0 {
		return nil, errors.New("keyword list is empty")
	}

	escaped := make([]string, len(keywords))
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
		lowered[i] = strings.ToLower(kw)
	}

	pattern, err := regexp.Compile("(?i)" + strings.Join(escaped, "|"))
	if err != nil {
		return nil, err
	}

	return &Engine{
		keywords: append([]string(nil), keywords...),
		lowered:  lowered,
		pattern:  pattern,
	}, nil
}

// MatchesAny reports whether the title contains any keyword, case-insensitive
// substring semantics. It is strictly more permissive than a nonzero Score.
func (e *Engine) MatchesAny(title string) bool {
	return e.pattern.MatchString(title)
}

// Score counts keyword occurrences in the text: the text is lower-cased and
// split into word-boundary tokens, and the per-token frequencies of each
// lower-cased keyword are summed. Empty text scores 0.
func (e *Engine) Score(text string) int {
	if text == "" {
		return 0
	}

	counts := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}

	score := 0
	for _, kw := range e.lowered {
		score += counts[kw]
	}
	return score
}

// Keywords returns a copy of the engine's keyword list in its original order.
func (e *Engine) Keywords() []string {
	return append([]string(nil), e.keywords...)
}

// DefaultKeywords is the fixed finance/banking vocabulary used for both
// pre-filtering and scoring.
func DefaultKeywords() []string {
	return []string{
		"hdfc", "hdfc bank", "hdfc securities", "hdfc credit card",
		"bank", "banking", "deposits", "lending", "nbfc", "branch", "retail banking",
		"wholesale banking", "credit", "loan", "interest rate", "fixed deposit",
		"stock", "share", "equity", "nse", "bse", "ipo", "dividend", "valuation",
		"market cap", "investor", "investment", "mutual fund", "portfolio",
		"profit", "revenue", "earnings", "net income", "quarterly results",
		"q1 results", "q2 results", "q3 results", "q4 results", "financial year",
		"rbi", "reserve bank of india", "monetary policy", "repo rate",
		"liquidity", "npas", "non performing asset", "asset quality",
		"crr", "slr", "basel norms", "regulatory", "merger", "acquisition",
	}
}

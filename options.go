package contextspell

import (
	"github.com/charmbracelet/log"

	"contextspell/customdict"
)

// defaultKnownWordsPenalty and defaultUnknownWordsPenalty are subtracted
// from a candidate's log-score; defaults are deliberately small relative
// to typical bigram log-probabilities so a strongly favored correction
// still wins even after the penalty.
const (
	defaultKnownWordsPenalty    = 2.0
	defaultUnknownWordsPenalty  = 6.0
	defaultMaxCandidatesToCheck = 64
)

// EngineOption configures a new Engine, following 0xEodum-Corrector's
// functional-options pattern (pkg/options).
type EngineOption func(*Engine)

// WithKnownWordsPenalty overrides the penalty subtracted when the
// original token was already known and a first-level candidate replaces
// it.
func WithKnownWordsPenalty(p float64) EngineOption {
	return func(e *Engine) { e.knownWordsPenalty = p }
}

// WithUnknownWordsPenalty overrides the penalty subtracted when the
// original token was unknown.
func WithUnknownWordsPenalty(p float64) EngineOption {
	return func(e *Engine) { e.unknownWordsPenalty = p }
}

// WithMaxCandidatesToCheck overrides the frequency pre-filter cap.
func WithMaxCandidatesToCheck(n int) EngineOption {
	return func(e *Engine) { e.maxCandidatesToCheck = n }
}

// WithLogger installs a logger. Without this option (or passing nil), the
// engine defaults to a logger writing to stdout under the "contextspell"
// prefix, installed by NewEngine once every option has run.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithCustomDict installs an optional live/session vocabulary overlay.
// Without this option the engine has none and never touches Redis.
func WithCustomDict(d *customdict.Dict) EngineOption {
	return func(e *Engine) { e.customDict = d }
}

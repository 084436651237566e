// Package contextspell is a contextual spelling corrector: candidate
// generation accelerated by a persisted bloom-filter delete-dictionary
// cache, scored against a language model and ranked with a known/unknown
// penalty policy, then spliced back into the original text with case and
// whitespace preserved.
//
// The engine is a thin composition root over four collaborators it treats
// as narrow, swappable interfaces: langmodel.LanguageModel (vocabulary,
// tokenization, scoring), deletecache.Cache (the Deletes1/Deletes2 bloom
// filters), candidategen (edit-distance candidate enumeration), and an
// optional customdict.Dict (live/session vocabulary overlay). It never
// retains a wordref.Word past the correction call that produced it.
package contextspell

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"contextspell/candidategen"
	"contextspell/customdict"
	"contextspell/deletecache"
	"contextspell/langmodel"
)

// version is a static constant; there is no engine-global mutable state.
const version = "1.0.0"

// Engine is the correction engine. Once LoadLangModel or TrainLangModel
// returns, every method below is read-only with respect to the engine and
// safe to call concurrently; SetPenalty and SetMaxCandidatesToCheck are
// not, and are expected to be called during setup only.
type Engine struct {
	model langmodel.LanguageModel
	cache *deletecache.Cache

	knownWordsPenalty    float64
	unknownWordsPenalty  float64
	maxCandidatesToCheck int

	customDict *customdict.Dict
	logger     *log.Logger
}

// NewEngine constructs an Engine with the given language model and any
// options. The engine has no cache and no vocabulary until LoadLangModel
// or TrainLangModel is called.
func NewEngine(model langmodel.LanguageModel, opts ...EngineOption) *Engine {
	e := &Engine{
		model:                model,
		knownWordsPenalty:    defaultKnownWordsPenalty,
		unknownWordsPenalty:  defaultUnknownWordsPenalty,
		maxCandidatesToCheck: defaultMaxCandidatesToCheck,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(os.Stdout, log.Options{
			ReportTimestamp: false,
			Prefix:          "contextspell",
		})
	}
	return e
}

// Version reports the engine's static version string.
func Version() string { return version }

// cachePath derives the sibling cache file path for a model file, matching
// the original's modelFile + ".spell" convention.
func cachePath(modelPath string) string {
	return modelPath + ".spell"
}

// LoadLangModel loads the language model from path, then loads its
// sibling bloom-filter cache; if the cache is absent or its checksum no
// longer matches the loaded model, it is rebuilt in memory and persisted
// before LoadLangModel returns, mirroring TSpellCorrector::LoadLangModel's
// LoadCache-then-PrepareCache-and-SaveCache fallback. The engine always
// has a usable cache by the time this returns true.
func (e *Engine) LoadLangModel(path string) bool {
	if !e.model.Load(path) {
		e.logger.Error("language model load failed", "path", path)
		return false
	}

	e.cache = deletecache.New(e.logger)
	checksum := e.model.GetCheckSum()
	if err := e.cache.Load(cachePath(path), checksum); err != nil {
		e.logger.Warn("cache load failed, rebuilding", "path", cachePath(path), "reason", err)
		e.cache.Build(e.model)
		if err := e.cache.Dump(cachePath(path)); err != nil {
			e.logger.Error("cache save failed", "path", cachePath(path), "reason", err)
		}
	}
	return true
}

// TrainLangModel trains the model from a text corpus and alphabet file,
// builds the bloom-filter cache, and writes both the model (outModel) and
// its sibling cache file.
func (e *Engine) TrainLangModel(textPath, alphabetPath, outModel string) bool {
	if !e.model.Train(textPath, alphabetPath) {
		e.logger.Error("language model training failed", "text", textPath, "alphabet", alphabetPath)
		return false
	}
	if !e.model.Dump(outModel) {
		e.logger.Error("language model dump failed", "path", outModel)
		return false
	}

	e.cache = deletecache.New(e.logger)
	e.cache.Build(e.model)
	if err := e.cache.Dump(cachePath(outModel)); err != nil {
		e.logger.Error("cache save failed", "path", cachePath(outModel), "reason", err)
	}
	return true
}

// SetPenalty tunes the known/unknown penalties applied by the ranker.
// Not safe to call concurrently with correction calls.
func (e *Engine) SetPenalty(known, unknown float64) {
	e.knownWordsPenalty = known
	e.unknownWordsPenalty = unknown
}

// SetMaxCandidatesToCheck tunes the frequency pre-filter cap. Not safe to
// call concurrently with correction calls.
func (e *Engine) SetMaxCandidatesToCheck(n int) {
	e.maxCandidatesToCheck = n
}

// AddCustomWord adds word to the engine's live/session custom dictionary.
// A no-op (returns nil) if no custom dictionary was configured via
// WithCustomDict.
func (e *Engine) AddCustomWord(ctx context.Context, word string) error {
	return e.customDict.Add(ctx, word)
}

// RemoveCustomWord removes word from the live/session custom dictionary.
func (e *Engine) RemoveCustomWord(ctx context.Context, word string) error {
	return e.customDict.Remove(ctx, word)
}

// generateCandidates runs the bloom-filter-accelerated path when a cache
// is loaded, falling back to the legacy uncached path otherwise.
func (e *Engine) generateCandidates(word string) []candidategen.Candidate {
	if e.cache != nil && e.cache.Deletes1 != nil && e.cache.Deletes2 != nil {
		return candidategen.Generate(word, e.model, e.cache.Deletes1, e.cache.Deletes2)
	}
	return candidategen.GenerateLegacy(word, e.model)
}

func (e *Engine) isCachedPath() bool {
	return e.cache != nil && e.cache.Deletes1 != nil && e.cache.Deletes2 != nil
}

func (e *Engine) customWordKnown(ctx context.Context, word string) bool {
	ok, err := e.customDict.Contains(ctx, word)
	if err != nil {
		e.logger.Warn("custom dict lookup failed", "word", word, "reason", err)
		return false
	}
	return ok
}

// String implements fmt.Stringer for diagnostics.
func (e *Engine) String() string {
	return fmt.Sprintf("contextspell.Engine{version=%s, cached=%v}", version, e.isCachedPath())
}

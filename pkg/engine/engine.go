// Package engine is the single handle front-ends work through: it binds a
// cipher collaborator, the prepared-text cache and the configured limits, and
// exposes every public search operation with config-driven clamps applied.
package engine

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/pkg/chain"
	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/config"
	"github.com/rdayan/elscan/pkg/els"
	"github.com/rdayan/elscan/pkg/grid"
	"github.com/rdayan/elscan/pkg/skipseq"
	"github.com/rdayan/elscan/pkg/textprep"
)

// Progress reports coarse scan progress to interactive callers.
type Progress func(done, total int)

// Engine wires the search packages behind one facade.
type Engine struct {
	valuer cipher.Valuer
	cache  *textprep.Cache
	cfg    *config.Config
}

// New builds an engine around a cipher collaborator. A nil valuer degrades to
// all-zero values, a nil cfg to built-in defaults.
func New(valuer cipher.Valuer, cfg *config.Config) *Engine {
	if valuer == nil {
		valuer = cipher.Nop{}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Engine{
		valuer: valuer,
		cache:  textprep.NewCache(textprep.DefaultCacheSize),
		cfg:    cfg,
	}
}

// Config exposes the active configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// PrepareText strips raw through the named letter class, served from the
// bounded content-hash cache. An empty className falls back to the configured
// default class.
func (e *Engine) PrepareText(raw, className string) (*textprep.PreparedText, error) {
	if className == "" {
		className = e.cfg.Search.LetterClass
	}
	return e.cache.Prepare(raw, textprep.ClassByName(className))
}

// normalizeTerm folds the term through the class prep was built with.
func (e *Engine) normalizeTerm(prep *textprep.PreparedText, term string) string {
	return string(textprep.ClassByName(prep.Class()).NormalizeTerm(term))
}

// SearchELS runs a constant-skip sweep over [skipMin, skipMax], clamping the
// span and result count to the configured limits.
func (e *Engine) SearchELS(ctx context.Context, prep *textprep.PreparedText, term string, skipMin, skipMax int, dir els.Direction, progress Progress) (*els.Summary, error) {
	if span := e.cfg.Search.MaxSkipSpan; span > 0 && skipMax-skipMin > span {
		log.Warnf("engine: clamping skip range [%d,%d] to span %d", skipMin, skipMax, span)
		skipMax = skipMin + span
	}
	summary, err := els.Search(ctx, prep, e.normalizeTerm(prep, term), skipMin, skipMax, dir, els.Options{
		Valuer:   e.valuer,
		Progress: progress,
	})
	if err != nil {
		return summary, err
	}
	e.clampResults(summary)
	return summary, nil
}

// SearchSequence runs a derived-progression search (triangular, square or
// Fibonacci offsets).
func (e *Engine) SearchSequence(ctx context.Context, prep *textprep.PreparedText, term string, mode skipseq.Mode, progress Progress) (*els.Summary, error) {
	summary, err := els.SearchSequence(ctx, prep, e.normalizeTerm(prep, term), mode, els.Options{
		Valuer:   e.valuer,
		Progress: progress,
	})
	if err != nil {
		return summary, err
	}
	e.clampResults(summary)
	return summary, nil
}

// SearchChain runs the greedy nearest-occurrence search. maxWindow 0 selects
// the configured default; windows above the configured maximum are clamped.
func (e *Engine) SearchChain(ctx context.Context, prep *textprep.PreparedText, term string, maxWindow int, starts []int, progress Progress) (*chain.Summary, error) {
	if maxWindow <= 0 {
		maxWindow = e.cfg.Chain.DefaultWindow
	}
	if ceil := e.cfg.Chain.MaxWindow; ceil > 0 && maxWindow > ceil {
		log.Warnf("engine: clamping chain window %d to %d", maxWindow, ceil)
		maxWindow = ceil
	}
	summary, err := chain.Search(ctx, prep, e.normalizeTerm(prep, term), maxWindow, starts, chain.Options{
		Valuer:   e.valuer,
		Progress: progress,
	})
	if err != nil {
		return summary, err
	}
	if limit := e.cfg.Search.MaxResults; limit > 0 && len(summary.Results) > limit {
		summary.Results = summary.Results[:limit]
	}
	return summary, nil
}

// GridFactors picks the near-square layout for n letters.
func (e *Engine) GridFactors(n int) (grid.Factors, error) {
	return grid.Factorize(n)
}

// SuggestCounts lists letter counts near n that lay out squarer than n.
func (e *Engine) SuggestCounts(n, tolerance int) []int {
	return grid.SuggestCounts(n, tolerance)
}

// BuildMatrix arranges prep into a rows*cols grid.
func (e *Engine) BuildMatrix(prep *textprep.PreparedText, rows, cols int) ([][]rune, error) {
	return grid.BuildMatrix(prep, rows, cols)
}

// ExtractIntervening exposes segment extraction for externally supplied
// position lists (e.g. a UI replaying stored hits).
func (e *Engine) ExtractIntervening(prep *textprep.PreparedText, positions []int) ([]els.InterveningSegment, error) {
	return els.ExtractIntervening(prep, positions, e.valuer)
}

func (e *Engine) clampResults(summary *els.Summary) {
	if limit := e.cfg.Search.MaxResults; limit > 0 && len(summary.Results) > limit {
		log.Debugf("engine: truncating %d results to %d", len(summary.Results), limit)
		summary.Results = summary.Results[:limit]
	}
}

// Stats reports cache occupancy and active limits.
func (e *Engine) Stats() map[string]int {
	return map[string]int{
		"cachedTexts": e.cache.Len(),
		"maxSkipSpan": e.cfg.Search.MaxSkipSpan,
		"maxResults":  e.cfg.Search.MaxResults,
		"maxWindow":   e.cfg.Chain.MaxWindow,
	}
}

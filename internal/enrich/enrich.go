// Package enrich tests terms for statistical over-representation of a
// candidate locus list against an ontology's locus universe.
package enrich

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/go-enrich/internal/locus"
	"github.com/inodb/go-enrich/internal/ontology"
)

// Options tunes an enrichment run.
type Options struct {
	// PValCutoff is the inclusive p-value threshold for reporting a term.
	PValCutoff float64
	// MaxTermSize excludes terms whose resolved membership is larger,
	// filtering out uninformatively broad categories.
	MaxTermSize int
}

// DefaultOptions returns the standard cutoffs.
func DefaultOptions() Options {
	return Options{PValCutoff: 0.05, MaxTermSize: 300}
}

// Engine computes significantly enriched terms. It is stateless apart
// from its logger and safe to reuse across ontologies.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an enrichment engine.
func NewEngine() *Engine {
	return &Engine{logger: zap.NewNop()}
}

// SetLogger sets the logger for per-term diagnostics.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Enrich returns the terms of ont in which loci are over-represented at
// opts.PValCutoff. Only terms sharing at least one locus with the input
// are tested, so terms can never be reported as significantly depleted.
// The input is deduplicated by locus id before any counting, keeping
// the sample size consistent with the overlap count. Results carry the
// p-value in Attrs["pval"] and follow candidate-query order.
func (e *Engine) Enrich(ont *ontology.Ontology, loci []*locus.Locus, opts Options) ([]*ontology.Term, error) {
	if len(loci) == 0 {
		return nil, fmt.Errorf("enrich: empty locus list: %w", ontology.ErrInvalidInput)
	}
	if opts.PValCutoff <= 0 {
		return nil, fmt.Errorf("enrich: pval cutoff %v must be positive: %w",
			opts.PValCutoff, ontology.ErrConfiguration)
	}
	if opts.MaxTermSize <= 0 {
		return nil, fmt.Errorf("enrich: max term size %d must be positive: %w",
			opts.MaxTermSize, ontology.ErrConfiguration)
	}

	sample := make(map[string]bool, len(loci))
	ids := make([]string, 0, len(loci))
	for _, l := range loci {
		if !sample[l.ID] {
			sample[l.ID] = true
			ids = append(ids, l.ID)
		}
	}
	numSampled := len(ids)

	// Invariant across the loop; reflects store state at call time.
	numUniverse, err := ont.NumDistinctLoci()
	if err != nil {
		return nil, err
	}

	candidates, err := ont.CandidateTermIDs(ids)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("selected candidate terms",
		zap.Int("candidates", len(candidates)),
		zap.Int("sampled", numSampled),
		zap.Int("universe", numUniverse))

	var significant []*ontology.Term
	for _, termID := range candidates {
		term, err := ont.Term(termID)
		if err != nil {
			return nil, err
		}

		members := term.LocusSet()
		numInTerm := len(members)
		if numInTerm > opts.MaxTermSize {
			e.logger.Debug("skipping oversized term",
				zap.String("term", termID),
				zap.Int("size", numInTerm))
			continue
		}

		numCommon := 0
		for id := range members {
			if sample[id] {
				numCommon++
			}
		}

		pval := SurvivalFunction(numCommon, numUniverse, numInTerm, numSampled)
		if pval <= opts.PValCutoff {
			term.Attrs["pval"] = pval
			significant = append(significant, term)
		}
	}
	return significant, nil
}

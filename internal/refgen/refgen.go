// Package refgen provides reference genome locus resolution.
package refgen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/inodb/go-enrich/internal/locus"
)

// ErrUnknownLocus is returned when a locus id is not present in the reference genome.
var ErrUnknownLocus = errors.New("unknown locus")

// RefGen is a named, in-memory index of loci keyed by id.
type RefGen struct {
	name string
	loci map[string]*locus.Locus
}

// New creates an empty reference genome with the given name.
func New(name string) *RefGen {
	return &RefGen{
		name: name,
		loci: make(map[string]*locus.Locus),
	}
}

// Name returns the reference genome name (e.g., Zm5bFGS).
func (r *RefGen) Name() string {
	return r.name
}

// Add registers a locus. A later Add with the same id replaces the earlier one.
func (r *RefGen) Add(l *locus.Locus) {
	r.loci[l.ID] = l
}

// Size returns the number of loci in the reference genome.
func (r *RefGen) Size() int {
	return len(r.loci)
}

// Resolve returns the locus for an id.
func (r *RefGen) Resolve(id string) (*locus.Locus, error) {
	l, ok := r.loci[id]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", id, ErrUnknownLocus)
	}
	return l, nil
}

// FromIDs resolves a batch of ids into loci. Ids that are not in the
// reference genome are dropped, and repeated ids yield a single locus.
// Order of first appearance is preserved.
func (r *RefGen) FromIDs(ids []string) []*locus.Locus {
	seen := make(map[string]bool, len(ids))
	var result []*locus.Locus
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if l, ok := r.loci[id]; ok {
			result = append(result, l)
		}
	}
	return result
}

// Chromosomes returns a sorted list of chromosomes covered by the reference genome.
func (r *RefGen) Chromosomes() []string {
	seen := make(map[string]bool)
	for _, l := range r.loci {
		seen[l.Chrom] = true
	}
	chroms := make([]string, 0, len(seen))
	for c := range seen {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}

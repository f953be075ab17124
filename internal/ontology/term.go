// Package ontology stores named collections of terms and their locus
// associations, and answers membership and count queries over them.
package ontology

import (
	"fmt"

	"github.com/inodb/go-enrich/internal/locus"
)

// Term is a named category with a description and associated loci.
// Attrs carries derived, non-persistent annotations such as the
// p-value attached by an enrichment run.
type Term struct {
	ID    string
	Desc  string
	Loci  []*locus.Locus
	Attrs map[string]float64
}

// NewTerm creates a term over the given loci.
func NewTerm(id, desc string, loci ...*locus.Locus) *Term {
	return &Term{
		ID:    id,
		Desc:  desc,
		Loci:  loci,
		Attrs: make(map[string]float64),
	}
}

// LocusIDs returns the ids of the term's loci, in association order.
func (t *Term) LocusIDs() []string {
	ids := make([]string, len(t.Loci))
	for i, l := range t.Loci {
		ids[i] = l.ID
	}
	return ids
}

// LocusSet returns the term's loci deduplicated by id.
func (t *Term) LocusSet() map[string]*locus.Locus {
	set := make(map[string]*locus.Locus, len(t.Loci))
	for _, l := range t.Loci {
		set[l.ID] = l
	}
	return set
}

// String returns a short description of the term.
func (t *Term) String() string {
	return fmt.Sprintf("Term:%s - %s - %d loci", t.ID, t.Desc, len(t.Loci))
}

// Package locus defines the genomic locus value object.
package locus

import "fmt"

// Locus represents a genomic feature, typically a gene.
type Locus struct {
	ID     string // Locus identifier (e.g., GRMZM2G004528)
	Chrom  string // Chromosome
	Start  int64  // Start position (1-based)
	End    int64  // End position (1-based, inclusive)
	Strand int8   // +1 (forward) or -1 (reverse)
}

// New creates a locus covering [start, end] on the given chromosome.
func New(id, chrom string, start, end int64, strand int8) *Locus {
	return &Locus{ID: id, Chrom: chrom, Start: start, End: end, Strand: strand}
}

// Len returns the length of the locus in bases.
func (l *Locus) Len() int64 {
	return l.End - l.Start + 1
}

// Contains returns true if the given position is within the locus boundaries.
func (l *Locus) Contains(pos int64) bool {
	return pos >= l.Start && pos <= l.End
}

// IsForwardStrand returns true if the locus is on the forward strand.
func (l *Locus) IsForwardStrand() bool {
	return l.Strand == 1
}

// IsReverseStrand returns true if the locus is on the reverse strand.
func (l *Locus) IsReverseStrand() bool {
	return l.Strand == -1
}

// String returns a compact region description.
func (l *Locus) String() string {
	return fmt.Sprintf("%s:%s:%d-%d", l.ID, l.Chrom, l.Start, l.End)
}

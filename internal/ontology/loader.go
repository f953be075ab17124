package ontology

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/go-enrich/internal/locus"
)

// LoadTSV ingests term-locus annotations from a tab-separated file.
// Expected columns: term id, locus id, and an optional term
// description (the first non-empty description per term wins). Lines
// starting with # and empty lines are skipped. Gzipped files (.gz) are
// supported.
//
// Association rows are stored for every locus id in the file, including
// ids unknown to the reference genome; those are dropped later at
// resolution time. Terms are inserted through AddTerms in input order.
func (o *Ontology) LoadTSV(path string, overwrite bool) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open annotations file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return 0, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	terms, err := parseAnnotations(reader)
	if err != nil {
		return 0, err
	}
	if err := o.AddTerms(terms, overwrite); err != nil {
		return 0, err
	}
	return len(terms), nil
}

// parseAnnotations reads term annotations, preserving term order of
// first appearance and association order within a term.
func parseAnnotations(r io.Reader) ([]*Term, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var order []string
	byID := make(map[string]*Term)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected at least 2 columns, got %d: %w",
				lineNumber, len(fields), ErrInvalidInput)
		}
		termID, locusID := fields[0], fields[1]
		if termID == "" || locusID == "" {
			return nil, fmt.Errorf("line %d: empty term or locus id: %w", lineNumber, ErrInvalidInput)
		}

		term, ok := byID[termID]
		if !ok {
			term = NewTerm(termID, "")
			byID[termID] = term
			order = append(order, termID)
		}
		if term.Desc == "" && len(fields) >= 3 {
			term.Desc = fields[2]
		}
		// Bare locus reference; resolution happens at read time.
		term.Loci = append(term.Loci, &locus.Locus{ID: locusID})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read annotations file: %w", err)
	}

	terms := make([]*Term, len(order))
	for i, id := range order {
		terms[i] = byID[id]
	}
	return terms, nil
}

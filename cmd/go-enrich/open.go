package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inodb/go-enrich/internal/duckdb"
	"github.com/inodb/go-enrich/internal/ontology"
	"github.com/inodb/go-enrich/internal/refgen"
)

// openOntology reopens a named ontology, rebuilding its reference
// genome from the loci file recorded at creation time.
func openOntology(name string) (*ontology.Ontology, error) {
	path := filepath.Join(dataDir(), name+".duckdb")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ontology %q: %w", name, ontology.ErrNotFound)
		}
		return nil, fmt.Errorf("ontology %q: %w", name, err)
	}

	store, err := duckdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology %q: %w", name, err)
	}
	refgenName, err := store.Global("refgen")
	if err != nil {
		store.Close()
		return nil, err
	}
	lociPath, err := store.Global("refgen_loci")
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Close(); err != nil {
		return nil, err
	}

	if refgenName == "" {
		return nil, fmt.Errorf("ontology %q has no reference genome recorded", name)
	}
	if lociPath == "" {
		return nil, fmt.Errorf("ontology %q has no loci file recorded", name)
	}

	r := refgen.New(refgenName)
	if err := r.LoadTSV(lociPath); err != nil {
		return nil, fmt.Errorf("reload reference genome %q: %w", refgenName, err)
	}
	logger.Debug("reloaded reference genome",
		zap.String("refgen", refgenName),
		zap.String("loci", lociPath),
		zap.Int("size", r.Size()))

	return ontology.Open(dataDir(), name, r)
}

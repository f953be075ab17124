package ontology

import "errors"

// Sentinel errors surfaced by the ontology store and the enrichment
// engine. Callers match them with errors.Is.
var (
	// ErrDuplicateOntology is returned when creating an ontology whose
	// name already denotes an existing database.
	ErrDuplicateOntology = errors.New("ontology already exists")

	// ErrDuplicateTerm is returned when inserting a term id that already
	// exists without requesting an overwrite.
	ErrDuplicateTerm = errors.New("term already exists")

	// ErrNotFound is returned when a term id has no row in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when caller-supplied data violates a
	// precondition, such as an empty candidate locus list.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned for invalid tuning parameters.
	ErrConfiguration = errors.New("invalid configuration")
)

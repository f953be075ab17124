package ontology

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/inodb/go-enrich/internal/duckdb"
	"github.com/inodb/go-enrich/internal/locus"
)

// Resolver maps locus ids to locus objects. The reference genome
// component implements it.
type Resolver interface {
	Name() string
	Resolve(id string) (*locus.Locus, error)
	// FromIDs resolves a batch of ids. Unresolvable ids are dropped and
	// repeated ids yield one locus.
	FromIDs(ids []string) []*locus.Locus
}

// Ontology is a durable collection of terms and their locus
// associations, backed by one DuckDB database per named collection.
// The reference genome used to resolve locus ids is fixed at creation
// and recorded in the database globals.
type Ontology struct {
	name        string
	description string
	store       *duckdb.Store
	refgen      Resolver
}

// dbPath returns the database file for a named ontology.
func dbPath(dir, name string) string {
	return filepath.Join(dir, name+".duckdb")
}

// Create initializes a fresh, empty ontology under dir. It fails with
// ErrDuplicateOntology if name already denotes an existing database.
func Create(dir, name, description string, r Resolver) (*Ontology, error) {
	store, err := duckdb.Create(dbPath(dir, name))
	if err != nil {
		if errors.Is(err, duckdb.ErrExists) {
			return nil, fmt.Errorf("create ontology %q: %w", name, ErrDuplicateOntology)
		}
		return nil, fmt.Errorf("create ontology %q: %w", name, err)
	}

	o := &Ontology{name: name, description: description, store: store, refgen: r}
	if err := o.createTables(); err != nil {
		store.Close()
		return nil, fmt.Errorf("create ontology %q: %w", name, err)
	}
	if err := store.SetGlobal("description", description); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.SetGlobal("refgen", r.Name()); err != nil {
		store.Close()
		return nil, err
	}
	return o, nil
}

// Open opens an existing ontology under dir. The supplied resolver must
// match the reference genome recorded at creation time.
func Open(dir, name string, r Resolver) (*Ontology, error) {
	path := dbPath(dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open ontology %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("open ontology %q: %w", name, err)
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
	if refgenName != r.Name() {
		store.Close()
		return nil, fmt.Errorf("open ontology %q: refgen %q does not match stored %q: %w",
			name, r.Name(), refgenName, ErrInvalidInput)
	}

	description, err := store.Global("description")
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Ontology{name: name, description: description, store: store, refgen: r}, nil
}

// Close releases the underlying database connection.
func (o *Ontology) Close() error {
	return o.store.Close()
}

// Name returns the ontology name.
func (o *Ontology) Name() string {
	return o.name
}

// Description returns the ontology description.
func (o *Ontology) Description() string {
	return o.description
}

// Refgen returns the resolver fixed at creation time.
func (o *Ontology) Refgen() Resolver {
	return o.refgen
}

// Store returns the backing database, for batch callers that need to
// open their own transaction scope.
func (o *Ontology) Store() *duckdb.Store {
	return o.store
}

func (o *Ontology) createTables() error {
	// No UNIQUE constraint on terms.id: DuckDB's unique indexes reject a
	// delete-then-reinsert of the same key within one transaction, which
	// would break overwrite. Uniqueness is enforced by the existence
	// check inside addTerm's transaction.
	_, err := o.store.DB().Exec(`
		CREATE TABLE IF NOT EXISTS terms (
			id VARCHAR,
			description VARCHAR
		);
		CREATE TABLE IF NOT EXISTS term_loci (
			term VARCHAR,
			id VARCHAR
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// BuildIndices creates secondary indices on the term relations. Index
// presence does not change query results, only bulk query speed.
func (o *Ontology) BuildIndices() error {
	_, err := o.store.DB().Exec(`
		CREATE INDEX IF NOT EXISTS terms_id_idx ON terms (id);
		CREATE INDEX IF NOT EXISTS term_loci_idx ON term_loci (term, id);
	`)
	if err != nil {
		return fmt.Errorf("build indices: %w", err)
	}
	return nil
}

// DropIndices removes the secondary indices, typically before a bulk load.
func (o *Ontology) DropIndices() error {
	_, err := o.store.DB().Exec(`
		DROP INDEX IF EXISTS terms_id_idx;
		DROP INDEX IF EXISTS term_loci_idx;
	`)
	if err != nil {
		return fmt.Errorf("drop indices: %w", err)
	}
	return nil
}

// Len returns the total number of terms.
func (o *Ontology) Len() (int, error) {
	var n int
	err := o.store.DB().QueryRow(`SELECT COUNT(*) FROM terms`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count terms: %w", err)
	}
	return n, nil
}

// NumDistinctLoci returns the number of distinct locus ids across all
// term associations. This is the background universe size for
// enrichment.
func (o *Ontology) NumDistinctLoci() (int, error) {
	var n int
	err := o.store.DB().QueryRow(`SELECT COUNT(DISTINCT id) FROM term_loci`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count distinct loci: %w", err)
	}
	return n, nil
}

// Term fetches a term by id, resolving its associated loci through the
// reference genome. Locus ids unknown to the resolver are dropped.
func (o *Ontology) Term(id string) (*Term, error) {
	var desc string
	err := o.store.DB().QueryRow(`SELECT description FROM terms WHERE id = ?`, id).Scan(&desc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("term %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query term %q: %w", id, err)
	}

	ids, err := o.termLocusIDs(id)
	if err != nil {
		return nil, err
	}
	return NewTerm(id, desc, o.refgen.FromIDs(ids)...), nil
}

// termLocusIDs returns the association rows for one term, duplicates included.
func (o *Ontology) termLocusIDs(termID string) ([]string, error) {
	rows, err := o.store.DB().Query(`SELECT id FROM term_loci WHERE term = ?`, termID)
	if err != nil {
		return nil, fmt.Errorf("query term loci %q: %w", termID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan term locus: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// termIDs returns all term ids in storage order.
func (o *Ontology) termIDs() ([]string, error) {
	rows, err := o.store.DB().Query(`SELECT id FROM terms`)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan term id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IterTerms iterates over every term in storage order. Each iteration
// re-issues the underlying query, and locus resolution for a term
// happens as the sequence is consumed, not up front.
func (o *Ontology) IterTerms() iter.Seq2[*Term, error] {
	return func(yield func(*Term, error) bool) {
		ids, err := o.termIDs()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, id := range ids {
			term, err := o.Term(id)
			if !yield(term, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Terms materializes all terms eagerly.
func (o *Ontology) Terms() ([]*Term, error) {
	var terms []*Term
	for term, err := range o.IterTerms() {
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// AddTerm inserts one term: a descriptor row plus one association row
// per locus. With overwrite any existing term with the same id is fully
// deleted first; without it a duplicate id fails with ErrDuplicateTerm.
// When outer is nil the operation runs in its own transaction,
// otherwise it participates in outer without committing it.
func (o *Ontology) AddTerm(term *Term, outer *duckdb.Tx, overwrite bool) error {
	tx, finish, err := o.store.Scope(outer)
	if err != nil {
		return err
	}
	return finish(o.addTerm(tx, term, overwrite))
}

func (o *Ontology) addTerm(tx *duckdb.Tx, term *Term, overwrite bool) error {
	if overwrite {
		if err := o.deleteTerm(tx, term.ID); err != nil {
			return err
		}
	}

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM terms WHERE id = ?`, term.ID).Scan(&n); err != nil {
		return fmt.Errorf("check term %q: %w", term.ID, err)
	}
	if n > 0 {
		return fmt.Errorf("add term %q: %w", term.ID, ErrDuplicateTerm)
	}

	if _, err := tx.Exec(`INSERT INTO terms (id, description) VALUES (?, ?)`, term.ID, term.Desc); err != nil {
		return fmt.Errorf("insert term %q: %w", term.ID, err)
	}
	for _, l := range term.Loci {
		if _, err := tx.Exec(`INSERT INTO term_loci (term, id) VALUES (?, ?)`, term.ID, l.ID); err != nil {
			return fmt.Errorf("insert term locus %q/%q: %w", term.ID, l.ID, err)
		}
	}
	return nil
}

// AddTerms batch-ingests terms. With overwrite it first deletes every
// term in the input set in one transaction, then inserts all of them in
// a second one. The passes are not interleaved, so an id appearing
// twice in the input still conflicts on its second occurrence.
func (o *Ontology) AddTerms(terms []*Term, overwrite bool) error {
	if overwrite {
		if err := o.DeleteTerms(terms); err != nil {
			return err
		}
	}

	tx, finish, err := o.store.Scope(nil)
	if err != nil {
		return err
	}
	for _, term := range terms {
		if err := o.addTerm(tx, term, false); err != nil {
			return finish(err)
		}
	}
	return finish(nil)
}

// DeleteTerm removes a term's descriptor row and all its association
// rows. Deleting an id that does not exist is a no-op, not an error.
// Transaction ownership follows the same rule as AddTerm.
func (o *Ontology) DeleteTerm(id string, outer *duckdb.Tx) error {
	tx, finish, err := o.store.Scope(outer)
	if err != nil {
		return err
	}
	return finish(o.deleteTerm(tx, id))
}

func (o *Ontology) deleteTerm(tx *duckdb.Tx, id string) error {
	if _, err := tx.Exec(`DELETE FROM term_loci WHERE term = ?`, id); err != nil {
		return fmt.Errorf("delete term loci %q: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM terms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete term %q: %w", id, err)
	}
	return nil
}

// DeleteTerms removes a batch of terms in one shared transaction.
func (o *Ontology) DeleteTerms(terms []*Term) error {
	tx, finish, err := o.store.Scope(nil)
	if err != nil {
		return err
	}
	for _, term := range terms {
		if err := o.deleteTerm(tx, term.ID); err != nil {
			return finish(err)
		}
	}
	return finish(nil)
}

// Clear truncates both term relations, leaving the ontology empty but intact.
func (o *Ontology) Clear() error {
	tx, finish, err := o.store.Scope(nil)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM term_loci`); err != nil {
		return finish(fmt.Errorf("clear term loci: %w", err))
	}
	if _, err := tx.Exec(`DELETE FROM terms`); err != nil {
		return finish(fmt.Errorf("clear terms: %w", err))
	}
	return finish(nil)
}

// CandidateTermIDs returns the distinct ids of terms that have at least
// one association with a locus in ids. The id list is passed as bound
// parameters, never interpolated into the query text.
func (o *Ontology) CandidateTermIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("candidate terms: empty locus list: %w", ErrInvalidInput)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := o.store.DB().Query(
		`SELECT DISTINCT term FROM term_loci WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidate terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan candidate term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// Summary returns a one-line human-readable description of the ontology.
func (o *Ontology) Summary() string {
	n, err := o.Len()
	if err != nil {
		n = -1
	}
	return fmt.Sprintf("Ontology:%s - desc: %s - contains %d terms for %s",
		o.name, o.description, n, o.refgen.Name())
}

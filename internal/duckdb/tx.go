package duckdb

import (
	"database/sql"
	"fmt"
)

// Tx is a scoped transaction on a Store. The scope that opened the
// transaction owns it: only the owner may commit or roll back, and
// operations handed an existing Tx participate without committing.
type Tx struct {
	tx    *sql.Tx
	owned bool
	done  bool
}

// Begin opens a new owned transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w: %v", ErrTx, err)
	}
	return &Tx{tx: tx, owned: true}, nil
}

// Scope returns a transaction scope for a leaf operation. If outer is
// non-nil the operation participates in it and the returned finish func
// does nothing, leaving commit and rollback to the owner. If outer is
// nil a fresh owned transaction is opened and finish commits it on a
// nil error, rolls it back otherwise.
//
// Usage:
//
//	tx, finish, err := s.Scope(outer)
//	if err != nil { return err }
//	return finish(do(tx))
func (s *Store) Scope(outer *Tx) (*Tx, func(error) error, error) {
	if outer != nil {
		return outer, func(err error) error { return err }, nil
	}
	tx, err := s.Begin()
	if err != nil {
		return nil, nil, err
	}
	finish := func(err error) error {
		if err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}
	return tx, finish, nil
}

// Exec runs a statement within the transaction.
func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.tx.Exec(query, args...)
}

// QueryRow runs a single-row query within the transaction.
func (t *Tx) QueryRow(query string, args ...any) *sql.Row {
	return t.tx.QueryRow(query, args...)
}

// Commit commits an owned transaction. Committing a participating
// scope is an error: the opener owns the transaction lifecycle.
func (t *Tx) Commit() error {
	if !t.owned {
		return fmt.Errorf("commit: %w: scope does not own the transaction", ErrTx)
	}
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w: %v", ErrTx, err)
	}
	return nil
}

// Rollback aborts an owned transaction. Safe to call after Commit.
func (t *Tx) Rollback() error {
	if !t.owned || t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w: %v", ErrTx, err)
	}
	return nil
}

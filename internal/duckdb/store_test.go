package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestCreateExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.duckdb")

	s, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = Create(path)
	assert.ErrorIs(t, err, ErrExists)
}

func TestGlobals(t *testing.T) {
	s := openInMemory(t)

	val, err := s.Global("refgen")
	require.NoError(t, err)
	assert.Empty(t, val, "missing global should be empty")

	require.NoError(t, s.SetGlobal("refgen", "Zm5bFGS"))
	require.NoError(t, s.SetGlobal("description", "maize GO"))

	val, err = s.Global("refgen")
	require.NoError(t, err)
	assert.Equal(t, "Zm5bFGS", val)

	// Replacement, not duplication
	require.NoError(t, s.SetGlobal("refgen", "B73v4"))
	val, err = s.Global("refgen")
	require.NoError(t, err)
	assert.Equal(t, "B73v4", val)
}

func TestScopeOwnedCommit(t *testing.T) {
	s := openInMemory(t)
	_, err := s.DB().Exec(`CREATE TABLE items (id VARCHAR)`)
	require.NoError(t, err)

	tx, finish, err := s.Scope(nil)
	require.NoError(t, err)
	_, err = tx.Exec(`INSERT INTO items VALUES (?)`, "a")
	require.NoError(t, err)
	require.NoError(t, finish(err))

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestScopeOwnedRollback(t *testing.T) {
	s := openInMemory(t)
	_, err := s.DB().Exec(`CREATE TABLE items (id VARCHAR)`)
	require.NoError(t, err)

	tx, finish, err := s.Scope(nil)
	require.NoError(t, err)
	_, err = tx.Exec(`INSERT INTO items VALUES (?)`, "a")
	require.NoError(t, err)

	failed := assert.AnError
	assert.ErrorIs(t, finish(failed), assert.AnError)

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 0, n, "rolled-back insert must not be visible")
}

func TestScopeParticipating(t *testing.T) {
	s := openInMemory(t)
	_, err := s.DB().Exec(`CREATE TABLE items (id VARCHAR)`)
	require.NoError(t, err)

	outer, err := s.Begin()
	require.NoError(t, err)

	tx, finish, err := s.Scope(outer)
	require.NoError(t, err)
	assert.Same(t, outer, tx)

	_, err = tx.Exec(`INSERT INTO items VALUES (?)`, "a")
	require.NoError(t, err)
	require.NoError(t, finish(nil))

	// finish on a participating scope must not have committed
	require.NoError(t, outer.Rollback())

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestCommitNotOwned(t *testing.T) {
	s := openInMemory(t)

	outer, err := s.Begin()
	require.NoError(t, err)
	defer outer.Rollback()

	participant := &Tx{tx: outer.tx, owned: false}
	assert.ErrorIs(t, participant.Commit(), ErrTx)
}

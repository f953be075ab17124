package refgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/go-enrich/internal/locus"
)

func testRefGen() *RefGen {
	r := New("Zm5bFGS")
	r.Add(locus.New("g1", "1", 100, 200, 1))
	r.Add(locus.New("g2", "1", 300, 400, -1))
	r.Add(locus.New("g3", "2", 100, 200, 1))
	return r
}

func TestResolve(t *testing.T) {
	r := testRefGen()

	l, err := r.Resolve("g2")
	require.NoError(t, err)
	assert.Equal(t, "g2", l.ID)
	assert.Equal(t, int8(-1), l.Strand)

	_, err = r.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownLocus)
}

func TestFromIDs(t *testing.T) {
	r := testRefGen()

	// Unknown ids dropped, repeats collapsed, first-appearance order kept
	loci := r.FromIDs([]string{"g3", "unknown", "g1", "g3", "g1"})
	require.Len(t, loci, 2)
	assert.Equal(t, "g3", loci[0].ID)
	assert.Equal(t, "g1", loci[1].ID)

	assert.Empty(t, r.FromIDs([]string{"nope"}))
	assert.Empty(t, r.FromIDs(nil))
}

func TestAddReplaces(t *testing.T) {
	r := testRefGen()
	r.Add(locus.New("g1", "5", 1, 50, -1))

	l, err := r.Resolve("g1")
	require.NoError(t, err)
	assert.Equal(t, "5", l.Chrom)
	assert.Equal(t, 3, r.Size())
}

func TestChromosomes(t *testing.T) {
	r := testRefGen()
	assert.Equal(t, []string{"1", "2"}, r.Chromosomes())
}

func TestLoadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loci.tsv")
	content := "# id\tchrom\tstart\tend\tstrand\n" +
		"g1\t1\t100\t200\t+\n" +
		"g2\t1\t300\t400\t-\n" +
		"\n" +
		"g3\t2\t100\t200\t1\n" +
		"g4\t2\t500\t600\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := New("test")
	require.NoError(t, r.LoadTSV(path))
	assert.Equal(t, 4, r.Size())

	g2, err := r.Resolve("g2")
	require.NoError(t, err)
	assert.True(t, g2.IsReverseStrand())
	assert.Equal(t, int64(300), g2.Start)

	// Missing strand defaults to forward
	g4, err := r.Resolve("g4")
	require.NoError(t, err)
	assert.True(t, g4.IsForwardStrand())
}

func TestLoadTSVBadRows(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.tsv")
	require.NoError(t, os.WriteFile(short, []byte("g1\t1\t100\n"), 0644))
	assert.Error(t, New("test").LoadTSV(short))

	badStrand := filepath.Join(dir, "strand.tsv")
	require.NoError(t, os.WriteFile(badStrand, []byte("g1\t1\t100\t200\tx\n"), 0644))
	assert.Error(t, New("test").LoadTSV(badStrand))

	badStart := filepath.Join(dir, "start.tsv")
	require.NoError(t, os.WriteFile(badStart, []byte("g1\t1\tabc\t200\n"), 0644))
	assert.Error(t, New("test").LoadTSV(badStart))
}

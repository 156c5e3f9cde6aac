package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/statsboard/internal/domain/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New("PLAYER", "TEAM", "PTS", "FG_PCT", "Season")
	require.NoError(t, err)
	rows := [][]dataset.Value{
		{dataset.Text("Jimmy Butler"), dataset.Text("MIA"), dataset.Number(26.9), dataset.Number(0.489), dataset.Text("2022-23")},
		{dataset.Text("Jamal Murray"), dataset.Text("DEN"), dataset.Number(26.1), dataset.Null(), dataset.Text("2022-23")},
		{dataset.Text("Ja, Jr. \"Quoted\""), dataset.Text("MEM"), dataset.Number(0), dataset.Number(0.5), dataset.Text("2022-23")},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r...))
	}
	return tbl
}

func TestCSVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "nba_data.csv")
	store := NewCSVStore(WithPath("nba", path))

	in := sampleTable(t)
	written, err := store.Save(ctx, "nba", in)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	out, err := store.Load(ctx, "nba")
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
	assert.ElementsMatch(t, in.Columns(), out.Columns(), "column set changed")

	v, _ := out.Cell(1, "FG_PCT")
	assert.True(t, v.IsNull(), "null FG_PCT should read back as null, got %q", v.String())
	name, _ := out.Cell(2, "PLAYER")
	assert.Equal(t, "Ja, Jr. \"Quoted\"", name.String())

	t.Run("single column with an empty cell", func(t *testing.T) {
		one, err := dataset.New("PLAYER")
		require.NoError(t, err)
		for _, v := range []dataset.Value{dataset.Text("a"), dataset.Null(), dataset.Text("b")} {
			require.NoError(t, one.AppendRow(v))
		}

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, one))
		back, err := Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, 3, back.Len(), "row count changed")
		mid, _ := back.Cell(1, "PLAYER")
		assert.True(t, mid.IsNull())
		last, _ := back.Cell(2, "PLAYER")
		assert.Equal(t, "b", last.String())
	})
}

func TestCSVStore_ReplacesWholeFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mlb_data.csv")
	store := NewCSVStore(WithPath("mlb", path))

	_, err := store.Save(ctx, "mlb", sampleTable(t))
	require.NoError(t, err)

	small, _ := dataset.New("playerFullName")
	require.NoError(t, small.AppendRow(dataset.Text("Aaron Judge")))
	_, err = store.Save(ctx, "mlb", small)
	require.NoError(t, err)

	out, err := store.Load(ctx, "mlb")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"playerFullName"}, out.Columns())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestCSVStore_FailedWriteKeepsOldSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlb_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	// a directory where the file should be makes rename fail
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))
	require.Error(t, WriteFile(blocked, sampleTable(t), defaultFileMode))

	out, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len(), "existing snapshot changed")
}

func TestCSVStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(WithPath("mlb", filepath.Join(t.TempDir(), "missing.csv")))

	_, err := store.Load(ctx, "mlb")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Load(ctx, "nhl")
	assert.ErrorIs(t, err, ErrUnknownSport)
	_, err = store.Save(ctx, "nhl", dataset.Empty())
	assert.ErrorIs(t, err, ErrUnknownSport)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Save(canceled, "mlb", dataset.Empty())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode(t *testing.T) {
	tbl, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, tbl.IsEmpty())

	_, err = Decode(strings.NewReader("a,b\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrMalformedCSV, "ragged rows")
	_, err = Decode(strings.NewReader("a,a\n1,2\n"))
	assert.ErrorIs(t, err, ErrMalformedCSV, "duplicate header")

	tbl, err = Decode(strings.NewReader("player,hr\nJudge,\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NullCount(), "empty field should be null")
}

func TestWithPaths(t *testing.T) {
	dir := t.TempDir()
	store := NewCSVStore(WithPaths(map[string]string{
		"mlb": filepath.Join(dir, "mlb.csv"),
		"nfl": "",
	}))

	_, err := store.Path("mlb")
	assert.NoError(t, err)
	_, err = store.Path("nfl")
	assert.ErrorIs(t, err, ErrUnknownSport, "empty path should be skipped")
}

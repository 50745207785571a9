package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/spotlight-server/internal/game"
)

func TestBatchWriter_FinalizeMovesFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	require.NoError(t, err)
	assert.FileExists(t, w.TmpPath())

	rows := []TickRow{
		{RunID: "run-1", Tick: 1, Battery: 100, Lives: 3, Level: 1},
		{RunID: "run-1", Tick: 2, Battery: 99.5, ActiveLights: 1, Lives: 3, Level: 1},
	}
	require.NoError(t, w.WriteRows(rows))
	w.NoteRunWritten()
	assert.Equal(t, 2, w.BufferedRows())
	assert.Equal(t, 1, w.BufferedRuns())

	out, n, runs, err := w.Finalize()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, filepath.Base(out)), out)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, runs)
	assert.FileExists(t, out)
	assert.NoFileExists(t, w.TmpPath())

	got, err := ReadRows(out)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestBatchWriter_EmptyFinalizeRemovesTmp(t *testing.T) {
	w, err := NewBatchWriter(t.TempDir())
	require.NoError(t, err)

	out, n, runs, err := w.Finalize()
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, n)
	assert.Zero(t, runs)

	_, statErr := os.Stat(w.TmpPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestBatchWriter_WriteAfterFinalize(t *testing.T) {
	w, err := NewBatchWriter(t.TempDir())
	require.NoError(t, err)
	_, _, _, err = w.Finalize()
	require.NoError(t, err)

	assert.Error(t, w.WriteRows([]TickRow{{Tick: 1}}))

	// Finalize is idempotent.
	out, _, _, err := w.Finalize()
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestNewBatchWriter_RequiresDir(t *testing.T) {
	_, err := NewBatchWriter("")
	assert.Error(t, err)
}

func TestRowFromSnapshot(t *testing.T) {
	sim := game.NewSimulation(rand.New(rand.NewSource(5)), game.WithoutSpawning())
	in := game.NewInmate(rand.New(rand.NewSource(6)))
	sim.AddInmate(in)
	_, err := sim.ToggleSpotlight(0, true)
	require.NoError(t, err)
	sim.Tick(game.TickInterval)

	row := RowFromSnapshot("run-9", 5, sim.Snapshot())
	assert.Equal(t, "run-9", row.RunID)
	assert.Equal(t, int64(5), row.Seed)
	assert.Equal(t, int64(1), row.Tick)
	assert.Equal(t, int32(1), row.ActiveLights)
	assert.Equal(t, int32(1), row.Inmates)
	assert.Equal(t, int32(game.StartingLives), row.Lives)
	assert.Less(t, row.Battery, float32(100))
}

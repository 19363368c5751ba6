package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/plategraph/internal/tectonics"
	"github.com/talgya/plategraph/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "plates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func synthesize(t *testing.T, seed int64) *tectonics.PlateGraph {
	t.Helper()
	m, err := world.NewHexMesh(24, 12)
	require.NoError(t, err)
	crustCfg := world.DefaultCrustConfig()
	crustCfg.Seed = seed
	g, err := tectonics.Synthesize(m, world.GenerateCrust(m, crustCfg), seed, tectonics.SmallTestConfig(7))
	require.NoError(t, err)
	return g
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	g := synthesize(t, 4)

	id, err := db.SaveRun(4, g)
	require.NoError(t, err)
	assert.Positive(t, id)

	loaded, err := db.LoadRun(id)
	require.NoError(t, err)
	assert.Equal(t, g, loaded)

	run, err := db.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), run.Seed)
	assert.Equal(t, len(g.Plates), run.PlateCount)
	assert.Equal(t, g.MinSeparation, run.MinSeparation)
}

func TestRecentRuns(t *testing.T) {
	db := openTestDB(t)
	var ids []int64
	for seed := int64(1); seed <= 3; seed++ {
		id, err := db.SaveRun(seed, synthesize(t, seed))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, int64(3), runs[0].Seed)
	assert.Equal(t, 24*12, runs[0].CellCount)
	assert.Equal(t, 7, runs[0].PlateCount)
	assert.NotEmpty(t, runs[0].CreatedAt)
}

func TestLoadMissingRun(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadRun(42)
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = db.GetRun(42)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestDeleteRun(t *testing.T) {
	db := openTestDB(t)
	id, err := db.SaveRun(9, synthesize(t, 9))
	require.NoError(t, err)

	require.NoError(t, db.DeleteRun(id))
	_, err = db.LoadRun(id)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, db.DeleteRun(id), ErrRunNotFound)

	var orphans int
	require.NoError(t, db.conn.Get(&orphans, "SELECT COUNT(*) FROM cell_plates WHERE run_id = ?", id))
	assert.Zero(t, orphans)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plates.db")
	db, err := Open(path)
	require.NoError(t, err)
	id, err := db.SaveRun(5, synthesize(t, 5))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}

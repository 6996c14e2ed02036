package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMigrateRecord(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	run := &Run{Fixture: "testdata/basic.json", ErrorCount: 0, WarningCount: 1, OK: true}
	require.NoError(t, Record(db, run))

	runs, err := Recent(db, "testdata/basic.json", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].WarningCount)
	assert.True(t, runs[0].OK)
}

func TestRecentFiltersByFixture(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	require.NoError(t, Record(db, &Run{Fixture: "a.json", OK: true}))
	require.NoError(t, Record(db, &Run{Fixture: "b.json", OK: false}))

	runs, err := Recent(db, "a.json", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a.json", runs[0].Fixture)
}

package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range m {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&count))
	return count == 1
}

func TestMigrationsSortedAndParsed(t *testing.T) {
	runner := NewRunner(setupTestDB(t), files(map[string]string{
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), SQLite)

	migrations, err := runner.Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "init", migrations[0].Name)
	assert.Equal(t, "update", migrations[1].Name)
	assert.Equal(t, 3, migrations[2].Version)
}

func TestMigrationsRejectsBadNames(t *testing.T) {
	tests := map[string]map[string]string{
		"no separator": {"001.sql": "SELECT 1;"},
		"not a number": {"abc_init.sql": "SELECT 1;"},
		"zero version": {"000_init.sql": "SELECT 1;"},
		"duplicate":    {"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"},
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewRunner(setupTestDB(t), files(m), SQLite).Migrations()
			assert.Error(t, err)
		})
	}
}

func TestApplyFromScratchAndNoOp(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_init.sql":  "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"002_posts.sql": "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);",
	}), SQLite)

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	applied, err := runner.Apply()
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "posts"))

	current, latest, err := runner.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, latest)
	assert.NoError(t, runner.ValidateVersion())

	applied, err = runner.Apply()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestApplyIncremental(t *testing.T) {
	db := setupTestDB(t)
	fsys := files(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	})

	applied, err := NewRunner(db, fsys, SQLite).Apply()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	fsys["002_posts.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE posts (id INTEGER PRIMARY KEY);")}
	runner := NewRunner(db, fsys, SQLite)
	assert.Error(t, runner.ValidateVersion(), "schema behind latest")

	applied, err = runner.Apply()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.True(t, tableExists(t, db, "posts"))
}

func TestApplyFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER PRIMARY KEY); NOT VALID SQL;",
	}), SQLite)

	applied, err := runner.Apply()
	require.Error(t, err)
	assert.Equal(t, 1, applied)

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, tableExists(t, db, "broken"))
}

func TestNewerSchemaRejected(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}), SQLite)
	require.NoError(t, runner.ensureVersionTable())
	_, err := db.Exec("INSERT INTO schema_version (version) VALUES (5)")
	require.NoError(t, err)

	_, err = runner.Apply()
	assert.ErrorContains(t, err, "newer than supported")
	assert.ErrorContains(t, runner.ValidateVersion(), "newer than supported")
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "?", SQLite.placeholder())
	assert.Equal(t, "$1", Postgres.placeholder())
	assert.Equal(t, "postgres", Postgres.String())
}

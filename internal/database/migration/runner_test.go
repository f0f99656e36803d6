package migration

import (
	"testing"
	"testing/fstest"

	"skill-swap/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__skills.sql":  {Data: []byte("CREATE TABLE b (id INT);")},
		"V1__users.sql":   {Data: []byte("  CREATE TABLE a (id INT);\n")},
		"README.md":       {Data: []byte("not a migration")},
		"V3_bad-name.sql": {Data: []byte("SELECT 1;")},
	}

	migs, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "users", migs[0].Name)
	assert.Equal(t, "CREATE TABLE a (id INT);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoadMigrations_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")

	_, err = LoadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty migration file")
}

func TestLoadMigrations_ChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a, err := LoadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("SELECT 1;")}})
	require.NoError(t, err)
	b, err := LoadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("\n\nSELECT 1;\n")}})
	require.NoError(t, err)

	assert.Equal(t, a[0].Checksum, b[0].Checksum)
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := LoadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS user_skills")
}

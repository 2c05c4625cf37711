package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Ordered(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_accounts.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestMigrations_DefineTables(t *testing.T) {
	var all strings.Builder
	names, err := migrationNames()
	require.NoError(t, err)
	for _, n := range names {
		b, err := migrationsFS.ReadFile("migrations/" + n)
		require.NoError(t, err)
		all.Write(b)
	}
	sql := all.String()
	for _, table := range []string{"companies", "users", "user_search_logs", "components_info", "components_list", "calc_excel"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, sql, "UNIQUE (user_id, log_date)")
}

func TestSeeds_Embedded(t *testing.T) {
	names, err := sqlFileNames(migrationsFS, "seeds")
	require.NoError(t, err)
	assert.Contains(t, names, "catalog.sql")

	migrations, err := migrationNames()
	require.NoError(t, err)
	for _, n := range migrations {
		assert.NotContains(t, n, "seed", "seeds live outside schema_migrations")
	}
}

func TestIsBlankSQL(t *testing.T) {
	assert.True(t, isBlankSQL("-- header\n\n  -- more\n"))
	assert.True(t, isBlankSQL(""))
	assert.False(t, isBlankSQL("-- header\nINSERT INTO t VALUES (1);"))
}

func TestChecksum_ChangesWithContent(t *testing.T) {
	a := checksum([]byte("INSERT INTO t VALUES (1);"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, checksum([]byte("INSERT INTO t VALUES (1);")))
	assert.NotEqual(t, a, checksum([]byte("INSERT INTO t VALUES (2);")))
}

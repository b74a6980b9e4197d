package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, ".")
	require.NoError(t, err)

	var ups, downs int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "у каждой миграции должен быть down")
	assert.NotZero(t, ups)
}

func TestInitMigration_OverlapConstraint(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "0001_init.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "EXCLUDE USING gist")
	assert.Contains(t, sql, "tstzrange(start_time, end_time, '[)') WITH &&")
	assert.Contains(t, sql, "WHERE (status <> 'CANCELLED')")
}

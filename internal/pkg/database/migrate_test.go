package database

import (
	"io/fs"
	"testing"

	"github.com/chantify/chantify-backend-go/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_RequiresHandle(t *testing.T) {
	assert.EqualError(t, RunMigrations(nil, migrations.FS), "migration database handle is required")
	assert.EqualError(t, RunMigrations(&DB{}, migrations.FS), "migration database handle is required")
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
	assert.Contains(t, ups, "000001_payroll_core.up.sql")
}

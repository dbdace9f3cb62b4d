package test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/db"
)

// runs last: rolling back drops health_entry until the migration is reapplied
func (s *IntegrationTestSuite) TestMigrationsDownAndUp() {
	t := s.T()

	tableExists := func(name string) bool {
		var exists bool
		require.NoError(t, s.DB.QueryRow(`SELECT to_regclass($1) IS NOT NULL;`, "public."+name).Scan(&exists))
		return exists
	}

	require.True(t, tableExists("health_entry"))

	require.NoError(t, db.MigrateDown(s.DB))
	assert.False(t, tableExists("health_entry"))
	assert.True(t, tableExists("goal"))

	require.NoError(t, db.RunMigrations(s.DB))
	assert.True(t, tableExists("health_entry"))
}

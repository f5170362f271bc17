package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/db"
	"github.com/templui/goalpace/internal/db/dbtest"
)

func TestRunMigrationsCreatesTables(t *testing.T) {
	database := dbtest.New(t)

	for _, table := range []string{"users", "goals", "goal_milestones", "sales", "ad_spends"} {
		var count int
		err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}

	version, err := db.Version(context.Background(), database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestMigrateDownRollsBackOne(t *testing.T) {
	database := dbtest.New(t)

	require.NoError(t, db.MigrateDown(context.Background(), database.DB, "sqlite"))

	version, err := db.Version(context.Background(), database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	var count int
	err = database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sales'`)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInitRejectsUnknownDriver(t *testing.T) {
	_, err := db.Init("mysql", "root@/goals")
	require.Error(t, err)
}

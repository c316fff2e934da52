package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dbca-wa/wastd/internal/iodb"
	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests need a running server with the credentials of
// config.New() and a database named iotesting.TestDatabaseName.
// Skip them with:
//   go test -short

func TestNewOperator(t *testing.T) {
	op, err := iodb.NewOperator(config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, op.Driver())

	op, err = iodb.NewOperator(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, op.Driver())

	_, err = iodb.NewOperator("mysql")
	assert.True(t, errcode.Has(err, errcode.DBUnknownDriverError))
}

func TestSQLiteOperator(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()

	_, err := op.HasTables(ctx)
	assert.Error(t, err, "not connected")

	cfg := config.New().Database
	cfg.Path = filepath.Join(t.TempDir(), "wastd.sqlite")
	require.NoError(t, op.Connect(ctx, &cfg))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, schema.Migrate(op.GORM()))

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	for _, table := range []string{
		"conservation_lists", "conservation_categories",
		"conservation_criteria", "taxa", "communities",
		"taxon_gazettals", "taxon_gazettal_categories",
		"taxon_gazettal_criteria", "community_gazettals",
		"encounters", "conservation_threats", "state_transitions",
	} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	require.NoError(t, op.DropAllTables(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPgxOperator_Connect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	require.NotNil(t, op.GORM())
	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), cfg)
	assert.True(t, errcode.Has(err, errcode.DBConnectionError))
}

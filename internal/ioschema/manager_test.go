package ioschema_test

import (
	"context"
	"testing"

	"github.com/dbca-wa/wastd/internal/iodb"
	"github.com/dbca-wa/wastd/internal/ioschema"
	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/dbca-wa/wastd/pkg/lifecycle"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerInterface(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
}

func TestNotConnected(t *testing.T) {
	sm := ioschema.NewManager(iodb.NewSQLiteOperator())
	err := sm.Create(context.Background())
	assert.True(t, errcode.Has(err, errcode.DBNotConnectedError))
	err = sm.Migrate(context.Background())
	assert.True(t, errcode.Has(err, errcode.DBNotConnectedError))
}

func TestCreateSQLite(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx, &iotesting.SQLiteConfig().Database))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(ctx))
	// second run is a no-op
	require.NoError(t, sm.Migrate(ctx))

	for _, table := range []string{
		"conservation_lists", "taxon_gazettals", "taxon_gazettal_categories",
		"community_gazettal_criteria", "state_transitions",
	} {
		ok, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
	assert.True(t, op.GORM().Migrator().HasTable(&schema.Encounter{}))
}

func TestCreatePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test")
	}
	ctx := context.Background()
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, iotesting.GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))
	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(ctx))

	var collation string
	err := op.GORM().Raw(`SELECT collation_name FROM information_schema.columns
		WHERE table_name = 'conservation_categories' AND column_name = 'code'`).
		Scan(&collation).Error
	require.NoError(t, err)
	assert.Equal(t, "C", collation)
}

// Package iotesting provides shared test utilities for database tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"

	"github.com/dbca-wa/wastd/internal/iodb"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/db"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests. This ensures tests never accidentally run against
	// production databases.
	TestDatabaseName = "wastd_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// The database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptJobsNumber(2),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SQLiteConfig returns a test configuration with an in-memory SQLite
// database.
func SQLiteConfig() *config.Config {
	cfg := GetTestConfig()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver(config.DriverSQLite),
		config.OptDatabasePath(":memory:"),
	})
	return cfg
}

// SQLite connects to a fresh in-memory database with the full schema.
// The connection is closed when the test finishes.
func SQLite(t *testing.T) db.Operator {
	t.Helper()

	op := iodb.NewSQLiteOperator()
	err := op.Connect(context.Background(), &SQLiteConfig().Database)
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })

	require.NoError(t, schema.Migrate(op.GORM()))
	return op
}

// Fixture is reference data inserted by Seed.
type Fixture struct {
	List       schema.ConservationList
	Other      schema.ConservationList
	CR, EN, VU schema.ConservationCategory
	OtherCat   schema.ConservationCategory
	A4a, B1    schema.ConservationCriterion
	Taxon      schema.Taxon
	Community  schema.Community
}

// Seed inserts a conservation list "WAWCA" with categories CR, EN, VU and
// criteria A4a, B1, a second list "EPBC" with one category, one taxon and
// one community.
func Seed(t *testing.T, gdb *gorm.DB) *Fixture {
	t.Helper()

	res := &Fixture{
		List: schema.ConservationList{
			Code: "WAWCA", Label: "WA Wildlife Conservation Act",
			ScopeWA: true, ScopeSpecies: true, ScopeCommunities: true,
		},
		Other: schema.ConservationList{
			Code: "EPBC", Label: "EPBC Act",
			ScopeCMW: true, ScopeSpecies: true,
		},
		Taxon: schema.Taxon{
			NameID: 24557, Name: "Caretta caretta (Linnaeus, 1758)",
			Canonical: "Caretta caretta", Code: "zoological",
		},
		Community: schema.Community{
			Code: "SCP20a", Name: "Banksia attenuata woodlands",
		},
	}
	require.NoError(t, gdb.Create(&res.List).Error)
	require.NoError(t, gdb.Create(&res.Other).Error)
	require.NoError(t, gdb.Create(&res.Taxon).Error)
	require.NoError(t, gdb.Create(&res.Community).Error)

	cat := func(l *schema.ConservationList, code string, pos int,
	) schema.ConservationCategory {
		c := schema.ConservationCategory{
			ConservationListID: l.ID, Code: code, Label: code, Position: pos,
		}
		require.NoError(t, gdb.Create(&c).Error)
		c.ConservationList = l
		return c
	}
	crit := func(l *schema.ConservationList, code string, pos int,
	) schema.ConservationCriterion {
		c := schema.ConservationCriterion{
			ConservationListID: l.ID, Code: code, Label: code, Position: pos,
		}
		require.NoError(t, gdb.Create(&c).Error)
		c.ConservationList = l
		return c
	}

	res.CR = cat(&res.List, "CR", 1)
	res.EN = cat(&res.List, "EN", 2)
	res.VU = cat(&res.List, "VU", 3)
	res.OtherCat = cat(&res.Other, "EN", 1)
	res.A4a = crit(&res.List, "A4a", 1)
	res.B1 = crit(&res.List, "B1", 2)
	return res
}

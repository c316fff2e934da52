// Package ioschema implements lifecycle.SchemaManager with GORM
// AutoMigrate.
package ioschema

import (
	"context"
	"fmt"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/db"
	"github.com/dbca-wa/wastd/pkg/lifecycle"
	"github.com/dbca-wa/wastd/pkg/schema"
	"gorm.io/gorm"
)

type manager struct {
	operator db.Operator
}

// NewManager creates a SchemaManager over a connected operator.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// codeColumn is a column whose values are compared byte-wise.
type codeColumn struct {
	table, column string
	varchar       int
}

// codeColumns hold codes and names used in ORDER BY of derived caches and
// listings. SQLite compares them byte-wise already.
var codeColumns = []codeColumn{
	{"conservation_lists", "code", 64},
	{"conservation_categories", "code", 64},
	{"conservation_criteria", "code", 64},
	{"communities", "code", 500},
	{"taxa", "canonical", 1000},
}

func (m *manager) Create(ctx context.Context) error {
	gdb, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gdb); err != nil {
		return CreateSchemaError(err)
	}

	if m.operator.Driver() == config.DriverPostgres {
		if err = setCollation(gdb); err != nil {
			return err
		}
	}
	return nil
}

func (m *manager) Migrate(ctx context.Context) error {
	gdb, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gdb); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

func (m *manager) gorm(ctx context.Context) (*gorm.DB, error) {
	gdb := m.operator.GORM()
	if gdb == nil {
		return nil, NotConnectedError()
	}
	return gdb.WithContext(ctx), nil
}

// setCollation switches code columns to the "C" collation, so PostgreSQL
// orders them like SQLite does.
func setCollation(gdb *gorm.DB) error {
	q := `ALTER TABLE %s ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"`
	for _, col := range codeColumns {
		stmt := fmt.Sprintf(q, col.table, col.column, col.varchar)
		if err := gdb.Exec(stmt).Error; err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}

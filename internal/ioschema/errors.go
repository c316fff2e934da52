package ioschema

import (
	"errors"
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when the operator has no GORM handle.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Connect to the database before changing the schema",
		Err:  errors.New("schema manager: no database connection"),
	}
}

// CreateSchemaError wraps failures of the initial AutoMigrate.
func CreateSchemaError(err error) error {
	msg := `Cannot create WAStD tables

<em>Possible causes:</em>
  - The database user cannot create tables
  - The SQLite file is read-only
  - Tables of another application use the same names

<em>How to fix:</em>
  1. Grant CREATE on the database to the configured user
  2. Use an empty database or run <em>wastd create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("create schema: %w", err),
	}
}

// MigrateSchemaError wraps failures of AutoMigrate on an existing schema.
func MigrateSchemaError(err error) error {
	msg := `Cannot update WAStD tables

<em>Possible causes:</em>
  - Two categories or criteria of a list share a code
  - A gazettal points to a missing taxon or community
  - The database user cannot alter tables

<em>How to fix:</em>
  1. Remove the duplicates or dangling rows named in the log
  2. Run <em>wastd migrate</em> again`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("migrate schema: %w", err),
	}
}

// CollationError is returned when a code column cannot switch to the "C"
// collation on PostgreSQL.
func CollationError(table, column string, err error) error {
	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  "Cannot set \"C\" collation on <em>%s.%s</em>",
		Vars: []any{table, column},
		Err:  fmt.Errorf("collation of %s.%s: %w", table, column, err),
	}
}

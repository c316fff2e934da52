package db

import (
	"context"

	"github.com/dbca-wa/wastd/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a GORM handle
// for the components that read and write records (schema manager, audit
// log, workflow service, seed loader).
//
// Two implementations exist: PostgreSQL through pgxpool and SQLite through
// the pure-Go modernc driver.
type Operator interface {
	// Connect opens the database described by the config.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases all connections.
	Close() error

	// GORM returns the GORM handle bound to the connection, nil before
	// Connect.
	GORM() *gorm.DB

	// Driver returns "postgres" or "sqlite".
	Driver() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

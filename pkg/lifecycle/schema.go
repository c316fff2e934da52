// Package lifecycle defines operations that prepare the database of WAStD.
package lifecycle

import (
	"context"
)

// SchemaManager creates and updates the database schema.
// Both operations are idempotent.
type SchemaManager interface {
	// Create builds all tables of an empty database and applies
	// driver-specific column settings.
	Create(ctx context.Context) error

	// Migrate brings an existing schema to the current version.
	Migrate(ctx context.Context) error
}

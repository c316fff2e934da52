/*
Copyright © 2025 Department of Biodiversity, Conservation and Attractions

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/dbca-wa/wastd/internal/ioschema"
	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	var recache bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate updates the database schema to the latest version.

GORM AutoMigrate:
  - Adds new tables if they don't exist
  - Adds new columns to existing tables
  - Adds missing indexes
  - Does NOT delete columns or tables (safe)

Use this command after updating wastd to get schema changes. With
--recache the labels of all gazettals are recomputed afterwards.

Examples:
  wastd migrate
  wastd migrate --recache`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMigrate(recache)
		},
	}

	migrateCmd.Flags().BoolVarP(&recache, "recache", "r", false,
		"recompute gazettal caches after migration")
	return migrateCmd
}

func runMigrate(recache bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", describeDB())

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return fail(err)
	}

	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'wastd create' first to initialize the schema.`)
		return nil
	}

	sm := ioschema.NewManager(op)

	gn.Info("Migrating schema to latest version...")
	if err := sm.Migrate(ctx); err != nil {
		return fail(err)
	}

	gn.Info("Schema is now up to date.")
	if !recache {
		return nil
	}

	svc := ioworkflow.New(op.GORM(), cfg, ioworkflow.OptProgress(true))
	n, err := svc.Recache(ctx)
	if err != nil {
		return fail(err)
	}
	gn.Info("Recomputed caches of <em>%s</em> gazettals", humanize.Comma(int64(n)))
	return nil
}

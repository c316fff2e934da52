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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dbca-wa/wastd/internal/ioschema"
	"github.com/dbca-wa/wastd/internal/ioseed"
	"github.com/dbca-wa/wastd/pkg/seed"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

type createFlags struct {
	force    bool
	seedFile string
}

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var f createFlags

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the WAStD database schema from scratch.

This command:
  1. Connects to PostgreSQL or SQLite using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate
  4. Sets "C" collation on code columns (PostgreSQL only)
  5. Imports reference data when --seed is given

Use --force to skip confirmation and drop existing tables.

Examples:
  wastd create
  wastd create --force --seed reference.yaml
  WASTD_DATABASE_DRIVER=sqlite wastd create`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd.Context(), f)
		},
	}

	createCmd.Flags().BoolVarP(&f.force, "force", "f",
		false, "drop existing tables without confirmation")
	createCmd.Flags().StringVarP(&f.seedFile, "seed", "s", "",
		"YAML file with reference data to import after creation")

	return createCmd
}

func runCreate(ctx context.Context, f createFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// a broken seed file should not cost the existing tables
	var data *seed.Data
	var err error
	if f.seedFile != "" {
		if data, err = ioseed.Load(f.seedFile); err != nil {
			return fail(err)
		}
	}

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

	if hasTables {
		if !f.force && !confirm(os.Stdin,
			"Database contains existing tables.",
			"Creating schema will drop ALL existing tables and data.",
		) {
			gn.Info("Aborted. No changes made.")
			return nil
		}

		gn.Info("Dropping all existing tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return fail(err)
		}
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return fail(err)
	}
	gn.Info("Database schema creation complete!")

	if data == nil {
		gn.Info("\nNext steps:")
		gn.Info("  - Run 'wastd seed <file>' to import reference data")
		gn.Info("  - Run 'wastd gazettal create' to propose a gazettal")
		return nil
	}

	stats, err := ioseed.New(op.GORM(), cfg, true).Import(ctx, data)
	if err != nil {
		return fail(err)
	}
	gn.Info("Imported <em>%d</em> lists, <em>%d</em> taxa, "+
		"<em>%d</em> communities",
		stats.Lists, stats.Taxa, stats.Communities)
	return nil
}

// confirm prints warnings and asks for "yes". Anything else, including
// a read error, is a refusal.
func confirm(in io.Reader, warnings ...string) bool {
	for _, v := range warnings {
		gn.Warn(v)
	}
	fmt.Print("\nDo you want to continue? (yes/no): ")

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

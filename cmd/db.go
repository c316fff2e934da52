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
	"fmt"
	"strconv"

	"github.com/dbca-wa/wastd/internal/iodb"
	"github.com/dbca-wa/wastd/internal/iofs"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/db"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// connect opens the configured database. Relative SQLite paths are
// resolved against the data directory.
func connect(ctx context.Context) (db.Operator, error) {
	if err := iofs.EnsureSQLiteDir(cfg); err != nil {
		return nil, err
	}

	dbCfg := cfg.Database
	if dbCfg.Driver == config.DriverSQLite {
		dbCfg.Path = config.SQLitePath(cfg.HomeDir, dbCfg.Path)
	}

	op, err := iodb.NewOperator(dbCfg.Driver)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, &dbCfg); err != nil {
		return nil, err
	}
	return op, nil
}

// describeDB returns a short description of the configured database for
// user-facing messages.
func describeDB() string {
	d := cfg.Database
	if d.Driver == config.DriverSQLite {
		return "sqlite:" + config.SQLitePath(cfg.HomeDir, d.Path)
	}
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.Database)
}

// recordArgs parses "<kind> <id>" arguments.
func recordArgs(args []string) (string, uint, error) {
	kind := args[0]
	if !workflow.IsKind(kind) {
		return "", 0, workflow.UnknownKindError(kind)
	}
	id, err := parseID(args[1])
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", s)
	}
	return uint(id), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(res))
	return nil
}

// fail prints the error message for the user and returns the error.
func fail(err error) error {
	gn.PrintErrorMessage(err)
	return err
}

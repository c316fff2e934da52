package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Cannot connect to PostgreSQL <em>%s@%s:%d/%s</em>
   Check that PostgreSQL is running: <em>pg_isready -h %s -p %d</em>
   Review settings in <em>~/.config/wastd/config.yaml</em>`
	vars := []any{user, host, port, database, host, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

func SQLiteConnectionError(path string, err error) error {
	msg := "Cannot open SQLite database <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open sqlite %s: %w", path, err),
	}
}

func GORMConnectionError(err error) error {
	msg := "Cannot initialize database access layer"
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("gorm open: %w", err),
	}
}

func UnknownDriverError(driver string) error {
	msg := "Unknown database driver <em>%s</em>, use postgres or sqlite"
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  errors.New("database is not connected"),
	}
}

func TableCheckError(err error) error {
	msg := "Cannot verify database state"
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s exists check: %w", table, err),
	}
}

func QueryTablesError(err error) error {
	msg := "Cannot list database tables"
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("query tables: %w", err),
	}
}

func ScanTableError(err error) error {
	msg := "Cannot read table names"
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("scan table name: %w", err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}

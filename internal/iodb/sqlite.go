package iodb

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator with the pure-Go SQLite driver.
// It keeps a single connection: SQLite has one writer, and an in-memory
// database exists only inside its connection.
type sqliteOperator struct {
	path  string
	sqlDB *sql.DB
	gdb   *gorm.DB
}

// NewSQLiteOperator creates a new SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens cfg.Path, ":memory:" opens a transient database.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := sqliteDSN(cfg.Path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteConnectionError(cfg.Path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(cfg.Path, err)
	}

	gdb, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		return GORMConnectionError(err)
	}

	s.path = cfg.Path
	s.sqlDB = sqlDB
	s.gdb = gdb
	return nil
}

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + pragmas
}

func (s *sqliteOperator) Close() error {
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}

func (s *sqliteOperator) GORM() *gorm.DB {
	return s.gdb
}

func (s *sqliteOperator) Driver() string {
	return config.DriverSQLite
}

func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	tables, err := s.tables(ctx)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return slices.Contains(tables, tableName), nil
}

func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := s.tables(ctx)
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// DropAllTables drops tables in reverse creation order.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	tables, err := s.tables(ctx)
	if err != nil {
		return QueryTablesError(err)
	}
	slices.Reverse(tables)

	m := s.gdb.WithContext(ctx).Migrator()
	for _, table := range tables {
		if err = m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (s *sqliteOperator) tables(ctx context.Context) ([]string, error) {
	if s.gdb == nil {
		return nil, NotConnectedError()
	}
	var res []string
	err := s.gdb.WithContext(ctx).
		Raw(`SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY rowid`).
		Scan(&res).Error
	return res, err
}

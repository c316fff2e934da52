// Package iodb implements database operations for PostgreSQL (pgxpool)
// and SQLite (modernc). This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewOperator creates an operator for the configured driver
// (without connecting).
func NewOperator(driver string) (db.Operator, error) {
	switch driver {
	case config.DriverPostgres:
		return NewPgxOperator(), nil
	case config.DriverSQLite:
		return NewSQLiteOperator(), nil
	default:
		return nil, UnknownDriverError(driver)
	}
}

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
	gdb  *gorm.DB
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect opens a pgxpool to PostgreSQL and GORM on top of it.
// Connections identify themselves as "wastd" in pg_stat_activity.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	connErr := func(err error) error {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	poolConfig, err := pgxpool.ParseConfig(pgDSN(cfg))
	if err != nil {
		return connErr(err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.ConnConfig.RuntimeParams["application_name"] = config.AppName

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return connErr(err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return connErr(err)
	}

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		gormConfig(),
	)
	if err != nil {
		pool.Close()
		return GORMConnectionError(err)
	}

	p.pool = pool
	p.gdb = gdb
	return nil
}

func pgDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *pgxOperator) GORM() *gorm.DB {
	return p.gdb
}

func (p *pgxOperator) Driver() string {
	return config.DriverPostgres
}

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	tables, err := p.tables(ctx)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return slices.Contains(tables, tableName), nil
}

// HasTables reports whether the public schema has any tables.
func (p *pgxOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := p.tables(ctx)
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// DropAllTables drops every table of the public schema in one statement.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	tables, err := p.tables(ctx)
	if err != nil {
		return QueryTablesError(err)
	}
	if len(tables) == 0 {
		return nil
	}

	names := make([]string, len(tables))
	for i, v := range tables {
		names[i] = pgx.Identifier{v}.Sanitize()
	}
	q := "DROP TABLE IF EXISTS " + strings.Join(names, ", ") + " CASCADE"
	if _, err = p.pool.Exec(ctx, q); err != nil {
		return DropTableError(strings.Join(tables, ", "), err)
	}
	return nil
}

func (p *pgxOperator) tables(ctx context.Context) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx, `
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		ORDER BY tablename`)
	if err != nil {
		return nil, err
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, ScanTableError(err)
	}
	return res, nil
}

// gormConfig silences GORM's own logger, errors are returned and logged
// by callers through slog.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

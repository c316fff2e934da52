// Package config provides configuration management for WAStD.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, path, host, port, user, password, database,
//     ssl_mode, batch_size
//   - Log: level, format, destination
//   - Server: host, port, allow_transitions
//   - Workflow: deactivate_siblings
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use WASTD_ prefix with underscores for nesting:
//
//	WASTD_DATABASE_DRIVER=postgres
//	WASTD_DATABASE_HOST=localhost
//	WASTD_LOG_LEVEL=info
//	WASTD_WORKFLOW_DEACTIVATE_SIBLINGS=true
package config

import (
	"runtime"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete WAStD configuration.
type Config struct {
	// Database contains connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Server contains settings of the JSON API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Workflow contains policies of the gazettal workflow.
	Workflow WorkflowConfig `mapstructure:"workflow" yaml:"workflow"`

	// JobsNumber is the number of concurrent workers for parallel operations
	// (recache, seed import).
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. Ignored by PostgreSQL.
	// ":memory:" creates a transient database.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of gazettals loaded per page during recache.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// ServerConfig contains settings of the HTTP API.
type ServerConfig struct {
	// Host is the interface to listen on.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the port to listen on.
	Port int `mapstructure:"port" yaml:"port"`

	// AllowTransitions enables POST of transitions through the API.
	// Transitions are an admin operation and are off by default.
	AllowTransitions bool `mapstructure:"allow_transitions" yaml:"allow_transitions"`
}

// WorkflowConfig contains policies applied by the workflow service.
type WorkflowConfig struct {
	// DeactivateSiblings moves other gazetted records of the same subject
	// and conservation list to inactive when a record becomes gazetted.
	DeactivateSiblings bool `mapstructure:"deactivate_siblings" yaml:"deactivate_siblings"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    DriverPostgres,
			Path:      "wastd.sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "wastd",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Workflow: WorkflowConfig{
			DeactivateSiblings: true,
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// Addr returns host:port of the HTTP API.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + itoa(s.Port)
}

package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ConfigWriteError
	ConfigReadError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBUnknownDriverError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// State machine errors
	FSMTableError
	TransitionNotAllowedError
	GateCheckFailedError
	AuditRecordError

	// Workflow errors
	UnknownKindError
	RecordNotFoundError
	ConcurrentModificationError
	CacheRecomputeError
	RelationsError
	SaveRecordError
	RecacheError
	InputValidationError

	// Seed errors
	SeedReadError
	SeedValidationError
	SeedImportError

	// API errors
	ServerStartError
)

// Has reports whether err, or an error it wraps, is a *gn.Error
// with the given code.
func Has(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}

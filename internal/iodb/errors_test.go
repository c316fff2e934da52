package iodb

import (
	"errors"
	"testing"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		wrap bool
	}{
		{"connection",
			ConnectionError("h", 5432, "d", "u", cause),
			errcode.DBConnectionError, true},
		{"sqlite", SQLiteConnectionError("x.db", cause),
			errcode.DBConnectionError, true},
		{"gorm", GORMConnectionError(cause),
			errcode.SchemaGORMConnectionError, true},
		{"driver", UnknownDriverError("mysql"),
			errcode.DBUnknownDriverError, false},
		{"not connected", NotConnectedError(),
			errcode.DBNotConnectedError, false},
		{"table check", TableCheckError(cause),
			errcode.DBTableCheckError, true},
		{"exists", TableExistsCheckError("t", cause),
			errcode.DBTableExistsCheckError, true},
		{"query", QueryTablesError(cause),
			errcode.DBQueryTablesError, true},
		{"scan", ScanTableError(cause),
			errcode.DBScanTableError, true},
		{"drop", DropTableError("t", cause),
			errcode.DBDropTableError, true},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.ErrorAs(t, v.err, &gnErr, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		if v.wrap {
			assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		}
	}
}

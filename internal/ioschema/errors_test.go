package ioschema

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
		vars int
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, 0},
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError, 0},
		{"migrate", MigrateSchemaError(cause), errcode.SchemaMigrateError, 0},
		{"collation", CollationError("taxa", "canonical", cause),
			errcode.SchemaCollationError, 2},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, v.vars)
			if v.code != errcode.DBNotConnectedError {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}

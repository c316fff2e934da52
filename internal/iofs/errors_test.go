package iofs

import (
	"errors"
	"testing"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "mkdir /test/dir"},
		{"write", ConfigWriteError("/test/config.yaml", cause),
			errcode.ConfigWriteError, "write config"},
		{"read", ConfigReadError("/test/config.yaml", cause),
			errcode.ConfigReadError, "read config"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			require.Len(t, gnErr.Vars, 1)
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), v.text)
		})
	}
}

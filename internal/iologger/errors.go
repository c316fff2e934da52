package iologger

import (
	"fmt"
	"runtime"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError is returned when the log file cannot be opened.
// The caller function is kept in the wrapped error for the debug log.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open WAStD log <em>%s</em>, check permissions of the log directory",
		Vars: []any{path},
		Err: fmt.Errorf("%s: open log %s: %w",
			runtime.FuncForPC(pc).Name(), path, err),
	}
}

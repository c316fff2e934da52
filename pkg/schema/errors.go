package schema

import (
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// CacheRecomputeError is returned by the save hook of gazettals when
// their relations cannot be read.
func CacheRecomputeError(kind string, id uint, err error) error {
	msg := "Cannot recompute caches of %s #%d"
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.CacheRecomputeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("recompute caches of %s #%d: %w", kind, id, err),
	}
}

package ioseed

import (
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadError is returned when a seed file cannot be read or decoded.
func ReadError(path string, err error) error {
	msg := `Cannot read seed file

<em>File:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Unknown field name`

	return &gn.Error{
		Code: errcode.SeedReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("read seed %s: %w", path, err),
	}
}

// ValidationError is returned when seed data are inconsistent.
func ValidationError(err error) error {
	msg := "Invalid seed data: %s"
	return &gn.Error{
		Code: errcode.SeedValidationError,
		Msg:  msg,
		Vars: []any{err.Error()},
		Err:  fmt.Errorf("seed validation: %w", err),
	}
}

// ImportError is returned when a section cannot be written.
func ImportError(section string, err error) error {
	msg := "Cannot import <em>%s</em>"
	return &gn.Error{
		Code: errcode.SeedImportError,
		Msg:  msg,
		Vars: []any{section},
		Err:  fmt.Errorf("import %s: %w", section, err),
	}
}

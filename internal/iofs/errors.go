package iofs

import (
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when a WAStD directory cannot be created.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("mkdir %s: %w", dir, err),
	}
}

// ConfigWriteError is returned when the default config cannot be written.
func ConfigWriteError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigWriteError,
		Msg:  "Cannot write default configuration to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("write config %s: %w", path, err),
	}
}

// ConfigReadError is returned when config.yaml cannot be read or decoded.
func ConfigReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigReadError,
		Msg:  "Cannot read configuration <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("read config %s: %w", path, err),
	}
}

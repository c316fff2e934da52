package workflow

import (
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

func UnknownKindError(kind string) error {
	msg := "Unknown record kind <em>%s</em>"
	vars := []any{kind}
	return &gn.Error{
		Code: errcode.UnknownKindError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown kind %q", kind),
	}
}

func NotGazettalError(kind string) error {
	msg := "<em>%s</em> is not a gazettal"
	vars := []any{kind}
	return &gn.Error{
		Code: errcode.UnknownKindError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("kind %q is not a gazettal", kind),
	}
}

func RecordNotFoundError(kind string, id uint) error {
	msg := "Cannot find %s #%d"
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s #%d not found", kind, id),
	}
}

func ConcurrentModificationError(kind string, id uint, version int) error {
	msg := "%s #%d was changed by someone else, reload and try again"
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.ConcurrentModificationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s #%d: version %d is outdated",
			kind, id, version),
	}
}

func RelationsError(kind string, id uint, err error) error {
	msg := "Cannot set categories and criteria of %s #%d"
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.RelationsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("relations of %s #%d: %w", kind, id, err),
	}
}

func SaveRecordError(kind string, id uint, err error) error {
	msg := "Cannot save %s #%d"
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.SaveRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("save %s #%d: %w", kind, id, err),
	}
}

func RecacheError(err error) error {
	msg := "Cannot recompute gazettal caches"
	return &gn.Error{
		Code: errcode.RecacheError,
		Msg:  msg,
		Err:  fmt.Errorf("recache: %w", err),
	}
}

func InputValidationError(err error) error {
	msg := "Invalid input: %s"
	vars := []any{err.Error()}
	return &gn.Error{
		Code: errcode.InputValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("validation: %w", err),
	}
}

// IsNotFound reports whether err is a RecordNotFound error.
func IsNotFound(err error) bool {
	return errcode.Has(err, errcode.RecordNotFoundError)
}

// IsConcurrentModification reports whether the record changed under us.
func IsConcurrentModification(err error) bool {
	return errcode.Has(err, errcode.ConcurrentModificationError)
}

package fsm

import (
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
)

// TableError is returned when a transition table declaration is invalid.
func TableError(name, reason string) error {
	msg := "Invalid transition table <em>%s</em>: %s"
	vars := []any{name, reason}
	return &gn.Error{
		Code: errcode.FSMTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s: %s", name, reason),
	}
}

// NotAllowedError is returned when the operation is unknown or the record
// is not in one of its legal source states.
func NotAllowedError(rec Record, op Operation) error {
	msg := "Cannot <em>%s</em> %s #%d while it is <em>%s</em>"
	vars := []any{op, rec.RecordKind(), rec.RecordID(), rec.CurrentState()}
	return &gn.Error{
		Code: errcode.TransitionNotAllowedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("transition %s not allowed for %s #%d in state %s",
			op, rec.RecordKind(), rec.RecordID(), rec.CurrentState()),
	}
}

// GateFailedError is returned when the gate-check predicate of a legal
// transition rejects it.
func GateFailedError(rec Record, op Operation) error {
	msg := "Gate check rejected <em>%s</em> for %s #%d"
	vars := []any{op, rec.RecordKind(), rec.RecordID()}
	return &gn.Error{
		Code: errcode.GateCheckFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("gate check failed for %s on %s #%d",
			op, rec.RecordKind(), rec.RecordID()),
	}
}

// AuditError is returned when the audit sink refused the entry.
func AuditError(rec Record, op Operation, err error) error {
	msg := "Cannot record <em>%s</em> of %s #%d in the audit log"
	vars := []any{op, rec.RecordKind(), rec.RecordID()}
	return &gn.Error{
		Code: errcode.AuditRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("audit of %s failed: %w", op, err),
	}
}

// IsNotAllowed reports whether err is a TransitionNotAllowed error.
func IsNotAllowed(err error) bool {
	return errcode.Has(err, errcode.TransitionNotAllowedError)
}

// IsGateFailed reports whether err is a GateCheckFailed error.
func IsGateFailed(err error) bool {
	return errcode.Has(err, errcode.GateCheckFailedError)
}

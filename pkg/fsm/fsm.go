// Package fsm provides a table-driven finite state machine shared by all
// workflows of WAStD: gazettal approval, record quality control and record
// curation.
//
// A Table declares states and transitions. Each Transition names the
// operation, the set of legal source states (empty set means "any state"),
// the target state and an optional gate-check predicate. Firing an operation
// checks the source state, evaluates the gate, changes the state of the
// record and appends one audit entry. Firing never persists the record,
// persistence belongs to the caller.
package fsm

import (
	"slices"
)

// State is a value of a status field.
type State string

// Operation is the name of a transition, for example "mark_gazetted".
type Operation string

// Record is anything that carries a workflow status.
type Record interface {
	// RecordKind returns the type name used in audit entries.
	RecordKind() string

	// RecordID returns the primary key, 0 for records not saved yet.
	RecordID() uint

	// CurrentState returns the status of the record.
	CurrentState() State

	// SetState changes the status in memory.
	SetState(State)
}

// Gate is an extra precondition evaluated after the source state check.
// It receives the record in its source state and the acting user.
type Gate func(rec Record, actor string) bool

// AllowAll is the default Gate.
func AllowAll(Record, string) bool { return true }

// Transition describes one operation of a Table.
type Transition struct {
	// Operation is the unique name of the transition.
	Operation Operation

	// Sources are the legal source states. Empty means any state.
	Sources []State

	// Target is the state after a successful transition.
	Target State

	// Gate is evaluated after the source check. Nil means AllowAll.
	Gate Gate
}

// FromAny is true when the transition is legal from every state.
func (t Transition) FromAny() bool {
	return len(t.Sources) == 0
}

// Allows reports whether the transition may start from the given state.
func (t Transition) Allows(from State) bool {
	if t.FromAny() {
		return true
	}
	return slices.Contains(t.Sources, from)
}

func (t Transition) gate() Gate {
	if t.Gate == nil {
		return AllowAll
	}
	return t.Gate
}

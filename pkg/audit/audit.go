// Package audit defines the append-only log of state transitions.
//
// The log is owned by this package and consumed by the state machines in
// pkg/fsm: every successful transition appends exactly one Entry, failed
// transitions append nothing. Entries are never updated or removed.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is a single record of a state change.
type Entry struct {
	// ID uniquely identifies the entry.
	ID uuid.UUID `json:"id"`

	// Kind is the type of the record that changed state,
	// for example "taxon-gazettal" or "encounter".
	Kind string `json:"kind"`

	// RecordID is the primary key of the record.
	RecordID uint `json:"recordId"`

	// Actor is the user who requested the transition. Can be empty
	// for system-initiated changes.
	Actor string `json:"actor,omitempty"`

	// Source is the state before the transition.
	Source string `json:"source"`

	// Target is the state after the transition.
	Target string `json:"target"`

	// Operation is the name of the transition, e.g. "mark_gazetted".
	Operation string `json:"operation"`

	// Timestamp is when the transition happened (UTC).
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry creates an Entry with a fresh ID and the current UTC time.
func NewEntry(
	kind string,
	id uint,
	actor, source, target, operation string,
) Entry {
	return Entry{
		ID:        uuid.New(),
		Kind:      kind,
		RecordID:  id,
		Actor:     actor,
		Source:    source,
		Target:    target,
		Operation: operation,
		Timestamp: time.Now().UTC(),
	}
}

// Sink receives audit entries. Implementations must only append.
type Sink interface {
	// Record appends an entry to the log.
	Record(ctx context.Context, e Entry) error
}

// Reader gives read access to the log of a record.
type Reader interface {
	// History returns entries of the record identified by kind and id,
	// oldest first.
	History(ctx context.Context, kind string, id uint) ([]Entry, error)
}

// Log combines Sink and Reader.
type Log interface {
	Sink
	Reader
}

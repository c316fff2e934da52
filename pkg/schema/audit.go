package schema

import (
	"time"

	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/google/uuid"
)

// StateTransition is one row of the audit log. Rows are only inserted.
type StateTransition struct {
	// ID keeps insertion order.
	ID        uint      `gorm:"primaryKey"`
	UUID      string    `gorm:"size:36;not null;uniqueIndex"`
	Kind      string    `gorm:"size:64;not null;index:idx_transition_record"`
	RecordID  uint      `gorm:"not null;index:idx_transition_record"`
	Actor     string    `gorm:"size:255;not null"`
	Source    string    `gorm:"size:32;not null"`
	Target    string    `gorm:"size:32;not null"`
	Operation string    `gorm:"size:64;not null"`
	Timestamp time.Time `gorm:"not null"`
}

// NewStateTransition converts an audit entry to a row.
func NewStateTransition(e audit.Entry) *StateTransition {
	return &StateTransition{
		UUID:      e.ID.String(),
		Kind:      e.Kind,
		RecordID:  e.RecordID,
		Actor:     e.Actor,
		Source:    e.Source,
		Target:    e.Target,
		Operation: e.Operation,
		Timestamp: e.Timestamp,
	}
}

// Entry converts the row back to an audit entry.
func (st StateTransition) Entry() audit.Entry {
	id, _ := uuid.Parse(st.UUID)
	return audit.Entry{
		ID:        id,
		Kind:      st.Kind,
		RecordID:  st.RecordID,
		Actor:     st.Actor,
		Source:    st.Source,
		Target:    st.Target,
		Operation: st.Operation,
		Timestamp: st.Timestamp.UTC(),
	}
}

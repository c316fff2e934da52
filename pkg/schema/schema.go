// Package schema provides GORM models of WAStD: conservation reference data,
// taxa and communities, gazettals, quality-controlled records and the
// state transition audit table.
package schema

import (
	"time"

	"github.com/dbca-wa/wastd/pkg/fsm"
	"gorm.io/gorm"
)

// Tracked is embedded by every model that follows a workflow.
type Tracked struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Status is the current workflow state. It is changed only by
	// transitions.
	Status string `gorm:"size:32;not null;index" json:"status"`

	// Version is incremented on every save and used for optimistic
	// concurrency control.
	Version int `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID implements fsm.Record.
func (t *Tracked) RecordID() uint {
	return t.ID
}

// CurrentState implements fsm.Record.
func (t *Tracked) CurrentState() fsm.State {
	return fsm.State(t.Status)
}

// SetState implements fsm.Record.
func (t *Tracked) SetState(s fsm.State) {
	t.Status = string(s)
}

// Tracking gives access to the tracked fields of an embedding model.
func (t *Tracked) Tracking() *Tracked {
	return t
}

// Stored is a workflow record with tracked fields.
type Stored interface {
	fsm.Record
	Tracking() *Tracked
}

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&ConservationList{},
		&ConservationCategory{},
		&ConservationCriterion{},
		&Taxon{},
		&Community{},
		&TaxonGazettal{},
		&CommunityGazettal{},
		&Encounter{},
		&ConservationThreat{},
		&StateTransition{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

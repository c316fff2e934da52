package schema

import (
	"time"

	"github.com/dbca-wa/wastd/pkg/qa"
)

// Kinds of quality-controlled records.
const (
	KindEncounter = "encounter"
	KindThreat    = "threat"
)

// Encounter is a field observation of a taxon. Its status follows the
// quality control workflow.
type Encounter struct {
	Tracked
	TaxonID    *uint     `gorm:"index" json:"taxon_id,omitempty"`
	Taxon      *Taxon    `json:"taxon,omitempty"`
	Observer   string    `gorm:"size:500" json:"observer"`
	ObservedAt time.Time `json:"observed_at"`
	Where      string    `gorm:"column:where_text;type:text" json:"where"`
}

// NewEncounter creates an unsaved encounter in the initial state.
func NewEncounter(observer string, at time.Time) *Encounter {
	res := &Encounter{Observer: observer, ObservedAt: at}
	res.Status = string(qa.QualityControl.Initial())
	return res
}

func (*Encounter) RecordKind() string { return KindEncounter }

// ConservationThreat is a threat affecting a taxon or a community.
// Its status follows the curation workflow.
type ConservationThreat struct {
	Tracked
	TaxonID     *uint  `gorm:"index" json:"taxon_id,omitempty"`
	CommunityID *uint  `gorm:"index" json:"community_id,omitempty"`
	Category    string `gorm:"size:500" json:"category"`
	Description string `gorm:"type:text" json:"description"`
}

// NewConservationThreat creates an unsaved threat in the initial state.
func NewConservationThreat(category, description string) *ConservationThreat {
	res := &ConservationThreat{Category: category, Description: description}
	res.Status = string(qa.Curation.Initial())
	return res
}

func (*ConservationThreat) RecordKind() string { return KindThreat }

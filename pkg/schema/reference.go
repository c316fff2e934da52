package schema

import (
	"time"
)

// ConservationList is a conservation regime such as the WA Wildlife
// Conservation Act, the EPBC Act or the IUCN Red List.
type ConservationList struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Label       string `gorm:"size:500" json:"label"`
	Description string `gorm:"type:text" json:"description"`

	ScopeWA          bool `gorm:"column:scope_wa" json:"scope_wa"`
	ScopeCMW         bool `gorm:"column:scope_cmw" json:"scope_cmw"`
	ScopeIntl        bool `gorm:"column:scope_intl" json:"scope_intl"`
	ScopeSpecies     bool `json:"scope_species"`
	ScopeCommunities bool `json:"scope_communities"`

	ActiveFrom *time.Time `json:"active_from,omitempty"`
	ActiveTo   *time.Time `json:"active_to,omitempty"`

	Categories []ConservationCategory  `json:"categories,omitempty"`
	Criteria   []ConservationCriterion `json:"criteria,omitempty"`
}

// IsActive reports whether the list is in force at the given time.
// Open ends of the range are unbounded.
func (l ConservationList) IsActive(at time.Time) bool {
	if l.ActiveFrom != nil && at.Before(*l.ActiveFrom) {
		return false
	}
	if l.ActiveTo != nil && at.After(*l.ActiveTo) {
		return false
	}
	return true
}

// ConservationCategory is a status code within one list, for example
// "CR" (critically endangered).
type ConservationCategory struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	ConservationListID uint              `gorm:"not null;uniqueIndex:idx_category_list_code" json:"conservation_list_id"`
	ConservationList   *ConservationList `json:"-"`
	Code               string            `gorm:"size:64;not null;uniqueIndex:idx_category_list_code" json:"code"`
	Label              string            `gorm:"size:500" json:"label"`
	Description        string            `gorm:"type:text" json:"description"`

	// Position orders categories within a list.
	Position int `gorm:"not null;default:0" json:"position"`
}

func (ConservationCategory) TableName() string {
	return "conservation_categories"
}

// String returns "[list-code] code". The list must be loaded.
func (c ConservationCategory) String() string {
	return refString(c.ConservationList, c.Code)
}

// ConservationCriterion is a justification code within one list,
// for example "A4a".
type ConservationCriterion struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	ConservationListID uint              `gorm:"not null;uniqueIndex:idx_criterion_list_code" json:"conservation_list_id"`
	ConservationList   *ConservationList `json:"-"`
	Code               string            `gorm:"size:64;not null;uniqueIndex:idx_criterion_list_code" json:"code"`
	Label              string            `gorm:"size:500" json:"label"`
	Description        string            `gorm:"type:text" json:"description"`
	Position           int               `gorm:"not null;default:0" json:"position"`
}

// TableName is set explicitly, GORM would pluralize to "criterions".
func (ConservationCriterion) TableName() string {
	return "conservation_criteria"
}

// String returns "[list-code] code". The list must be loaded.
func (c ConservationCriterion) String() string {
	return refString(c.ConservationList, c.Code)
}

func refString(l *ConservationList, code string) string {
	if l == nil {
		return code
	}
	return "[" + l.Code + "] " + code
}

// Taxon is a name from the WA census of species.
type Taxon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// NameID is the WACensus identifier of the name.
	NameID int `gorm:"not null;uniqueIndex" json:"name_id"`

	// Name is the full scientific name with authorship.
	Name string `gorm:"size:1000;not null" json:"name"`

	// Canonical is the name without authorship and ranks.
	Canonical  string `gorm:"size:1000;index" json:"canonical"`
	Authorship string `gorm:"size:1000" json:"authorship"`

	// NameUUID is the UUID v5 of Name.
	NameUUID string `gorm:"size:36;index" json:"name_uuid"`

	// Code is the nomenclatural code, "botanical" or "zoological".
	Code string `gorm:"size:32" json:"code"`

	Vernacular string `gorm:"size:1000" json:"vernacular,omitempty"`
}

func (Taxon) TableName() string {
	return "taxa"
}

// Community is a threatened ecological community.
type Community struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:500;not null;uniqueIndex" json:"code"`
	Name        string `gorm:"size:1000" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Community) TableName() string {
	return "communities"
}

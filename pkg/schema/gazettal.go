package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gazettal is the common part of taxon and community gazettals.
// It is never stored on its own.
type Gazettal struct {
	Tracked

	ProposedOn    *time.Time `json:"proposed_on,omitempty"`
	GazettedOn    *time.Time `json:"gazetted_on,omitempty"`
	DeactivatedOn *time.Time `json:"deactivated_on,omitempty"`
	ReviewDue     *time.Time `json:"review_due,omitempty"`

	// Comments is an append-only approval log.
	Comments string `gorm:"type:text" json:"comments"`

	// Caches are derived from categories and criteria on every save of
	// a stored record.
	CategoryCache string `gorm:"type:text" json:"category_cache"`
	CriteriaCache string `gorm:"type:text" json:"criteria_cache"`
	LabelCache    string `gorm:"type:text" json:"label_cache"`
}

// AppendComment adds a line to the approval log. Existing text is never
// changed.
func (g *Gazettal) AppendComment(actor, text string, at time.Time) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	line := fmt.Sprintf("[%s %s] %s",
		at.UTC().Format(time.DateTime), actor, text)
	if g.Comments == "" {
		g.Comments = line
		return
	}
	g.Comments += "\n" + line
}

// StampMilestone records when the gazettal reached a milestone state.
// Reaching gazetted again clears an earlier deactivation date.
func (g *Gazettal) StampMilestone(s fsm.State, at time.Time) {
	at = at.UTC()
	switch s {
	case gazettal.Gazetted:
		g.GazettedOn = &at
		g.DeactivatedOn = nil
	case gazettal.Inactive:
		g.DeactivatedOn = &at
	}
}

// Cache returns the current values of the cache fields.
func (g *Gazettal) Cache() gazettal.Cache {
	return gazettal.Cache{
		Category: g.CategoryCache,
		Criteria: g.CriteriaCache,
		Label:    g.LabelCache,
	}
}

func (g *Gazettal) setCache(c gazettal.Cache) {
	g.CategoryCache = c.Category
	g.CriteriaCache = c.Criteria
	g.LabelCache = c.Label
}

// Relations names tables and columns of a gazettal subtype.
type Relations struct {
	// Table is the table of the gazettal subtype.
	Table string

	// Subject is the column holding the taxon or community.
	Subject string

	// Owner is the column referring to the gazettal in join tables.
	Owner string

	// Categories and Criteria are the join tables.
	Categories string
	Criteria   string
}

// Columns of join tables referring to reference data.
const (
	CategoryColumn  = "conservation_category_id"
	CriterionColumn = "conservation_criterion_id"
)

// GazettalRecord is implemented by TaxonGazettal and CommunityGazettal.
type GazettalRecord interface {
	Stored

	// Base gives access to the common fields.
	Base() *Gazettal

	// SubjectID returns the taxon or community the gazettal is about.
	SubjectID() uint

	// Relations describes where the record and its relations are stored.
	Relations() Relations
}

// TaxonGazettal assigns conservation status to a taxon.
type TaxonGazettal struct {
	Gazettal
	TaxonID    uint                    `gorm:"not null;index" json:"taxon_id"`
	Taxon      *Taxon                  `json:"taxon,omitempty"`
	Categories []ConservationCategory  `gorm:"many2many:taxon_gazettal_categories;joinForeignKey:TaxonGazettalID;joinReferences:ConservationCategoryID" json:"categories,omitempty"`
	Criteria   []ConservationCriterion `gorm:"many2many:taxon_gazettal_criteria;joinForeignKey:TaxonGazettalID;joinReferences:ConservationCriterionID" json:"criteria,omitempty"`
}

var taxonRelations = Relations{
	Table:      "taxon_gazettals",
	Subject:    "taxon_id",
	Owner:      "taxon_gazettal_id",
	Categories: "taxon_gazettal_categories",
	Criteria:   "taxon_gazettal_criteria",
}

// NewTaxonGazettal creates an unsaved gazettal in the initial state.
func NewTaxonGazettal(taxonID uint) *TaxonGazettal {
	res := &TaxonGazettal{TaxonID: taxonID}
	res.Status = string(gazettal.Table.Initial())
	return res
}

func (*TaxonGazettal) RecordKind() string   { return gazettal.KindTaxon }
func (g *TaxonGazettal) Base() *Gazettal    { return &g.Gazettal }
func (g *TaxonGazettal) SubjectID() uint    { return g.TaxonID }
func (*TaxonGazettal) Relations() Relations { return taxonRelations }

// BeforeSave refreshes the caches.
func (g *TaxonGazettal) BeforeSave(tx *gorm.DB) error {
	return recache(tx, g)
}

// AfterSave refreshes the caches again when GORM wrote the relations
// attached to the model during this save.
func (g *TaxonGazettal) AfterSave(tx *gorm.DB) error {
	if !savesRelations(tx, len(g.Categories) > 0 || len(g.Criteria) > 0) {
		return nil
	}
	return recacheStored(tx, g)
}

// CommunityGazettal assigns conservation status to an ecological
// community.
type CommunityGazettal struct {
	Gazettal
	CommunityID uint                    `gorm:"not null;index" json:"community_id"`
	Community   *Community              `json:"community,omitempty"`
	Categories  []ConservationCategory  `gorm:"many2many:community_gazettal_categories;joinForeignKey:CommunityGazettalID;joinReferences:ConservationCategoryID" json:"categories,omitempty"`
	Criteria    []ConservationCriterion `gorm:"many2many:community_gazettal_criteria;joinForeignKey:CommunityGazettalID;joinReferences:ConservationCriterionID" json:"criteria,omitempty"`
}

var communityRelations = Relations{
	Table:      "community_gazettals",
	Subject:    "community_id",
	Owner:      "community_gazettal_id",
	Categories: "community_gazettal_categories",
	Criteria:   "community_gazettal_criteria",
}

// NewCommunityGazettal creates an unsaved gazettal in the initial state.
func NewCommunityGazettal(communityID uint) *CommunityGazettal {
	res := &CommunityGazettal{CommunityID: communityID}
	res.Status = string(gazettal.Table.Initial())
	return res
}

func (*CommunityGazettal) RecordKind() string   { return gazettal.KindCommunity }
func (g *CommunityGazettal) Base() *Gazettal    { return &g.Gazettal }
func (g *CommunityGazettal) SubjectID() uint    { return g.CommunityID }
func (*CommunityGazettal) Relations() Relations { return communityRelations }

// BeforeSave refreshes the caches.
func (g *CommunityGazettal) BeforeSave(tx *gorm.DB) error {
	return recache(tx, g)
}

// AfterSave refreshes the caches again when GORM wrote the relations
// attached to the model during this save.
func (g *CommunityGazettal) AfterSave(tx *gorm.DB) error {
	if !savesRelations(tx, len(g.Categories) > 0 || len(g.Criteria) > 0) {
		return nil
	}
	return recacheStored(tx, g)
}

// recache recomputes caches of a stored gazettal from its join tables.
// Records without identity cannot have relations and are skipped.
// A failed query aborts the save.
func recache(tx *gorm.DB, rec GazettalRecord) error {
	id := rec.RecordID()
	if id == 0 {
		return nil
	}

	cats, crits, err := LoadRelations(tx, rec.Relations(), id)
	if err != nil {
		return CacheRecomputeError(rec.RecordKind(), id, err)
	}

	c := gazettal.ComputeCache(cats, crits)
	rec.Base().setCache(c)
	if tx.Statement != nil && tx.Statement.Schema != nil {
		tx.Statement.SetColumn("category_cache", c.Category, true)
		tx.Statement.SetColumn("criteria_cache", c.Criteria, true)
		tx.Statement.SetColumn("label_cache", c.Label, true)
	}
	return nil
}

// savesRelations reports whether the statement wrote many2many rows of
// the record: relations are attached and associations are not omitted.
func savesRelations(tx *gorm.DB, attached bool) bool {
	if !attached || tx.Statement == nil {
		return false
	}
	omitted := 0
	for _, v := range tx.Statement.Omits {
		switch v {
		case clause.Associations:
			return false
		case "Categories", "Criteria":
			omitted++
		}
	}
	return omitted < 2
}

// recacheStored recomputes caches after join rows were written and stores
// them with an update that bypasses hooks.
func recacheStored(tx *gorm.DB, rec GazettalRecord) error {
	id := rec.RecordID()
	if id == 0 {
		return nil
	}

	cats, crits, err := LoadRelations(tx, rec.Relations(), id)
	if err != nil {
		return CacheRecomputeError(rec.RecordKind(), id, err)
	}

	c := gazettal.ComputeCache(cats, crits)
	if c == rec.Base().Cache() {
		return nil
	}
	rec.Base().setCache(c)

	err = tx.Session(&gorm.Session{NewDB: true}).
		Table(rec.Relations().Table).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"category_cache": c.Category,
			"criteria_cache": c.Criteria,
			"label_cache":    c.Label,
		}).Error
	if err != nil {
		return CacheRecomputeError(rec.RecordKind(), id, err)
	}
	return nil
}

// LoadRelations reads categories and criteria of a gazettal with their
// lists. Results are ordered by list, position and code.
func LoadRelations(
	tx *gorm.DB,
	rel Relations,
	id uint,
) ([]ConservationCategory, []ConservationCriterion, error) {
	var cats []ConservationCategory
	err := loadRefs(tx, rel.Categories, rel.Owner, CategoryColumn,
		"conservation_categories", id, &cats)
	if err != nil {
		return nil, nil, err
	}

	var crits []ConservationCriterion
	err = loadRefs(tx, rel.Criteria, rel.Owner, CriterionColumn,
		"conservation_criteria", id, &crits)
	if err != nil {
		return nil, nil, err
	}
	return cats, crits, nil
}

func loadRefs(
	tx *gorm.DB,
	join, owner, ref, table string,
	id uint,
	dest any,
) error {
	on := fmt.Sprintf("JOIN %s ON %s.%s = %s.id", join, join, ref, table)
	return tx.Session(&gorm.Session{NewDB: true}).
		Preload("ConservationList").
		Joins(on).
		Where(join+"."+owner+" = ?", id).
		Order(table + ".conservation_list_id").
		Order(table + ".position").
		Order(table + ".code").
		Find(dest).Error
}

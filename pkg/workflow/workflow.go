// Package workflow defines the service that moves stored records through
// their state machines.
//
// Every call of Transition loads the record, fires the operation, writes
// the audit entry, applies the gazettal cascade and saves the record in
// one database transaction. Saves compare the version of the record and
// fail with a ConcurrentModification error when another writer changed it
// in the meantime.
package workflow

import (
	"context"
	"slices"
	"time"

	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/qa"
	"github.com/dbca-wa/wastd/pkg/schema"
)

// Kinds of records that follow a workflow.
const (
	KindTaxonGazettal     = gazettal.KindTaxon
	KindCommunityGazettal = gazettal.KindCommunity
	KindEncounter         = schema.KindEncounter
	KindThreat            = schema.KindThreat
)

// Kinds lists all supported kinds.
var Kinds = []string{
	KindTaxonGazettal,
	KindCommunityGazettal,
	KindEncounter,
	KindThreat,
}

// IsKind reports whether kind is supported.
func IsKind(kind string) bool {
	return slices.Contains(Kinds, kind)
}

// IsGazettalKind reports whether kind is a gazettal subtype.
func IsGazettalKind(kind string) bool {
	return kind == KindTaxonGazettal || kind == KindCommunityGazettal
}

// DefaultTables returns the transition table of every kind without gates.
func DefaultTables() map[string]*fsm.Table {
	return map[string]*fsm.Table{
		KindTaxonGazettal:     gazettal.Table,
		KindCommunityGazettal: gazettal.Table,
		KindEncounter:         qa.QualityControl,
		KindThreat:            qa.Curation,
	}
}

// Label returns a human-readable name of a state.
func Label(kind string, s fsm.State) string {
	if IsGazettalKind(kind) {
		return gazettal.Label(s)
	}
	return string(s)
}

// Outcome is the result of a successful transition.
type Outcome struct {
	Kind    string    `json:"kind"`
	ID      uint      `json:"id"`
	State   fsm.State `json:"state"`
	Version int       `json:"version"`

	// Entry is the audit entry of the transition.
	Entry audit.Entry `json:"entry"`

	// Deactivated holds audit entries of gazettals moved to inactive by
	// the cascade.
	Deactivated []audit.Entry `json:"deactivated,omitempty"`
}

// Status describes where a record is and where it can go.
type Status struct {
	Kind       string          `json:"kind"`
	ID         uint            `json:"id"`
	State      fsm.State       `json:"state"`
	Label      string          `json:"label"`
	Operations []fsm.Operation `json:"operations"`
}

// GazettalInput describes a new gazettal.
type GazettalInput struct {
	// SubjectID is the taxon or community.
	SubjectID uint `json:"subject_id" validate:"required"`

	CategoryIDs  []uint `json:"category_ids"`
	CriterionIDs []uint `json:"criterion_ids"`

	ProposedOn *time.Time `json:"proposed_on"`
	ReviewDue  *time.Time `json:"review_due"`

	Actor   string `json:"actor" validate:"max=255"`
	Comment string `json:"comment" validate:"max=10000"`
}

// Service moves records through their workflows.
type Service interface {
	// Transition executes op on the record in one transaction.
	Transition(
		ctx context.Context,
		kind string,
		id uint,
		op fsm.Operation,
		actor string,
	) (*Outcome, error)

	// Available returns the state of the record and operations legal
	// from it.
	Available(ctx context.Context, kind string, id uint) (*Status, error)

	// History returns audit entries of the record, oldest first.
	History(ctx context.Context, kind string, id uint) ([]audit.Entry, error)

	// Gazettal loads a gazettal with its subject and relations.
	Gazettal(
		ctx context.Context,
		kind string,
		id uint,
	) (schema.GazettalRecord, error)

	// CreateTaxonGazettal inserts a gazettal, attaches its relations and
	// saves it again so caches are populated, all in one transaction.
	CreateTaxonGazettal(
		ctx context.Context,
		in GazettalInput,
	) (*schema.TaxonGazettal, error)

	// CreateCommunityGazettal is CreateTaxonGazettal for communities.
	CreateCommunityGazettal(
		ctx context.Context,
		in GazettalInput,
	) (*schema.CommunityGazettal, error)

	// SetRelations replaces categories and criteria of a gazettal and
	// refreshes its caches.
	SetRelations(
		ctx context.Context,
		kind string,
		id uint,
		categoryIDs, criterionIDs []uint,
	) (schema.GazettalRecord, error)

	// Comment appends a line to the approval log of a gazettal.
	Comment(
		ctx context.Context,
		kind string,
		id uint,
		actor, text string,
	) (schema.GazettalRecord, error)

	// Recache recomputes caches of all gazettals. Returns the number of
	// processed records.
	Recache(ctx context.Context) (int, error)
}

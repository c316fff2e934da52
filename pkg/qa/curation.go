package qa

import "github.com/dbca-wa/wastd/pkg/fsm"

// Curation states that are not part of quality control.
const (
	Imported    fsm.State = "imported"
	ManualInput fsm.State = "manual_input"
)

// CurationStates lists curation states. New, Curated, Flagged and Rejected
// are shared with quality control.
var CurationStates = []fsm.State{
	New, Imported, ManualInput, Curated, Flagged, Rejected,
}

// Curation is the curation workflow with all gates open.
var Curation = NewCuration(nil)

// NewCuration builds the curation workflow with the given gates.
func NewCuration(gates map[fsm.Operation]fsm.Gate) *fsm.Table {
	tr := transitionFunc(gates)
	return fsm.MustTable("curation", New, CurationStates,
		[]fsm.Transition{
			tr(OpCurate, Curated, New, Imported, ManualInput, Flagged),
			tr(OpFlag, Flagged, New, Imported, ManualInput, Curated),
			tr(OpReject, Rejected,
				New, Imported, ManualInput, Curated, Flagged),
			tr(OpReset, New, Rejected),
		})
}

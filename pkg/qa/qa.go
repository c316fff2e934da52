// Package qa declares the review workflows of field-collected records.
//
// QualityControl decides whether an observation is trustworthy enough to
// be published. Curation is the variant used for records that are imported
// from legacy systems or entered manually. Both are fsm tables.
package qa

import "github.com/dbca-wa/wastd/pkg/fsm"

// Quality control states.
const (
	New       fsm.State = "new"
	Proofread fsm.State = "proofread"
	Curated   fsm.State = "curated"
	Published fsm.State = "published"
	Flagged   fsm.State = "flagged"
	Rejected  fsm.State = "rejected"
)

// Quality control operations.
const (
	OpProofread           fsm.Operation = "proofread"
	OpRequireProofreading fsm.Operation = "require_proofreading"
	OpCurate              fsm.Operation = "curate"
	OpFlag                fsm.Operation = "flag"
	OpReject              fsm.Operation = "reject"
	OpReset               fsm.Operation = "reset"
	OpPublish             fsm.Operation = "publish"
	OpEmbargo             fsm.Operation = "embargo"
)

// QualityControlStates lists quality control states.
var QualityControlStates = []fsm.State{
	New, Proofread, Curated, Published, Flagged, Rejected,
}

// QualityControl is the quality control workflow with all gates open.
var QualityControl = NewQualityControl(nil)

// NewQualityControl builds the quality control workflow with the given
// gates.
func NewQualityControl(gates map[fsm.Operation]fsm.Gate) *fsm.Table {
	tr := transitionFunc(gates)
	return fsm.MustTable("quality-control", New, QualityControlStates,
		[]fsm.Transition{
			tr(OpProofread, Proofread, New),
			tr(OpRequireProofreading, New, Proofread),
			tr(OpCurate, Curated, New, Proofread, Flagged),
			tr(OpFlag, Flagged, Curated),
			tr(OpReject, Rejected, Proofread, Curated, Flagged),
			tr(OpReset, New, Rejected),
			tr(OpPublish, Published, Curated),
			tr(OpEmbargo, Curated, Published),
		})
}

func transitionFunc(
	gates map[fsm.Operation]fsm.Gate,
) func(fsm.Operation, fsm.State, ...fsm.State) fsm.Transition {
	return func(
		op fsm.Operation,
		target fsm.State,
		sources ...fsm.State,
	) fsm.Transition {
		return fsm.Transition{
			Operation: op,
			Sources:   sources,
			Target:    target,
			Gate:      gates[op],
		}
	}
}

// Package gazettal declares the approval workflow of conservation status
// listings (gazettals) of taxa and ecological communities.
//
// Early review stages are optional: a proposal may skip expert and public
// review and go straight to panel review. Once panel review is entered,
// branch manager, director, director general and minister reviews follow
// strictly in order. RecallToProposed and MarkGazetted are legal from any
// state.
package gazettal

import "github.com/dbca-wa/wastd/pkg/fsm"

// Kinds of gazettal records, used in audit entries.
const (
	KindTaxon     = "taxon-gazettal"
	KindCommunity = "community-gazettal"
)

// Approval states, ordered by approval depth.
const (
	Proposed       fsm.State = "proposed"
	InExpertReview fsm.State = "in_expert_review"
	InPublicReview fsm.State = "in_public_review"
	InPanelReview  fsm.State = "in_panel_review"
	InBMReview     fsm.State = "in_bm_review"
	InDirReview    fsm.State = "in_dir_review"
	InDGReview     fsm.State = "in_dg_review"
	InMinReview    fsm.State = "in_min_review"
	Gazetted       fsm.State = "gazetted"
	Inactive       fsm.State = "inactive"
)

// Operations of the approval workflow.
const (
	RecallToProposed               fsm.Operation = "recall_to_proposed"
	SubmitForExpertReview          fsm.Operation = "submit_for_expert_review"
	SubmitForPublicReview          fsm.Operation = "submit_for_public_review"
	SubmitForPanelReview           fsm.Operation = "submit_for_panel_review"
	SubmitForBMReview              fsm.Operation = "submit_for_bm_review"
	SubmitForDirectorReview        fsm.Operation = "submit_for_director_review"
	SubmitForDirectorGeneralReview fsm.Operation = "submit_for_director_general_review"
	SubmitForMinisterReview        fsm.Operation = "submit_for_minister_review"
	MarkGazetted                   fsm.Operation = "mark_gazetted"
	MarkInactive                   fsm.Operation = "mark_inactive"
)

// States lists all approval states in approval order.
var States = []fsm.State{
	Proposed,
	InExpertReview,
	InPublicReview,
	InPanelReview,
	InBMReview,
	InDirReview,
	InDGReview,
	InMinReview,
	Gazetted,
	Inactive,
}

var labels = map[fsm.State]string{
	Proposed:       "Proposed",
	InExpertReview: "In review with experts",
	InPublicReview: "In review with public",
	InPanelReview:  "In review with panel",
	InBMReview:     "In review with Branch Manager",
	InDirReview:    "In review with Division Director",
	InDGReview:     "In review with Director General",
	InMinReview:    "In review with Minister",
	Gazetted:       "Gazetted",
	Inactive:       "Inactive",
}

// Label returns the human readable name of a state.
func Label(s fsm.State) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Table is the approval workflow with all gates open.
var Table = NewTable(nil)

// NewTable builds the approval workflow. Gates are looked up by operation,
// operations without a gate always pass the gate check.
func NewTable(gates map[fsm.Operation]fsm.Gate) *fsm.Table {
	tr := func(op fsm.Operation, target fsm.State, sources ...fsm.State) fsm.Transition {
		return fsm.Transition{
			Operation: op,
			Sources:   sources,
			Target:    target,
			Gate:      gates[op],
		}
	}

	return fsm.MustTable("gazettal", Proposed, States, []fsm.Transition{
		tr(RecallToProposed, Proposed),
		tr(SubmitForExpertReview, InExpertReview, Proposed),
		tr(SubmitForPublicReview, InPublicReview,
			Proposed, InExpertReview),
		tr(SubmitForPanelReview, InPanelReview,
			Proposed, InExpertReview, InPublicReview),
		tr(SubmitForBMReview, InBMReview, InPanelReview),
		tr(SubmitForDirectorReview, InDirReview, InBMReview),
		tr(SubmitForDirectorGeneralReview, InDGReview, InDirReview),
		tr(SubmitForMinisterReview, InMinReview, InDGReview),
		tr(MarkGazetted, Gazetted),
		tr(MarkInactive, Inactive, Gazetted),
	})
}

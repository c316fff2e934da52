package workflow_test

import (
	"testing"

	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/qa"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	for _, k := range workflow.Kinds {
		assert.True(t, workflow.IsKind(k), k)
	}
	assert.False(t, workflow.IsKind("occurrence"))
	assert.True(t, workflow.IsGazettalKind("taxon-gazettal"))
	assert.False(t, workflow.IsGazettalKind("encounter"))
}

func TestDefaultTables(t *testing.T) {
	tbls := workflow.DefaultTables()
	assert.Len(t, tbls, len(workflow.Kinds))
	assert.Same(t, gazettal.Table, tbls[workflow.KindTaxonGazettal])
	assert.Same(t, gazettal.Table, tbls[workflow.KindCommunityGazettal])
	assert.Same(t, qa.QualityControl, tbls[workflow.KindEncounter])
	assert.Same(t, qa.Curation, tbls[workflow.KindThreat])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, gazettal.Label(gazettal.InPanelReview),
		workflow.Label(workflow.KindTaxonGazettal, gazettal.InPanelReview))
	assert.Equal(t, "curated", workflow.Label(workflow.KindThreat, qa.Curated))
}

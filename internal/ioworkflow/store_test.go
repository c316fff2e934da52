package ioworkflow

import (
	"testing"

	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveVersion(t *testing.T) {
	gdb := iotesting.SQLite(t).GORM()
	fix := iotesting.Seed(t, gdb)

	rec := schema.NewTaxonGazettal(fix.Taxon.ID)
	require.NoError(t, gdb.Omit("Categories", "Criteria", "Taxon").
		Create(rec).Error)
	assert.Equal(t, 0, rec.Version)

	require.NoError(t, save(gdb, rec, 0))
	assert.Equal(t, 1, rec.Version)

	stale, err := load(gdb, workflow.KindTaxonGazettal, rec.ID)
	require.NoError(t, err)

	rec.SetState(gazettal.InExpertReview)
	require.NoError(t, save(gdb, rec, 1))

	stale.SetState(gazettal.InPublicReview)
	err = save(gdb, stale, 1)
	assert.True(t, workflow.IsConcurrentModification(err))
	assert.Equal(t, 1, stale.Tracking().Version)

	fresh, err := load(gdb, workflow.KindTaxonGazettal, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, gazettal.InExpertReview, fresh.CurrentState())
	assert.Equal(t, 2, fresh.Tracking().Version)
}

func TestReplaceRelations(t *testing.T) {
	gdb := iotesting.SQLite(t).GORM()
	fix := iotesting.Seed(t, gdb)

	rec := schema.NewCommunityGazettal(fix.Community.ID)
	require.NoError(t, gdb.Omit("Categories", "Criteria", "Community").
		Create(rec).Error)

	err := replaceRelations(gdb, rec,
		[]uint{fix.VU.ID, fix.CR.ID, fix.CR.ID}, []uint{fix.B1.ID})
	require.NoError(t, err)

	cats, crits, err := schema.LoadRelations(gdb, rec.Relations(), rec.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "CR", cats[0].Code)
	assert.Len(t, crits, 1)

	err = replaceRelations(gdb, rec, nil, []uint{fix.A4a.ID, 999})
	assert.True(t, errcode.Has(err, errcode.RelationsError))

	err = replaceRelations(gdb, rec, nil, nil)
	require.NoError(t, err)
	cats, crits, err = schema.LoadRelations(gdb, rec.Relations(), rec.ID)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Empty(t, crits)
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []uint{1, 2, 3}, uniq([]uint{3, 1, 2, 3, 1}))
	assert.Empty(t, uniq(nil))
}

package ioaudit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dbca-wa/wastd/internal/ioaudit"
	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLog(t *testing.T) {
	ctx := context.Background()
	gdb := iotesting.SQLite(t).GORM()
	log := ioaudit.New(gdb)

	entries := []audit.Entry{
		audit.NewEntry("taxon-gazettal", 1, "alice",
			"proposed", "in_panel_review", "submit_for_panel_review"),
		audit.NewEntry("taxon-gazettal", 2, "alice",
			"proposed", "in_expert_review", "submit_for_expert_review"),
		audit.NewEntry("taxon-gazettal", 1, "bob",
			"in_panel_review", "in_bm_review", "submit_for_bm_review"),
		audit.NewEntry("encounter", 1, "qa", "new", "proofread", "proofread"),
	}
	for _, e := range entries {
		require.NoError(t, log.Record(ctx, e))
	}

	hist, err := log.History(ctx, "taxon-gazettal", 1)
	require.NoError(t, err)
	assert.Equal(t, []audit.Entry{entries[0], entries[2]}, hist)

	hist, err = log.History(ctx, "community-gazettal", 1)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestLogRollback(t *testing.T) {
	ctx := context.Background()
	gdb := iotesting.SQLite(t).GORM()

	boom := errors.New("boom")
	err := gdb.Transaction(func(tx *gorm.DB) error {
		e := audit.NewEntry("encounter", 7, "qa", "new", "curated", "curate")
		require.NoError(t, ioaudit.New(tx).Record(ctx, e))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	hist, err := ioaudit.New(gdb).History(ctx, "encounter", 7)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

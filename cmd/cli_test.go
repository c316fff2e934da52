package cmd

import (
	"context"
	"testing"

	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI runs the commands against an SQLite database in a temporary
// home directory.
func TestCLI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WASTD_DATABASE_DRIVER", "sqlite")
	t.Setenv("WASTD_LOG_DESTINATION", "file")
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	steps := [][]string{
		{"create", "--force", "--seed", "../internal/ioseed/testdata/seed.yaml"},
		{"seed", "../internal/ioseed/testdata/seed.yaml"},
		{"gazettal", "create", "--taxon", "1", "--category", "1",
			"--criterion", "1", "--actor", "alice", "--comment", "proposed"},
		{"transition", "taxon-gazettal", "1", "submit_for_panel_review",
			"--actor", "alice"},
		{"comment", "taxon-gazettal", "1", "panel", "agreed", "--actor", "bob"},
		{"available", "taxon-gazettal", "1"},
		{"history", "taxon-gazettal", "1"},
		{"recache"},
		{"migrate", "--recache"},
	}
	for _, args := range steps {
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		require.NoError(t, err, args)
	}

	ctx := context.Background()
	op, err := connect(ctx)
	require.NoError(t, err)
	defer op.Close()
	svc := ioworkflow.New(op.GORM(), cfg)

	st, err := svc.Available(ctx, workflow.KindTaxonGazettal, 1)
	require.NoError(t, err)
	assert.Equal(t, gazettal.InPanelReview, st.State)

	hist, err := svc.History(ctx, workflow.KindTaxonGazettal, 1)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "alice", hist[0].Actor)

	rec, err := svc.Gazettal(ctx, workflow.KindTaxonGazettal, 1)
	require.NoError(t, err)
	base := rec.Base()
	assert.Contains(t, base.Comments, "agreed")
	assert.Contains(t, base.LabelCache, "CR")

	rootCmd.SetArgs([]string{"transition", "taxon-gazettal", "1",
		"submit_for_expert_review"})
	err = rootCmd.Execute()
	assert.Error(t, err)
}

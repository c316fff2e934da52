package ioseed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbca-wa/wastd/internal/ioseed"
	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/seed"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	data, err := ioseed.Load(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)
	assert.Len(t, data.Lists, 2)
	assert.Len(t, data.Taxa, 3)
	assert.Len(t, data.Communities, 2)

	_, err = ioseed.Load(filepath.Join("testdata", "none.yaml"))
	assert.True(t, errcode.Has(err, errcode.SeedReadError))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lists:\n  - label: A\n"), 0644))
	_, err = ioseed.Load(path)
	assert.True(t, errcode.Has(err, errcode.SeedValidationError))
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	gdb := iotesting.SQLite(t).GORM()
	cfg := iotesting.SQLiteConfig()
	data, err := ioseed.Load(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	imp := ioseed.New(gdb, cfg, false)
	stats, err := imp.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, seed.Stats{
		Lists: 2, Categories: 4, Criteria: 2, Taxa: 3, Communities: 2,
	}, *stats)

	var taxon schema.Taxon
	require.NoError(t, gdb.Where("name_id = ?", 24557).First(&taxon).Error)
	assert.Equal(t, "Caretta caretta", taxon.Canonical)
	assert.Equal(t, "zoological", taxon.Code)
	assert.Equal(t, "Loggerhead turtle", taxon.Vernacular)
	assert.Len(t, taxon.NameUUID, 36)

	var vu schema.ConservationCategory
	err = gdb.Preload("ConservationList").
		Where("code = ?", "VU").First(&vu).Error
	require.NoError(t, err)
	assert.Equal(t, "[WAWCA] VU", vu.String())
	assert.Equal(t, 3, vu.Position)

	// second import updates in place
	data.Lists[0].Categories[2].Label = "Vulnerable species"
	data.Taxa[2].Name = "Banksia grandis"
	_, err = imp.Import(ctx, data)
	require.NoError(t, err)

	counts := []struct {
		model any
		n     int64
	}{
		{&schema.ConservationList{}, 2},
		{&schema.ConservationCategory{}, 4},
		{&schema.ConservationCriterion{}, 2},
		{&schema.Taxon{}, 3},
		{&schema.Community{}, 2},
	}
	for _, v := range counts {
		var n int64
		require.NoError(t, gdb.Model(v.model).Count(&n).Error)
		assert.Equal(t, v.n, n)
	}

	require.NoError(t, gdb.First(&vu, vu.ID).Error)
	assert.Equal(t, "Vulnerable species", vu.Label)
	require.NoError(t, gdb.Where("name_id = ?", 1799).First(&taxon).Error)
	assert.Equal(t, "Banksia grandis", taxon.Name)
	assert.Empty(t, taxon.Authorship)
}

func TestImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	gdb := iotesting.SQLite(t).GORM()
	data, err := ioseed.Load(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	require.NoError(t, gdb.Migrator().DropTable(&schema.Taxon{}))

	_, err = ioseed.New(gdb, iotesting.SQLiteConfig(), false).Import(ctx, data)
	require.Error(t, err)
	assert.True(t, errcode.Has(err, errcode.SeedImportError))

	for _, model := range []any{
		&schema.ConservationList{},
		&schema.ConservationCategory{},
		&schema.ConservationCriterion{},
		&schema.Community{},
	} {
		var n int64
		require.NoError(t, gdb.Model(model).Count(&n).Error)
		assert.Zero(t, n, "nothing is committed when taxa fail")
	}
}

func TestErrors(t *testing.T) {
	cause := assert.AnError
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"read", ioseed.ReadError("seed.yaml", cause), errcode.SeedReadError},
		{"validation", ioseed.ValidationError(cause),
			errcode.SeedValidationError},
		{"import", ioseed.ImportError("taxa", cause), errcode.SeedImportError},
	}
	for _, v := range tests {
		var gnErr *gn.Error
		require.ErrorAs(t, v.err, &gnErr, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
	}
}

package ioworkflow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/gnames/gn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newRecord(kind string) (schema.Stored, error) {
	switch kind {
	case workflow.KindTaxonGazettal:
		return &schema.TaxonGazettal{}, nil
	case workflow.KindCommunityGazettal:
		return &schema.CommunityGazettal{}, nil
	case workflow.KindEncounter:
		return &schema.Encounter{}, nil
	case workflow.KindThreat:
		return &schema.ConservationThreat{}, nil
	default:
		return nil, workflow.UnknownKindError(kind)
	}
}

func load(tx *gorm.DB, kind string, id uint) (schema.Stored, error) {
	rec, err := newRecord(kind)
	if err != nil {
		return nil, err
	}
	if err = tx.First(rec, id).Error; err != nil {
		return nil, findError(kind, id, err)
	}
	return rec, nil
}

func loadGazettal(
	tx *gorm.DB,
	kind string,
	id uint,
) (schema.GazettalRecord, error) {
	if !workflow.IsGazettalKind(kind) {
		return nil, workflow.NotGazettalError(kind)
	}
	rec, err := load(tx, kind, id)
	if err != nil {
		return nil, err
	}
	return rec.(schema.GazettalRecord), nil
}

func findError(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflow.RecordNotFoundError(kind, id)
	}
	return workflow.SaveRecordError(kind, id, err)
}

// save writes all columns of the record if its stored version is still
// prev, and increments the version. Save hooks run inside tx.
func save(tx *gorm.DB, rec schema.Stored, prev int) error {
	t := rec.Tracking()
	t.Version = prev + 1

	res := tx.Model(rec).
		Where("version = ?", prev).
		Select("*").
		Omit(clause.Associations, "CreatedAt").
		Updates(rec)
	if res.Error != nil {
		t.Version = prev
		var gnErr *gn.Error
		if errors.As(res.Error, &gnErr) {
			return res.Error
		}
		return workflow.SaveRecordError(rec.RecordKind(), t.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		t.Version = prev
		return workflow.ConcurrentModificationError(
			rec.RecordKind(), t.ID, prev,
		)
	}
	return nil
}

// replaceRelations sets categories and criteria of a stored gazettal.
// Unknown ids are rejected.
func replaceRelations(
	tx *gorm.DB,
	rec schema.GazettalRecord,
	categoryIDs, criterionIDs []uint,
) error {
	kind, id := rec.RecordKind(), rec.RecordID()
	rel := rec.Relations()
	cats := uniq(categoryIDs)
	crits := uniq(criterionIDs)

	if err := checkIDs(tx, &schema.ConservationCategory{}, cats); err != nil {
		return workflow.RelationsError(kind, id, err)
	}
	if err := checkIDs(tx, &schema.ConservationCriterion{}, crits); err != nil {
		return workflow.RelationsError(kind, id, err)
	}

	joins := []struct {
		table, ref string
		ids        []uint
	}{
		{rel.Categories, schema.CategoryColumn, cats},
		{rel.Criteria, schema.CriterionColumn, crits},
	}
	for _, j := range joins {
		q := "DELETE FROM " + j.table + " WHERE " + rel.Owner + " = ?"
		if err := tx.Exec(q, id).Error; err != nil {
			return workflow.RelationsError(kind, id, err)
		}
		q = "INSERT INTO " + j.table +
			" (" + rel.Owner + ", " + j.ref + ") VALUES (?, ?)"
		for _, ref := range j.ids {
			if err := tx.Exec(q, id, ref).Error; err != nil {
				return workflow.RelationsError(kind, id, err)
			}
		}
	}
	return nil
}

func checkIDs(tx *gorm.DB, model any, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !slices.Contains(found, id) {
			return fmt.Errorf("unknown id %d", id)
		}
	}
	return nil
}

func uniq(ids []uint) []uint {
	res := slices.Clone(ids)
	slices.Sort(res)
	return slices.Compact(res)
}

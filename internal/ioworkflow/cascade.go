package ioworkflow

import (
	"context"
	"log/slog"

	"github.com/dbca-wa/wastd/internal/ioaudit"
	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/schema"
	"gorm.io/gorm"
)

// deactivateSiblings moves other gazetted records of the same subject to
// inactive. A sibling is affected when its categories share a
// conservation list with the new record, or when either of them has no
// categories at all.
func deactivateSiblings(
	ctx context.Context,
	tx *gorm.DB,
	tbl *fsm.Table,
	rec schema.GazettalRecord,
	actor string,
) ([]audit.Entry, error) {
	rel := rec.Relations()
	kind := rec.RecordKind()

	var ids []uint
	err := tx.Table(rel.Table).
		Where(rel.Subject+" = ?", rec.SubjectID()).
		Where("status = ?", string(gazettal.Gazetted)).
		Where("id <> ?", rec.RecordID()).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, findError(kind, rec.RecordID(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	lists, err := listIDs(tx, rel, rec.RecordID())
	if err != nil {
		return nil, err
	}

	sink := ioaudit.New(tx)
	var res []audit.Entry
	for _, id := range ids {
		sib, err := loadGazettal(tx, kind, id)
		if err != nil {
			return nil, err
		}

		sibLists, err := listIDs(tx, rel, id)
		if err != nil {
			return nil, err
		}
		if !overlap(lists, sibLists) {
			continue
		}

		prev := sib.Tracking().Version
		entry, err := tbl.Fire(ctx, sib, gazettal.MarkInactive, actor, sink)
		if err != nil {
			return nil, err
		}
		sib.Base().StampMilestone(fsm.State(entry.Target), entry.Timestamp)
		if err = save(tx, sib, prev); err != nil {
			return nil, err
		}
		slog.Info("Deactivated superseded gazettal",
			"kind", kind, "id", id, "by", rec.RecordID())
		res = append(res, entry)
	}
	return res, nil
}

// listIDs returns conservation lists of the categories of a gazettal.
func listIDs(tx *gorm.DB, rel schema.Relations, id uint) (map[uint]bool, error) {
	cats, _, err := schema.LoadRelations(tx, rel, id)
	if err != nil {
		return nil, err
	}
	res := make(map[uint]bool, len(cats))
	for _, c := range cats {
		res[c.ConservationListID] = true
	}
	return res, nil
}

func overlap(a, b map[uint]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

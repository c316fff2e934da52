package ioworkflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *service) CreateTaxonGazettal(
	ctx context.Context,
	in workflow.GazettalInput,
) (*schema.TaxonGazettal, error) {
	rec := schema.NewTaxonGazettal(in.SubjectID)
	err := s.create(ctx, rec, &schema.Taxon{}, in)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) CreateCommunityGazettal(
	ctx context.Context,
	in workflow.GazettalInput,
) (*schema.CommunityGazettal, error) {
	rec := schema.NewCommunityGazettal(in.SubjectID)
	err := s.create(ctx, rec, &schema.Community{}, in)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// create inserts the gazettal, attaches relations and saves it a second
// time so the save hook fills the caches. Both writes share one
// transaction.
func (s *service) create(
	ctx context.Context,
	rec schema.GazettalRecord,
	subject any,
	in workflow.GazettalInput,
) error {
	if err := s.validate.Struct(in); err != nil {
		return workflow.InputValidationError(err)
	}

	kind := rec.RecordKind()
	base := rec.Base()
	base.ProposedOn = in.ProposedOn
	if base.ProposedOn == nil {
		now := time.Now().UTC()
		base.ProposedOn = &now
	}
	base.ReviewDue = in.ReviewDue
	base.AppendComment(in.Actor, in.Comment, time.Now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(subject, in.SubjectID).Error
		if err != nil {
			return findError(subjectKind(rec), in.SubjectID, err)
		}

		err = tx.Omit(clause.Associations).Create(rec).Error
		if err != nil {
			return workflow.SaveRecordError(kind, 0, err)
		}

		err = replaceRelations(tx, rec, in.CategoryIDs, in.CriterionIDs)
		if err != nil {
			return err
		}
		return save(tx, rec, rec.Tracking().Version)
	})
	if err != nil {
		return err
	}

	slog.Info("Created gazettal",
		"kind", kind, "id", rec.RecordID(), "subject", in.SubjectID,
		"label", base.LabelCache)
	return nil
}

func subjectKind(rec schema.GazettalRecord) string {
	if rec.RecordKind() == workflow.KindCommunityGazettal {
		return "community"
	}
	return "taxon"
}

func (s *service) SetRelations(
	ctx context.Context,
	kind string,
	id uint,
	categoryIDs, criterionIDs []uint,
) (schema.GazettalRecord, error) {
	var res schema.GazettalRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := loadGazettal(tx, kind, id)
		if err != nil {
			return err
		}
		prev := rec.Tracking().Version
		if err = replaceRelations(tx, rec, categoryIDs, criterionIDs); err != nil {
			return err
		}
		if err = save(tx, rec, prev); err != nil {
			return err
		}
		res = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Relations updated",
		"kind", kind, "id", id, "label", res.Base().LabelCache)
	return res, nil
}

func (s *service) Comment(
	ctx context.Context,
	kind string,
	id uint,
	actor, text string,
) (schema.GazettalRecord, error) {
	var res schema.GazettalRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := loadGazettal(tx, kind, id)
		if err != nil {
			return err
		}
		prev := rec.Tracking().Version
		rec.Base().AppendComment(actor, text, time.Now())
		if err = save(tx, rec, prev); err != nil {
			return err
		}
		res = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Package ioworkflow implements workflow.Service on top of GORM.
package ioworkflow

import (
	"context"
	"log/slog"

	"github.com/dbca-wa/wastd/internal/ioaudit"
	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type service struct {
	db       *gorm.DB
	cfg      *config.Config
	tables   map[string]*fsm.Table
	validate *validator.Validate
	progress bool
}

// Option configures the service.
type Option func(*service)

// OptTable replaces the transition table of a kind, for example with a
// table that has gates.
func OptTable(kind string, t *fsm.Table) Option {
	return func(s *service) {
		if workflow.IsKind(kind) && t != nil {
			s.tables[kind] = t
		}
	}
}

// OptProgress shows a progress bar during Recache.
func OptProgress(b bool) Option {
	return func(s *service) {
		s.progress = b
	}
}

// New creates the workflow service.
func New(db *gorm.DB, cfg *config.Config, opts ...Option) workflow.Service {
	res := &service{
		db:       db,
		cfg:      cfg,
		tables:   workflow.DefaultTables(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (s *service) table(kind string) (*fsm.Table, error) {
	t, ok := s.tables[kind]
	if !ok {
		return nil, workflow.UnknownKindError(kind)
	}
	return t, nil
}

func (s *service) Transition(
	ctx context.Context,
	kind string,
	id uint,
	op fsm.Operation,
	actor string,
) (*workflow.Outcome, error) {
	tbl, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	var res *workflow.Outcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := load(tx, kind, id)
		if err != nil {
			return err
		}
		prev := rec.Tracking().Version

		entry, err := tbl.Fire(ctx, rec, op, actor, ioaudit.New(tx))
		if err != nil {
			return err
		}

		var deactivated []audit.Entry
		g, isGazettal := rec.(schema.GazettalRecord)
		if isGazettal {
			g.Base().StampMilestone(fsm.State(entry.Target), entry.Timestamp)
		}
		if isGazettal && s.cfg.Workflow.DeactivateSiblings &&
			rec.CurrentState() == gazettal.Gazetted {
			deactivated, err = deactivateSiblings(ctx, tx, tbl, g, actor)
			if err != nil {
				return err
			}
		}

		if err = save(tx, rec, prev); err != nil {
			return err
		}

		res = &workflow.Outcome{
			Kind:        kind,
			ID:          id,
			State:       rec.CurrentState(),
			Version:     rec.Tracking().Version,
			Entry:       entry,
			Deactivated: deactivated,
		}
		return nil
	})
	if err != nil {
		slog.Warn("Transition failed",
			"kind", kind, "id", id, "operation", op, "error", err)
		return nil, err
	}

	slog.Info("Transition",
		"kind", kind, "id", id, "operation", op, "actor", actor,
		"source", res.Entry.Source, "target", res.Entry.Target,
		"deactivated", len(res.Deactivated))
	return res, nil
}

func (s *service) Available(
	ctx context.Context,
	kind string,
	id uint,
) (*workflow.Status, error) {
	tbl, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	rec, err := load(s.db.WithContext(ctx), kind, id)
	if err != nil {
		return nil, err
	}

	state := rec.CurrentState()
	ops := tbl.Available(state)
	if ops == nil {
		ops = []fsm.Operation{}
	}
	res := workflow.Status{
		Kind:       kind,
		ID:         id,
		State:      state,
		Label:      workflow.Label(kind, state),
		Operations: ops,
	}
	return &res, nil
}

func (s *service) History(
	ctx context.Context,
	kind string,
	id uint,
) ([]audit.Entry, error) {
	if !workflow.IsKind(kind) {
		return nil, workflow.UnknownKindError(kind)
	}
	return ioaudit.New(s.db).History(ctx, kind, id)
}

func (s *service) Gazettal(
	ctx context.Context,
	kind string,
	id uint,
) (schema.GazettalRecord, error) {
	var rec schema.GazettalRecord
	var subject string
	switch kind {
	case workflow.KindTaxonGazettal:
		rec, subject = &schema.TaxonGazettal{}, "Taxon"
	case workflow.KindCommunityGazettal:
		rec, subject = &schema.CommunityGazettal{}, "Community"
	default:
		return nil, workflow.NotGazettalError(kind)
	}

	err := s.db.WithContext(ctx).
		Preload(subject).
		Preload("Categories.ConservationList").
		Preload("Criteria.ConservationList").
		First(rec, id).Error
	if err != nil {
		return nil, findError(kind, id, err)
	}
	return rec, nil
}

package ioworkflow

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type recacheJob struct {
	kind string
	id   uint
}

// Recache re-saves every gazettal so its save hook recomputes caches.
// Ids are read in pages of the configured batch size and processed by
// JobsNumber workers, each record in its own transaction.
func (s *service) Recache(ctx context.Context) (int, error) {
	var jobs []recacheJob
	for _, rec := range []schema.GazettalRecord{
		&schema.TaxonGazettal{},
		&schema.CommunityGazettal{},
	} {
		ids, err := s.gazettalIDs(ctx, rec.Relations().Table)
		if err != nil {
			return 0, workflow.RecacheError(err)
		}
		for _, id := range ids {
			jobs = append(jobs, recacheJob{kind: rec.RecordKind(), id: id})
		}
	}

	slog.Info("Recomputing gazettal caches",
		"records", humanize.Comma(int64(len(jobs))))

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.Full.Start(len(jobs))
		bar.Set("prefix", "Recache: ")
		bar.Set(pb.CleanOnFinish, true)
	}

	chIn := make(chan recacheJob)
	var count atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, j := range jobs {
			select {
			case chIn <- j:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	workers := max(s.cfg.JobsNumber, 1)
	for range workers {
		g.Go(func() error {
			for j := range chIn {
				if err := s.recacheOne(gCtx, j); err != nil {
					return err
				}
				count.Add(1)
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	res := int(count.Load())
	if err != nil {
		return res, workflow.RecacheError(err)
	}

	slog.Info("Gazettal caches recomputed",
		"records", humanize.Comma(int64(res)))
	return res, nil
}

func (s *service) recacheOne(ctx context.Context, j recacheJob) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := loadGazettal(tx, j.kind, j.id)
		if err != nil {
			return err
		}
		return save(tx, rec, rec.Tracking().Version)
	})
}

// gazettalIDs reads ids of a gazettal table page by page.
func (s *service) gazettalIDs(ctx context.Context, table string) ([]uint, error) {
	batch := max(s.cfg.Database.BatchSize, 1)
	var res []uint
	var last uint
	for {
		var page []uint
		err := s.db.WithContext(ctx).
			Table(table).
			Where("id > ?", last).
			Order("id").
			Limit(batch).
			Pluck("id", &page).Error
		if err != nil {
			return nil, err
		}
		res = append(res, page...)
		if len(page) < batch {
			return res, nil
		}
		last = page[len(page)-1]
	}
}

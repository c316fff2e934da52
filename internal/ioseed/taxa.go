package ioseed

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"github.com/dbca-wa/wastd/pkg/parserpool"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/dbca-wa/wastd/pkg/seed"
	"golang.org/x/sync/errgroup"
)

type taxonJob struct {
	idx   int
	taxon seed.Taxon
}

// parseTaxa normalizes names with JobsNumber workers. The result keeps the
// order of the input.
func (s *ioseed) parseTaxa(
	ctx context.Context,
	taxa []seed.Taxon,
) ([]schema.Taxon, error) {
	if len(taxa) == 0 {
		return nil, nil
	}

	jobs := max(s.cfg.JobsNumber, 1)
	pool := parserpool.NewPool(jobs)
	defer pool.Close()

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.Full.Start(len(taxa))
		bar.Set("prefix", "Parse taxa: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	res := make([]schema.Taxon, len(taxa))
	chIn := make(chan taxonJob)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for i, t := range taxa {
			select {
			case chIn <- taxonJob{idx: i, taxon: t}:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	for range jobs {
		g.Go(func() error {
			for j := range chIn {
				m, err := taxonModel(pool, j.taxon)
				if err != nil {
					return err
				}
				// each index is written by one worker only
				res[j.idx] = m
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func taxonModel(pool parserpool.Pool, t seed.Taxon) (schema.Taxon, error) {
	code, err := parserpool.Code(t.Code)
	if err != nil {
		return schema.Taxon{}, err
	}
	name, err := pool.Parse(t.Name, code)
	if err != nil {
		return schema.Taxon{}, err
	}
	return schema.Taxon{
		NameID:     t.NameID,
		Name:       name.Verbatim,
		Canonical:  name.Canonical,
		Authorship: name.Authorship,
		NameUUID:   name.UUID,
		Code:       parserpool.CodeName(code),
		Vernacular: t.Vernacular,
	}, nil
}

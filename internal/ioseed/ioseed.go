// Package ioseed loads seed files and upserts reference data.
package ioseed

import (
	"context"
	"log/slog"
	"os"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/seed"
	"github.com/gnames/gn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ioseed struct {
	db       *gorm.DB
	cfg      *config.Config
	progress bool
}

// Load reads and validates a seed file. Warnings are printed to the user.
func Load(path string) (*seed.Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	data, err := seed.Parse(content)
	if err != nil {
		return nil, ReadError(path, err)
	}
	if err = data.Validate(); err != nil {
		return nil, ValidationError(err)
	}
	for _, w := range data.Warnings {
		gn.Warn("%s #%d: %s", w.Section, w.Index, w.Message)
	}
	return data, nil
}

// New creates an Importer. With progress set, parsing of taxon names shows
// a progress bar.
func New(db *gorm.DB, cfg *config.Config, progress bool) seed.Importer {
	return &ioseed{db: db, cfg: cfg, progress: progress}
}

// Import parses taxon names first and then writes all sections in one
// transaction, so a failed import leaves the database unchanged.
func (s *ioseed) Import(ctx context.Context, data *seed.Data) (*seed.Stats, error) {
	taxa, err := s.parseTaxa(ctx, data.Taxa)
	if err != nil {
		return nil, ImportError("taxa", err)
	}

	var res seed.Stats
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range data.Lists {
			if err := upsertList(tx, l, &res); err != nil {
				return ImportError("list "+l.Code, err)
			}
		}
		for _, c := range data.Communities {
			m := c.Model()
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns(
					[]string{"name", "description"},
				),
			}).Create(&m).Error
			if err != nil {
				return ImportError("community "+c.Code, err)
			}
			res.Communities++
		}
		if len(taxa) == 0 {
			return nil
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "canonical", "authorship", "name_uuid", "code",
				"vernacular",
			}),
		}).CreateInBatches(taxa, max(s.cfg.Database.BatchSize, 1)).Error
		if err != nil {
			return ImportError("taxa", err)
		}
		res.Taxa = len(taxa)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Seed imported",
		"lists", res.Lists, "categories", res.Categories,
		"criteria", res.Criteria, "taxa", res.Taxa,
		"communities", res.Communities)
	return &res, nil
}

func upsertList(tx *gorm.DB, l seed.List, stats *seed.Stats) error {
	m := l.Model()
	err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"label", "description", "scope_wa", "scope_cmw", "scope_intl",
			"scope_species", "scope_communities", "active_from", "active_to",
		}),
	}).Create(&m).Error
	if err != nil {
		return err
	}

	// the id is not returned by every driver on conflict
	if err = tx.Where("code = ?", l.Code).First(&m).Error; err != nil {
		return err
	}
	stats.Lists++

	refCols := []clause.Column{{Name: "conservation_list_id"}, {Name: "code"}}
	refUpdates := clause.AssignmentColumns(
		[]string{"label", "description", "position"},
	)
	if cats := l.CategoryModels(m.ID); len(cats) > 0 {
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   refCols,
			DoUpdates: refUpdates,
		}).Create(&cats).Error
		if err != nil {
			return err
		}
		stats.Categories += len(cats)
	}
	if crits := l.CriterionModels(m.ID); len(crits) > 0 {
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   refCols,
			DoUpdates: refUpdates,
		}).Create(&crits).Error
		if err != nil {
			return err
		}
		stats.Criteria += len(crits)
	}
	return nil
}

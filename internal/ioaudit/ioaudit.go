// Package ioaudit stores the transition audit log in the database.
package ioaudit

import (
	"context"
	"fmt"

	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/dbca-wa/wastd/pkg/schema"
	"github.com/gnames/gn"
	"gorm.io/gorm"
)

type gormLog struct {
	db *gorm.DB
}

// New returns an audit log over the state_transitions table. Pass a
// transaction handle to make entries part of that transaction.
func New(db *gorm.DB) audit.Log {
	return &gormLog{db: db}
}

func (l *gormLog) Record(ctx context.Context, e audit.Entry) error {
	row := schema.NewStateTransition(e)
	if err := l.db.WithContext(ctx).Create(row).Error; err != nil {
		return &gn.Error{
			Code: errcode.AuditRecordError,
			Msg:  "Cannot store audit entry for %s #%d",
			Vars: []any{e.Kind, e.RecordID},
			Err:  fmt.Errorf("insert state transition: %w", err),
		}
	}
	return nil
}

// History returns entries of one record in insertion order.
func (l *gormLog) History(
	ctx context.Context,
	kind string,
	id uint,
) ([]audit.Entry, error) {
	var rows []schema.StateTransition
	err := l.db.WithContext(ctx).
		Where("kind = ? AND record_id = ?", kind, id).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, &gn.Error{
			Code: errcode.AuditRecordError,
			Msg:  "Cannot read audit log of %s #%d",
			Vars: []any{kind, id},
			Err:  fmt.Errorf("query state transitions: %w", err),
		}
	}

	res := make([]audit.Entry, len(rows))
	for i, v := range rows {
		res[i] = v.Entry()
	}
	return res, nil
}

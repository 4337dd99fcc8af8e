package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inspectra/internal/errs"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
)

// NextSequence allocates the next counter value for (scope, period) with an
// insert-if-missing plus atomic increment. Running inside the caller's
// transaction keeps the counter and the row that consumes it consistent.
func (r *ComplianceRepository) NextSequence(ctx context.Context, scope string, period string) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "period"}},
		DoNothing: true,
	}).Create(&model.SequenceCounter{
		Scope:     scope,
		Period:    period,
		Seq:       0,
		UpdatedAt: now,
	}).Error; err != nil {
		return 0, errs.Wrap(err, "ensure sequence counter")
	}

	res := db.Model(&model.SequenceCounter{}).
		Where("scope = ? AND period = ?", scope, period).
		Updates(map[string]any{
			"seq":        gorm.Expr("seq + 1"),
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, errs.Wrap(res.Error, "increment sequence counter")
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("sequence counter %s/%s disappeared during increment", scope, period)
	}

	var row model.SequenceCounter
	if err := db.Where("scope = ? AND period = ?", scope, period).Take(&row).Error; err != nil {
		return 0, errs.Wrap(err, "read sequence counter")
	}
	return row.Seq, nil
}

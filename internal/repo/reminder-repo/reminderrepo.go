package reminderrepo

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Insert records a reminder as sent. The unique (deal_id, kind)
// constraint makes the insert the at-most-once synchronization point:
// inserted=false means another dispatcher got there first and the
// caller must not notify.
func (r *Repository) Insert(ctx context.Context, dealID uuid.UUID, kind domain.ReminderKind) (bool, error) {
	query := `
        INSERT INTO deal_reminders (deal_id, kind)
        VALUES ($1, $2)
        ON CONFLICT (deal_id, kind) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, dealID, kind)
	if err != nil {
		zap.L().Error("can't insert reminder", zap.String("deal_id", dealID.String()), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

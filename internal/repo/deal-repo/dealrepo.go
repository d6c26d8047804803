package dealrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
)

const dealColumns = `id, advertiser_user_id, publisher_owner_user_id, listing_id, channel_id,
		status, escrow_status, escrow_amount_nano, escrow_currency,
		scheduled_at, idle_expires_at, creative_deadline_at, admin_review_deadline_at, payment_deadline_at,
		published_message_id, published_at, must_remain_until, delivery_error,
		cancel_reason, stalled_at, last_activity_at, listing_snapshot, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Save(ctx context.Context, deal *domain.Deal) error {
	snapshot, err := json.Marshal(deal.ListingSnapshot)
	if err != nil {
		return fmt.Errorf("can't marshal listing snapshot: %w", err)
	}
	query := `
        INSERT INTO deals (` + dealColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                $15, $16, $17, $18, $19, $20, $21, $22, $23)
    `
	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			deal.ID, deal.AdvertiserUserID, deal.PublisherOwnerUserID, deal.ListingID, deal.ChannelID,
			deal.Status, deal.EscrowStatus, deal.EscrowAmountNano, deal.EscrowCurrency,
			deal.ScheduledAt, deal.IdleExpiresAt, deal.CreativeDeadlineAt, deal.AdminReviewDeadlineAt, deal.PaymentDeadlineAt,
			deal.PublishedMessageID, deal.PublishedAt, deal.MustRemainUntil, deal.DeliveryError,
			deal.CancelReason, deal.StalledAt, deal.LastActivityAt, snapshot, deal.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't save deal", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	deal, err := scanDeal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find deal", zap.Error(err))
		return nil, err
	}
	return deal, nil
}

// ClaimStage performs the conditional claim that serializes all stage
// transitions. The affected return is false when another writer moved
// the row first.
func (r *Repository) ClaimStage(ctx context.Context, dealID uuid.UUID, claim domain.StageClaim) (bool, error) {
	query := `
        UPDATE deals
        SET escrow_status = $2,
            status = $3,
            last_activity_at = now(),
            cancel_reason = COALESCE($4, cancel_reason),
            stalled_at = COALESCE($5, stalled_at),
            delivery_error = COALESCE($6, delivery_error),
            published_message_id = COALESCE($7, published_message_id),
            published_at = COALESCE($8, published_at),
            must_remain_until = COALESCE($9, must_remain_until),
            scheduled_at = COALESCE($10, scheduled_at),
            idle_expires_at = COALESCE($11, idle_expires_at),
            creative_deadline_at = COALESCE($12, creative_deadline_at),
            admin_review_deadline_at = COALESCE($13, admin_review_deadline_at),
            payment_deadline_at = COALESCE($14, payment_deadline_at)
        WHERE id = $1 AND escrow_status = $15 AND status = $16
    `
	tag, err := r.db.Exec(ctx, query,
		dealID, claim.To, domain.CoarseStatus(claim.To),
		claim.CancelReason, claim.StalledAt, claim.DeliveryError,
		claim.PublishedMessageID, claim.PublishedAt, claim.MustRemainUntil, claim.ScheduledAt,
		claim.IdleExpiresAt, claim.CreativeDeadlineAt, claim.AdminReviewDeadlineAt, claim.PaymentDeadlineAt,
		claim.From, domain.CoarseStatus(claim.From),
	)
	if err != nil {
		zap.L().Error("can't claim deal stage", zap.String("deal_id", dealID.String()), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindPastDeadline selects candidates whose category deadline has
// already passed. Column names come from the closed DeadlineCategory
// set, never from user input.
func (r *Repository) FindPastDeadline(ctx context.Context, category domain.DeadlineCategory, now time.Time, limit int) ([]domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals
        WHERE status = $1
          AND escrow_status = ANY($2)
          AND ` + category.Column() + ` <= $3
        ORDER BY ` + category.Column() + ` ASC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, domain.StatusPending, stageStrings(category.EligibleStages()), now, limit)
	if err != nil {
		zap.L().Error("can't get deals past deadline", zap.String("category", string(category)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

// FindApproachingDeadline selects deals whose category deadline falls
// inside (now, until] and which have no reminder row for the kind yet.
func (r *Repository) FindApproachingDeadline(ctx context.Context, category domain.DeadlineCategory, now, until time.Time, limit int) ([]domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals d
        WHERE status = $1
          AND escrow_status = ANY($2)
          AND ` + category.Column() + ` > $3
          AND ` + category.Column() + ` <= $4
          AND NOT EXISTS (
              SELECT 1 FROM deal_reminders r
              WHERE r.deal_id = d.id AND r.kind = $5
          )
        ORDER BY ` + category.Column() + ` ASC
        LIMIT $6
    `
	rows, err := r.db.Query(ctx, query,
		domain.StatusPending, stageStrings(category.EligibleStages()), now, until, category.ReminderKind(), limit)
	if err != nil {
		zap.L().Error("can't get deals approaching deadline", zap.String("category", string(category)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

// FindScheduledApproaching selects SCHEDULED deals whose post time
// falls inside (now, until] and which have no delivery reminder yet.
func (r *Repository) FindScheduledApproaching(ctx context.Context, now, until time.Time, limit int) ([]domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals d
        WHERE status = $1
          AND escrow_status = $2
          AND scheduled_at > $3
          AND scheduled_at <= $4
          AND NOT EXISTS (
              SELECT 1 FROM deal_reminders r
              WHERE r.deal_id = d.id AND r.kind = $5
          )
        ORDER BY scheduled_at ASC, created_at ASC
        LIMIT $6
    `
	rows, err := r.db.Query(ctx, query,
		domain.StatusActive, domain.StageScheduled, now, until, domain.ReminderDeliverySoon, limit)
	if err != nil {
		zap.L().Error("can't get scheduled deals approaching post time", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

// FindDueScheduled returns SCHEDULED deals whose post time has arrived,
// earliest first with oldest-deal tie-break so no deal starves.
func (r *Repository) FindDueScheduled(ctx context.Context, until time.Time, limit int) ([]domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals
        WHERE status = $1 AND escrow_status = $2 AND scheduled_at <= $3
        ORDER BY scheduled_at ASC, created_at ASC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, domain.StatusActive, domain.StageScheduled, until, limit)
	if err != nil {
		zap.L().Error("can't get due scheduled deals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

// FindVerifyingDue returns POSTED_VERIFYING deals whose agreed
// visibility window has elapsed and are ready for payout.
func (r *Repository) FindVerifyingDue(ctx context.Context, now time.Time, limit int) ([]domain.Deal, error) {
	query := `
        SELECT ` + dealColumns + `
        FROM deals
        WHERE status = $1 AND escrow_status = $2 AND must_remain_until <= $3
        ORDER BY must_remain_until ASC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, domain.StatusActive, domain.StagePostedVerifying, now, limit)
	if err != nil {
		zap.L().Error("can't get deals due for release", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

func stageStrings(stages []domain.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, string(s))
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	var deal domain.Deal
	var snapshot []byte
	err := row.Scan(
		&deal.ID, &deal.AdvertiserUserID, &deal.PublisherOwnerUserID, &deal.ListingID, &deal.ChannelID,
		&deal.Status, &deal.EscrowStatus, &deal.EscrowAmountNano, &deal.EscrowCurrency,
		&deal.ScheduledAt, &deal.IdleExpiresAt, &deal.CreativeDeadlineAt, &deal.AdminReviewDeadlineAt, &deal.PaymentDeadlineAt,
		&deal.PublishedMessageID, &deal.PublishedAt, &deal.MustRemainUntil, &deal.DeliveryError,
		&deal.CancelReason, &deal.StalledAt, &deal.LastActivityAt, &snapshot, &deal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &deal.ListingSnapshot); err != nil {
			return nil, fmt.Errorf("can't unmarshal listing snapshot: %w", err)
		}
	}
	return &deal, nil
}

func scanDeals(rows pgx.Rows) ([]domain.Deal, error) {
	var deals []domain.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			zap.L().Error("can't scan deal row", zap.Error(err))
			return nil, err
		}
		deals = append(deals, *deal)
	}
	return deals, rows.Err()
}

// Package reminder sends "deadline approaching" notices at most once
// per (deal, kind). The DealReminder insert is the synchronization
// point: notify only after the insert landed, so two dispatcher
// instances can never both send.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/service/dealservice"
)

type ReminderRepo interface {
	Insert(ctx context.Context, dealID uuid.UUID, kind domain.ReminderKind) (bool, error)
}

type Dispatcher struct {
	dealRepo     dealservice.DealRepo
	reminderRepo ReminderRepo
	notifier     collab.Notifier
	lookahead    time.Duration
	batchLimit   int
	now          func() time.Time
}

func New(dealRepo dealservice.DealRepo, reminderRepo ReminderRepo, notifier collab.Notifier, lookahead time.Duration, batchLimit int) *Dispatcher {
	return &Dispatcher{
		dealRepo:     dealRepo,
		reminderRepo: reminderRepo,
		notifier:     notifier,
		lookahead:    lookahead,
		batchLimit:   batchLimit,
		now:          time.Now,
	}
}

func (d *Dispatcher) RunOnce(ctx context.Context) error {
	now := d.now()
	until := now.Add(d.lookahead)

	for _, category := range domain.Categories {
		deals, err := d.dealRepo.FindApproachingDeadline(ctx, category, now, until, d.batchLimit)
		if err != nil {
			return fmt.Errorf("remind %s: %w", category, err)
		}
		for i := range deals {
			d.dispatch(ctx, &deals[i], category.ReminderKind())
		}
	}

	deals, err := d.dealRepo.FindScheduledApproaching(ctx, now, until, d.batchLimit)
	if err != nil {
		return fmt.Errorf("remind delivery: %w", err)
	}
	for i := range deals {
		d.dispatch(ctx, &deals[i], domain.ReminderDeliverySoon)
	}
	return nil
}

// dispatch inserts first and notifies only on a fresh insert. The
// reversed order would reintroduce the duplicate-send race.
func (d *Dispatcher) dispatch(ctx context.Context, deal *domain.Deal, kind domain.ReminderKind) {
	inserted, err := d.reminderRepo.Insert(ctx, deal.ID, kind)
	if err != nil {
		zap.L().Error("failed to record reminder",
			zap.String("deal_id", deal.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return
	}
	if !inserted {
		// already sent by another dispatcher, expected outcome
		return
	}

	args := map[string]any{
		"deal_id": deal.ID.String(),
	}
	for _, userID := range recipients(deal, kind) {
		if err := d.notifier.Notify(ctx, userID, "deadline_approaching_"+string(kind), args); err != nil {
			zap.L().Warn("failed to send reminder",
				zap.String("deal_id", deal.ID.String()),
				zap.String("kind", string(kind)),
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
	}
}

// recipients picks which party a reminder concerns: the one whose
// action is pending.
func recipients(deal *domain.Deal, kind domain.ReminderKind) []int64 {
	switch kind {
	case domain.ReminderCreativeSoon, domain.ReminderAdminReviewSoon, domain.ReminderDeliverySoon:
		return []int64{deal.PublisherOwnerUserID}
	case domain.ReminderPaymentSoon:
		return []int64{deal.AdvertiserUserID}
	default:
		return []int64{deal.AdvertiserUserID, deal.PublisherOwnerUserID}
	}
}

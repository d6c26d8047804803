// Package sweeper cancels or disputes deals that have crossed one of
// the four deadline categories. Any number of sweeper instances may
// run concurrently; correctness comes from conditional stage claims,
// not from mutual exclusion.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
	"github.com/dealgora/dealgora/internal/service/dealservice"
)

// Escrow is the refund slice of the escrow ledger.
type Escrow interface {
	Refund(ctx context.Context, deal *domain.Deal, reason domain.CancelReason) error
}

type Sweeper struct {
	dealRepo   dealservice.DealRepo
	escrow     Escrow
	notifier   collab.Notifier
	txManager  pg.TXManager
	batchLimit int
	now        func() time.Time
}

func New(dealRepo dealservice.DealRepo, escrow Escrow, notifier collab.Notifier, txManager pg.TXManager, batchLimit int) *Sweeper {
	return &Sweeper{
		dealRepo:   dealRepo,
		escrow:     escrow,
		notifier:   notifier,
		txManager:  txManager,
		batchLimit: batchLimit,
		now:        time.Now,
	}
}

// RunOnce evaluates every deadline category against now. A failed
// candidate select aborts the run (the next tick retries); a failed
// deal never blocks the rest of its batch.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	now := s.now()
	for _, category := range domain.Categories {
		deals, err := s.dealRepo.FindPastDeadline(ctx, category, now, s.batchLimit)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", category, err)
		}
		for i := range deals {
			deal := deals[i]
			if err := s.process(ctx, category, &deal); err != nil {
				zap.L().Error("sweep failed for deal",
					zap.String("deal_id", deal.ID.String()),
					zap.String("category", string(category)),
					zap.Error(err))
			}
		}
	}
	return nil
}

func (s *Sweeper) process(ctx context.Context, category domain.DeadlineCategory, deal *domain.Deal) error {
	to, reason := category.Outcome(deal.EscrowStatus)

	// A failed assertion means a stale read or a bug; skip this deal,
	// never retry blindly.
	if err := domain.AssertAllowed(deal.EscrowStatus, to); err != nil {
		return err
	}

	var claimed bool
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		now := s.now()
		var err error
		claimed, err = s.dealRepo.ClaimStage(ctx, deal.ID, domain.StageClaim{
			From:         deal.EscrowStatus,
			To:           to,
			CancelReason: &reason,
			StalledAt:    &now,
		})
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}
		if to == domain.StageCanceled {
			// release anything escrowed; a no-op for unfunded deals
			return s.escrow.Refund(ctx, deal, reason)
		}
		// DISPUTED keeps the wallet open for manual resolution
		return nil
	})
	if err != nil {
		return err
	}
	if !claimed {
		// another worker or a user action moved the deal first
		return nil
	}

	zap.L().Info("deal swept",
		zap.String("deal_id", deal.ID.String()),
		zap.String("category", string(category)),
		zap.String("outcome", string(to)),
		zap.String("reason", string(reason)))

	s.notify(ctx, deal, to, reason)
	return nil
}

// notify is best-effort: the cancellation is already committed and a
// messaging failure must not roll it back.
func (s *Sweeper) notify(ctx context.Context, deal *domain.Deal, to domain.Stage, reason domain.CancelReason) {
	templateKey := "deal_canceled"
	if to == domain.StageDisputed {
		templateKey = "deal_disputed"
	}
	args := map[string]any{
		"deal_id": deal.ID.String(),
		"reason":  string(reason),
	}
	for _, userID := range []int64{deal.AdvertiserUserID, deal.PublisherOwnerUserID} {
		if err := s.notifier.Notify(ctx, userID, templateKey, args); err != nil {
			zap.L().Warn("failed to notify party",
				zap.String("deal_id", deal.ID.String()),
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
	}
}

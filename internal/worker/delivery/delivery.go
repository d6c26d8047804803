// Package delivery claims SCHEDULED deals whose post time has arrived
// and drives them through POSTING. A deal is never left resting in
// POSTING: every path out of the claim ends in POSTED_VERIFYING or in
// CANCELED with a refund before the iteration finishes.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/fee"
	"github.com/dealgora/dealgora/internal/pg"
	"github.com/dealgora/dealgora/internal/service/dealservice"
	"github.com/dealgora/dealgora/internal/service/escrowservice"
)

// Escrow covers the two money moves this worker triggers: refund on a
// failed posting, release after the visibility window.
type Escrow interface {
	Refund(ctx context.Context, deal *domain.Deal, reason domain.CancelReason) error
	Release(ctx context.Context, deal *domain.Deal) (fee.Breakdown, error)
}

type Worker struct {
	dealRepo      dealservice.DealRepo
	escrow        Escrow
	poster        collab.Poster
	notifier      collab.Notifier
	txManager     pg.TXManager
	batchLimit    int
	lookahead     time.Duration
	collabTimeout time.Duration
	now           func() time.Time
}

func New(dealRepo dealservice.DealRepo, escrow Escrow, poster collab.Poster, notifier collab.Notifier,
	txManager pg.TXManager, batchLimit int, lookahead, collabTimeout time.Duration) *Worker {
	return &Worker{
		dealRepo:      dealRepo,
		escrow:        escrow,
		poster:        poster,
		notifier:      notifier,
		txManager:     txManager,
		batchLimit:    batchLimit,
		lookahead:     lookahead,
		collabTimeout: collabTimeout,
		now:           time.Now,
	}
}

func (w *Worker) RunOnce(ctx context.Context) error {
	if err := w.postDue(ctx); err != nil {
		return err
	}
	return w.releaseDue(ctx)
}

func (w *Worker) postDue(ctx context.Context) error {
	deals, err := w.dealRepo.FindDueScheduled(ctx, w.now().Add(w.lookahead), w.batchLimit)
	if err != nil {
		return fmt.Errorf("select due deals: %w", err)
	}

	var g errgroup.Group
	for i := range deals {
		deal := deals[i]
		g.Go(func() error {
			if err := w.post(ctx, &deal); err != nil {
				zap.L().Error("delivery failed for deal",
					zap.String("deal_id", deal.ID.String()),
					zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

func (w *Worker) post(ctx context.Context, deal *domain.Deal) error {
	claimed, err := w.dealRepo.ClaimStage(ctx, deal.ID, domain.StageClaim{
		From: domain.StageScheduled,
		To:   domain.StagePosting,
	})
	if err != nil {
		return err
	}
	if !claimed {
		// another worker owns this deal now
		return nil
	}
	deal.EscrowStatus = domain.StagePosting
	deal.Status = domain.StatusActive

	cctx, cancel := context.WithTimeout(ctx, w.collabTimeout)
	err = w.poster.CheckCanPost(cctx, deal.ListingSnapshot.ChannelChatID)
	cancel()
	if err != nil {
		return w.cancelWithRefund(ctx, deal, domain.ReasonRightsRevoked, err)
	}

	cctx, cancel = context.WithTimeout(ctx, w.collabTimeout)
	messageID, err := w.poster.Publish(cctx, deal)
	cancel()
	if err != nil {
		// a timeout here is treated like an explicit failure; the deal
		// must not stay in POSTING
		return w.cancelWithRefund(ctx, deal, domain.ReasonDeliveryFailed, err)
	}

	publishedAt := w.now()
	mustRemain := publishedAt.Add(deal.ListingSnapshot.VisibleFor)
	claimed, err = w.dealRepo.ClaimStage(ctx, deal.ID, domain.StageClaim{
		From:               domain.StagePosting,
		To:                 domain.StagePostedVerifying,
		PublishedMessageID: &messageID,
		PublishedAt:        &publishedAt,
		MustRemainUntil:    &mustRemain,
	})
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("lost POSTING ownership of deal %s after publish", deal.ID)
	}

	zap.L().Info("deal posted",
		zap.String("deal_id", deal.ID.String()),
		zap.Int64("message_id", messageID),
		zap.Time("must_remain_until", mustRemain))
	w.notify(ctx, deal, "deal_posted")
	return nil
}

func (w *Worker) cancelWithRefund(ctx context.Context, deal *domain.Deal, reason domain.CancelReason, cause error) error {
	deliveryErr := cause.Error()
	err := w.txManager.Begin(ctx, func(ctx context.Context) error {
		now := w.now()
		claimed, err := w.dealRepo.ClaimStage(ctx, deal.ID, domain.StageClaim{
			From:          deal.EscrowStatus,
			To:            domain.StageCanceled,
			CancelReason:  &reason,
			DeliveryError: &deliveryErr,
			StalledAt:     &now,
		})
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("can't cancel deal %s out of %s", deal.ID, deal.EscrowStatus)
		}
		return w.escrow.Refund(ctx, deal, reason)
	})
	if err != nil {
		return err
	}

	zap.L().Warn("deal canceled during delivery",
		zap.String("deal_id", deal.ID.String()),
		zap.String("reason", string(reason)),
		zap.String("cause", deliveryErr))
	w.notify(ctx, deal, "deal_canceled")
	return nil
}

// releaseDue pays out deals whose agreed visibility window has passed.
func (w *Worker) releaseDue(ctx context.Context) error {
	deals, err := w.dealRepo.FindVerifyingDue(ctx, w.now(), w.batchLimit)
	if err != nil {
		return fmt.Errorf("select deals due for release: %w", err)
	}
	for i := range deals {
		deal := deals[i]
		if _, err := w.escrow.Release(ctx, &deal); err != nil {
			if errors.Is(err, escrowservice.ErrClaimLost) {
				continue
			}
			zap.L().Error("release failed for deal",
				zap.String("deal_id", deal.ID.String()),
				zap.Error(err))
			continue
		}
		w.notify(ctx, &deal, "deal_released")
	}
	return nil
}

func (w *Worker) notify(ctx context.Context, deal *domain.Deal, templateKey string) {
	args := map[string]any{
		"deal_id": deal.ID.String(),
	}
	for _, userID := range []int64{deal.AdvertiserUserID, deal.PublisherOwnerUserID} {
		if err := w.notifier.Notify(ctx, userID, templateKey, args); err != nil {
			zap.L().Warn("failed to notify party",
				zap.String("deal_id", deal.ID.String()),
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
	}
}

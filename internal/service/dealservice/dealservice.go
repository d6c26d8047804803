package dealservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/fee"
	"github.com/dealgora/dealgora/internal/pg"
)

type DealRepo interface {
	Save(ctx context.Context, deal *domain.Deal) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	ClaimStage(ctx context.Context, dealID uuid.UUID, claim domain.StageClaim) (bool, error)
	FindPastDeadline(ctx context.Context, category domain.DeadlineCategory, now time.Time, limit int) ([]domain.Deal, error)
	FindApproachingDeadline(ctx context.Context, category domain.DeadlineCategory, now, until time.Time, limit int) ([]domain.Deal, error)
	FindScheduledApproaching(ctx context.Context, now, until time.Time, limit int) ([]domain.Deal, error)
	FindDueScheduled(ctx context.Context, until time.Time, limit int) ([]domain.Deal, error)
	FindVerifyingDue(ctx context.Context, now time.Time, limit int) ([]domain.Deal, error)
}

// Escrow is the slice of the escrow ledger this service needs: funding
// on payment confirmation, refund on cancellation.
type Escrow interface {
	Fund(ctx context.Context, deal *domain.Deal) (fee.Breakdown, error)
	Refund(ctx context.Context, deal *domain.Deal, reason domain.CancelReason) error
}

// Deadlines carries the configured durations each action transition
// arms.
type Deadlines struct {
	Idle        time.Duration
	Creative    time.Duration
	AdminReview time.Duration
	Payment     time.Duration
}

var (
	ErrDealNotFound = errors.New("deal not found")
	ErrClaimLost    = errors.New("stage claim lost")
)

type Service struct {
	repo      DealRepo
	escrow    Escrow
	listings  collab.ListingSource
	txManager pg.TXManager
	deadlines Deadlines
	now       func() time.Time
}

func New(repo DealRepo, escrow Escrow, listings collab.ListingSource, txManager pg.TXManager, deadlines Deadlines) *Service {
	return &Service{
		repo:      repo,
		escrow:    escrow,
		listings:  listings,
		txManager: txManager,
		deadlines: deadlines,
		now:       time.Now,
	}
}

// Create opens a DRAFT deal for an advertiser against a listing. The
// listing terms are snapshotted here and never re-read.
func (s *Service) Create(ctx context.Context, advertiserUserID int64, listingID uuid.UUID) (*domain.Deal, error) {
	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		zap.L().Error("can't fetch listing", zap.String("listing_id", listingID.String()), zap.Error(err))
		return nil, err
	}

	now := s.now()
	idleExpires := now.Add(s.deadlines.Idle)
	deal := &domain.Deal{
		ID:                   uuid.New(),
		AdvertiserUserID:     advertiserUserID,
		PublisherOwnerUserID: listing.OwnerUserID,
		ListingID:            listingID,
		ChannelID:            listing.ChannelID,
		Status:               domain.StatusPending,
		EscrowStatus:         domain.StageDraft,
		EscrowAmountNano:     listing.Snapshot.PriceNano,
		EscrowCurrency:       listing.Snapshot.Currency,
		IdleExpiresAt:        &idleExpires,
		LastActivityAt:       now,
		ListingSnapshot:      listing.Snapshot,
		CreatedAt:            now,
	}

	if err := s.repo.Save(ctx, deal); err != nil {
		return nil, err
	}
	zap.L().Info("deal created",
		zap.String("deal_id", deal.ID.String()),
		zap.String("listing_id", listingID.String()),
		zap.Int64("amount_nano", deal.EscrowAmountNano))
	return deal, nil
}

// advance is the shared guarded-transition path: read, assert against
// the stage graph, then claim conditionally on the stage just read.
func (s *Service) advance(ctx context.Context, dealID uuid.UUID, to domain.Stage, mutate func(deal *domain.Deal, claim *domain.StageClaim)) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	if err := domain.AssertAllowed(deal.EscrowStatus, to); err != nil {
		zap.L().Error("illegal deal transition",
			zap.String("deal_id", dealID.String()),
			zap.String("from", string(deal.EscrowStatus)),
			zap.String("to", string(to)))
		return nil, err
	}

	claim := domain.StageClaim{From: deal.EscrowStatus, To: to}
	idleExpires := s.now().Add(s.deadlines.Idle)
	claim.IdleExpiresAt = &idleExpires
	if mutate != nil {
		mutate(deal, &claim)
	}

	claimed, err := s.repo.ClaimStage(ctx, dealID, claim)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrClaimLost
	}

	deal.EscrowStatus = to
	deal.Status = domain.CoarseStatus(to)
	deal.LastActivityAt = s.now()
	return deal, nil
}

// Schedule fixes the agreed post time.
func (s *Service) Schedule(ctx context.Context, dealID uuid.UUID, at time.Time) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageWaitingCreative, func(deal *domain.Deal, claim *domain.StageClaim) {
		claim.ScheduledAt = &at
		deadline := s.now().Add(s.deadlines.Creative)
		claim.CreativeDeadlineAt = &deadline
	})
}

// Submit moves DRAFT into the scheduling step once the advertiser has
// committed brief and terms.
func (s *Service) Submit(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageWaitingSchedule, nil)
}

func (s *Service) SubmitCreative(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageCreativeSubmitted, func(deal *domain.Deal, claim *domain.StageClaim) {
		deadline := s.now().Add(s.deadlines.AdminReview)
		claim.AdminReviewDeadlineAt = &deadline
	})
}

func (s *Service) StartReview(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageAdminReview, nil)
}

func (s *Service) RequestChanges(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageChangesRequested, func(deal *domain.Deal, claim *domain.StageClaim) {
		deadline := s.now().Add(s.deadlines.Creative)
		claim.CreativeDeadlineAt = &deadline
	})
}

// Approve accepts the creative and opens the payment window.
func (s *Service) Approve(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StageAwaitingPayment, func(deal *domain.Deal, claim *domain.StageClaim) {
		deadline := s.now().Add(s.deadlines.Payment)
		claim.PaymentDeadlineAt = &deadline
	})
}

func (s *Service) StartPayment(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	return s.advance(ctx, dealID, domain.StagePaymentPending, nil)
}

// ConfirmFunds records the escrow credit and advances the funded deal
// straight to SCHEDULED, where the delivery worker picks it up. The
// claim, the credit and the advance commit as one transaction: a
// funding failure rolls the deal back to PAYMENT_PENDING rather than
// leaving it resting in FUNDS_CONFIRMED, which no worker revisits.
func (s *Service) ConfirmFunds(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	var deal *domain.Deal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		deal, err = s.advance(ctx, dealID, domain.StageFundsConfirmed, nil)
		if err != nil {
			return err
		}
		if _, err = s.escrow.Fund(ctx, deal); err != nil {
			return err
		}
		deal, err = s.advance(ctx, dealID, domain.StageScheduled, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// Cancel is the user-action cancellation; automated paths live in the
// workers. The stage graph rejects canceling a terminal deal. The
// refund commits in the same transaction as the CANCELED claim; for
// unfunded deals it is a no-op.
func (s *Service) Cancel(ctx context.Context, dealID uuid.UUID, reason domain.CancelReason) (*domain.Deal, error) {
	var deal *domain.Deal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		deal, err = s.advance(ctx, dealID, domain.StageCanceled, func(deal *domain.Deal, claim *domain.StageClaim) {
			claim.CancelReason = &reason
		})
		if err != nil {
			return err
		}
		return s.escrow.Refund(ctx, deal, reason)
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *Service) Get(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

package escrowservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/fee"
	"github.com/dealgora/dealgora/internal/pg"
)

type WalletRepo interface {
	CreateWallet(ctx context.Context, wallet *domain.EscrowWallet) (*domain.EscrowWallet, error)
	FindByDealID(ctx context.Context, dealID uuid.UUID) (*domain.EscrowWallet, error)
	LockByDealID(ctx context.Context, dealID uuid.UUID) (*domain.EscrowWallet, error)
	CloseWallet(ctx context.Context, walletID uuid.UUID, closedAt time.Time) error
	InsertTransaction(ctx context.Context, tx *domain.LedgerTransaction) (bool, error)
	AvailableBalance(ctx context.Context, walletID uuid.UUID) (int64, error)
	TransactionsByDealID(ctx context.Context, dealID uuid.UUID) ([]domain.LedgerTransaction, error)
}

type DealRepo interface {
	ClaimStage(ctx context.Context, dealID uuid.UUID, claim domain.StageClaim) (bool, error)
}

var (
	ErrWalletNotFound = errors.New("escrow wallet not found")
	ErrWalletClosed   = errors.New("escrow wallet already closed")
	ErrClaimLost      = errors.New("stage claim lost")
)

type Service struct {
	walletRepo WalletRepo
	dealRepo   DealRepo
	txManager  pg.TXManager
	policy     fee.Policy
	now        func() time.Time
}

func New(walletRepo WalletRepo, dealRepo DealRepo, txManager pg.TXManager, policy fee.Policy) *Service {
	return &Service{
		walletRepo: walletRepo,
		dealRepo:   dealRepo,
		txManager:  txManager,
		policy:     policy,
		now:        time.Now,
	}
}

// Fund opens the deal's wallet (a no-op if one already exists) and
// records the advertiser's escrow credit: the deal amount plus fees,
// so the later payout debit is fully covered.
func (s *Service) Fund(ctx context.Context, deal *domain.Deal) (fee.Breakdown, error) {
	breakdown := fee.ComputeFees(deal.EscrowAmountNano, s.policy)

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.walletRepo.CreateWallet(ctx, &domain.EscrowWallet{
			ID:       uuid.New(),
			DealID:   deal.ID,
			Status:   domain.WalletOpen,
			OpenedAt: s.now(),
		})
		if err != nil {
			return err
		}
		_, err = s.walletRepo.InsertTransaction(ctx, &domain.LedgerTransaction{
			ID:         uuid.New(),
			WalletID:   wallet.ID,
			DealID:     deal.ID,
			Type:       domain.TxCredit,
			Direction:  domain.DirectionIn,
			AmountNano: breakdown.TotalDebit,
			Currency:   deal.EscrowCurrency,
			Status:     domain.TxCompleted,
			CreatedAt:  s.now(),
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to fund escrow", zap.String("deal_id", deal.ID.String()), zap.Error(err))
		return fee.Breakdown{}, err
	}
	return breakdown, nil
}

// Refund returns the full remaining escrowed amount and closes the
// wallet. Safe to call any number of times for the same deal: the
// refund row is unique per deal, so a retry after a crash inserts
// nothing and just re-closes the already closed wallet.
func (s *Service) Refund(ctx context.Context, deal *domain.Deal, reason domain.CancelReason) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.walletRepo.FindByDealID(ctx, deal.ID)
		if err != nil {
			return err
		}
		if wallet == nil {
			// nothing was ever escrowed, nothing to refund
			return nil
		}

		balance, err := s.walletRepo.AvailableBalance(ctx, wallet.ID)
		if err != nil {
			return err
		}
		if balance > 0 {
			inserted, err := s.walletRepo.InsertTransaction(ctx, &domain.LedgerTransaction{
				ID:         uuid.New(),
				WalletID:   wallet.ID,
				DealID:     deal.ID,
				Type:       domain.TxRefund,
				Direction:  domain.DirectionOut,
				AmountNano: balance,
				Currency:   deal.EscrowCurrency,
				Status:     domain.TxCompleted,
				CreatedAt:  s.now(),
			})
			if err != nil {
				return err
			}
			if !inserted {
				zap.L().Info("refund already recorded", zap.String("deal_id", deal.ID.String()))
			}
		}

		if err := s.walletRepo.CloseWallet(ctx, wallet.ID, s.now()); err != nil {
			return err
		}
		zap.L().Info("escrow refunded",
			zap.String("deal_id", deal.ID.String()),
			zap.String("reason", string(reason)),
			zap.Int64("amount_nano", balance))
		return nil
	})
}

// Release pays the publisher out of escrow and moves the deal to
// RELEASED, all in one serializable transaction: wallet row lock,
// balance aggregation, fee validation, payout and fee debits, wallet
// close, conditional stage claim. Two concurrent releases cannot both
// pass validation because the lock covers the check-then-act window.
func (s *Service) Release(ctx context.Context, deal *domain.Deal) (fee.Breakdown, error) {
	if err := domain.AssertAllowed(deal.EscrowStatus, domain.StageReleased); err != nil {
		return fee.Breakdown{}, err
	}

	var breakdown fee.Breakdown
	err := s.txManager.BeginSerializable(ctx, func(ctx context.Context) error {
		wallet, err := s.walletRepo.LockByDealID(ctx, deal.ID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return ErrWalletNotFound
		}
		if wallet.Status == domain.WalletClosed {
			return ErrWalletClosed
		}

		balance, err := s.walletRepo.AvailableBalance(ctx, wallet.ID)
		if err != nil {
			return err
		}
		breakdown, err = fee.ValidatePayout(deal.EscrowAmountNano, balance, s.policy)
		if err != nil {
			return err
		}

		claimed, err := s.dealRepo.ClaimStage(ctx, deal.ID, domain.StageClaim{
			From: deal.EscrowStatus,
			To:   domain.StageReleased,
		})
		if err != nil {
			return err
		}
		if !claimed {
			return ErrClaimLost
		}

		now := s.now()
		if _, err := s.walletRepo.InsertTransaction(ctx, &domain.LedgerTransaction{
			ID:         uuid.New(),
			WalletID:   wallet.ID,
			DealID:     deal.ID,
			Type:       domain.TxPayout,
			Direction:  domain.DirectionOut,
			AmountNano: deal.EscrowAmountNano,
			Currency:   deal.EscrowCurrency,
			Status:     domain.TxCompleted,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if fees := breakdown.ServiceFee + breakdown.NetworkFee; fees > 0 {
			if _, err := s.walletRepo.InsertTransaction(ctx, &domain.LedgerTransaction{
				ID:         uuid.New(),
				WalletID:   wallet.ID,
				DealID:     deal.ID,
				Type:       domain.TxFee,
				Direction:  domain.DirectionOut,
				AmountNano: fees,
				Currency:   deal.EscrowCurrency,
				Status:     domain.TxCompleted,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}
		return s.walletRepo.CloseWallet(ctx, wallet.ID, now)
	})
	if err != nil {
		return fee.Breakdown{}, err
	}

	zap.L().Info("escrow released",
		zap.String("deal_id", deal.ID.String()),
		zap.Int64("payout_nano", deal.EscrowAmountNano),
		zap.Int64("service_fee_nano", breakdown.ServiceFee),
		zap.Int64("network_fee_nano", breakdown.NetworkFee))
	return breakdown, nil
}

// Balance recomputes the deal's available escrow from the ledger.
func (s *Service) Balance(ctx context.Context, dealID uuid.UUID) (int64, error) {
	wallet, err := s.walletRepo.FindByDealID(ctx, dealID)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, ErrWalletNotFound
	}
	return s.walletRepo.AvailableBalance(ctx, wallet.ID)
}

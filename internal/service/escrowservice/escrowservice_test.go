package escrowservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/fee"
	"github.com/dealgora/dealgora/internal/pg"
)

var testPolicy = fee.Policy{
	Enabled:        true,
	ServiceFeeMode: fee.ModeProportional,
	ServiceFeeBPS:  500,
	NetworkFeeMode: fee.ModeFixed,
	NetworkFixed:   10_000_000,
}

type mocks struct {
	walletRepo *MockWalletRepo
	dealRepo   *MockDealRepo
	txManager  *pg.MockTXManager
}

func newService(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		walletRepo: NewMockWalletRepo(ctrl),
		dealRepo:   NewMockDealRepo(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	svc := New(m.walletRepo, m.dealRepo, m.txManager, testPolicy)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(ctrl.Finish)
	return svc, m
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func fundedDeal(stage domain.Stage) *domain.Deal {
	return &domain.Deal{
		ID:               uuid.New(),
		Status:           domain.CoarseStatus(stage),
		EscrowStatus:     stage,
		EscrowAmountNano: 1_000_000_000,
		EscrowCurrency:   "TON",
	}
}

func TestService_Fund(t *testing.T) {
	svc, m := newService(t)
	deal := fundedDeal(domain.StagePaymentPending)
	wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletOpen}

	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
	m.walletRepo.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).Return(wallet, nil)
	m.walletRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *domain.LedgerTransaction) (bool, error) {
			assert.Equal(t, domain.TxCredit, tx.Type)
			assert.Equal(t, domain.DirectionIn, tx.Direction)
			// 5% service fee plus fixed network fee on top of the amount
			assert.Equal(t, int64(1_000_000_000+50_000_000+10_000_000), tx.AmountNano)
			return true, nil
		})

	breakdown, err := svc.Fund(context.Background(), deal)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000_000), breakdown.ServiceFee)
	assert.Equal(t, int64(10_000_000), breakdown.NetworkFee)
	assert.Equal(t, int64(1_060_000_000), breakdown.TotalDebit)
}

func TestService_Refund(t *testing.T) {
	t.Run("refunds remaining balance and closes wallet", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StageFundsConfirmed)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletOpen}

		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), deal.ID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(1_060_000_000), nil)
		m.walletRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx *domain.LedgerTransaction) (bool, error) {
				assert.Equal(t, domain.TxRefund, tx.Type)
				assert.Equal(t, int64(1_060_000_000), tx.AmountNano)
				return true, nil
			})
		m.walletRepo.EXPECT().CloseWallet(gomock.Any(), wallet.ID, gomock.Any()).Return(nil)

		err := svc.Refund(context.Background(), deal, domain.ReasonPaymentDeadline)
		assert.NoError(t, err)
	})

	t.Run("no wallet means nothing to refund", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StageDraft)

		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), deal.ID).Return(nil, nil)

		err := svc.Refund(context.Background(), deal, domain.ReasonPaymentDeadline)
		assert.NoError(t, err)
	})

	t.Run("repeated refund re-closes without a second ledger row", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StageFundsConfirmed)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletClosed}

		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), deal.ID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(0), nil)
		m.walletRepo.EXPECT().CloseWallet(gomock.Any(), wallet.ID, gomock.Any()).Return(nil)

		err := svc.Refund(context.Background(), deal, domain.ReasonPaymentDeadline)
		assert.NoError(t, err)
	})
}

func TestService_Release(t *testing.T) {
	t.Run("pays out and claims the stage", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StagePostedVerifying)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletOpen}

		m.txManager.EXPECT().BeginSerializable(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().LockByDealID(gomock.Any(), deal.ID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(1_060_000_000), nil)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, domain.StageClaim{
			From: domain.StagePostedVerifying,
			To:   domain.StageReleased,
		}).Return(true, nil)

		var debits []domain.LedgerTransaction
		m.walletRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, tx *domain.LedgerTransaction) (bool, error) {
				debits = append(debits, *tx)
				return true, nil
			})
		m.walletRepo.EXPECT().CloseWallet(gomock.Any(), wallet.ID, gomock.Any()).Return(nil)

		breakdown, err := svc.Release(context.Background(), deal)
		require.NoError(t, err)
		assert.Equal(t, int64(1_060_000_000), breakdown.TotalDebit)
		require.Len(t, debits, 2)
		assert.Equal(t, domain.TxPayout, debits[0].Type)
		assert.Equal(t, int64(1_000_000_000), debits[0].AmountNano)
		assert.Equal(t, domain.TxFee, debits[1].Type)
		assert.Equal(t, int64(60_000_000), debits[1].AmountNano)
	})

	t.Run("rejects stages with no path to RELEASED", func(t *testing.T) {
		svc, _ := newService(t)
		deal := fundedDeal(domain.StageDraft)

		_, err := svc.Release(context.Background(), deal)
		var invalid *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("insufficient escrow fails validation", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StagePostedVerifying)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletOpen}

		m.txManager.EXPECT().BeginSerializable(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().LockByDealID(gomock.Any(), deal.ID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(500), nil)

		_, err := svc.Release(context.Background(), deal)
		var insufficient *fee.InsufficientBalanceError
		assert.ErrorAs(t, err, &insufficient)
	})

	t.Run("lost claim aborts the payout", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StagePostedVerifying)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletOpen}

		m.txManager.EXPECT().BeginSerializable(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().LockByDealID(gomock.Any(), deal.ID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(1_060_000_000), nil)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, gomock.Any()).Return(false, nil)

		_, err := svc.Release(context.Background(), deal)
		assert.ErrorIs(t, err, ErrClaimLost)
	})

	t.Run("closed wallet cannot pay out twice", func(t *testing.T) {
		svc, m := newService(t)
		deal := fundedDeal(domain.StagePostedVerifying)
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: deal.ID, Status: domain.WalletClosed}

		m.txManager.EXPECT().BeginSerializable(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.walletRepo.EXPECT().LockByDealID(gomock.Any(), deal.ID).Return(wallet, nil)

		_, err := svc.Release(context.Background(), deal)
		assert.ErrorIs(t, err, ErrWalletClosed)
	})
}

func TestService_Balance(t *testing.T) {
	t.Run("derives balance from the ledger", func(t *testing.T) {
		svc, m := newService(t)
		dealID := uuid.New()
		wallet := &domain.EscrowWallet{ID: uuid.New(), DealID: dealID, Status: domain.WalletOpen}

		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), dealID).Return(wallet, nil)
		m.walletRepo.EXPECT().AvailableBalance(gomock.Any(), wallet.ID).Return(int64(42), nil)

		balance, err := svc.Balance(context.Background(), dealID)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), balance)
	})

	t.Run("missing wallet", func(t *testing.T) {
		svc, m := newService(t)
		dealID := uuid.New()

		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), dealID).Return(nil, nil)

		_, err := svc.Balance(context.Background(), dealID)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newService(t)
		dealID := uuid.New()

		m.walletRepo.EXPECT().FindByDealID(gomock.Any(), dealID).Return(nil, errors.New("db down"))

		_, err := svc.Balance(context.Background(), dealID)
		assert.Error(t, err)
	})
}

package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
	"github.com/dealgora/dealgora/internal/service/dealservice"
)

type mocks struct {
	dealRepo  *dealservice.MockDealRepo
	escrow    *MockEscrow
	notifier  *collab.MockNotifier
	txManager *pg.MockTXManager
}

func newSweeper(t *testing.T) (*Sweeper, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		dealRepo:  dealservice.NewMockDealRepo(ctrl),
		escrow:    NewMockEscrow(ctrl),
		notifier:  collab.NewMockNotifier(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
	}
	s := New(m.dealRepo, m.escrow, m.notifier, m.txManager, 100)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(ctrl.Finish)
	return s, m
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func dealAt(stage domain.Stage) domain.Deal {
	return domain.Deal{
		ID:                   uuid.New(),
		AdvertiserUserID:     100,
		PublisherOwnerUserID: 200,
		Status:               domain.CoarseStatus(stage),
		EscrowStatus:         stage,
		EscrowAmountNano:     1_000_000_000,
		EscrowCurrency:       "TON",
	}
}

// expectEmptyCategories stubs the categories the test does not target.
func expectEmptyCategories(m mocks, except domain.DeadlineCategory) {
	for _, c := range domain.Categories {
		if c == except {
			continue
		}
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), c, gomock.Any(), 100).Return(nil, nil)
	}
}

func TestSweeper_RunOnce(t *testing.T) {
	t.Run("cancels an idle deal and refunds", func(t *testing.T) {
		s, m := newSweeper(t)
		deal := dealAt(domain.StageDraft)

		expectEmptyCategories(m, domain.CategoryIdle)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryIdle, gomock.Any(), 100).
			Return([]domain.Deal{deal}, nil)
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, claim domain.StageClaim) (bool, error) {
				assert.Equal(t, domain.StageDraft, claim.From)
				assert.Equal(t, domain.StageCanceled, claim.To)
				require.NotNil(t, claim.CancelReason)
				assert.Equal(t, domain.ReasonIdleTimeout, *claim.CancelReason)
				return true, nil
			})
		m.escrow.EXPECT().Refund(gomock.Any(), gomock.Any(), domain.ReasonIdleTimeout).Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), int64(100), "deal_canceled", gomock.Any()).Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), int64(200), "deal_canceled", gomock.Any()).Return(nil)

		assert.NoError(t, s.RunOnce(context.Background()))
	})

	t.Run("stalled PAYMENT_PENDING goes to DISPUTED without refund", func(t *testing.T) {
		s, m := newSweeper(t)
		deal := dealAt(domain.StagePaymentPending)

		expectEmptyCategories(m, domain.CategoryPayment)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryPayment, gomock.Any(), 100).
			Return([]domain.Deal{deal}, nil)
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, claim domain.StageClaim) (bool, error) {
				assert.Equal(t, domain.StageDisputed, claim.To)
				require.NotNil(t, claim.CancelReason)
				assert.Equal(t, domain.ReasonPaymentStalled, *claim.CancelReason)
				return true, nil
			})
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), "deal_disputed", gomock.Any()).Return(nil).Times(2)

		assert.NoError(t, s.RunOnce(context.Background()))
	})

	t.Run("lost claim skips refund and notification", func(t *testing.T) {
		s, m := newSweeper(t)
		deal := dealAt(domain.StageAwaitingPayment)

		expectEmptyCategories(m, domain.CategoryPayment)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryPayment, gomock.Any(), 100).
			Return([]domain.Deal{deal}, nil)
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, gomock.Any()).Return(false, nil)

		assert.NoError(t, s.RunOnce(context.Background()))
	})

	t.Run("stale candidate in a terminal stage is skipped", func(t *testing.T) {
		s, m := newSweeper(t)
		deal := dealAt(domain.StageCanceled)

		expectEmptyCategories(m, domain.CategoryIdle)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryIdle, gomock.Any(), 100).
			Return([]domain.Deal{deal}, nil)

		assert.NoError(t, s.RunOnce(context.Background()))
	})

	t.Run("notification failure does not fail the sweep", func(t *testing.T) {
		s, m := newSweeper(t)
		deal := dealAt(domain.StageWaitingCreative)

		expectEmptyCategories(m, domain.CategoryCreative)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryCreative, gomock.Any(), 100).
			Return([]domain.Deal{deal}, nil)
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), deal.ID, gomock.Any()).Return(true, nil)
		m.escrow.EXPECT().Refund(gomock.Any(), gomock.Any(), domain.ReasonCreativeDeadline).Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), "deal_canceled", gomock.Any()).
			Return(errors.New("telegram down")).Times(2)

		assert.NoError(t, s.RunOnce(context.Background()))
	})

	t.Run("candidate select failure aborts the run", func(t *testing.T) {
		s, m := newSweeper(t)

		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryIdle, gomock.Any(), 100).
			Return(nil, errors.New("db down"))

		assert.Error(t, s.RunOnce(context.Background()))
	})

	t.Run("one failing deal does not block the batch", func(t *testing.T) {
		s, m := newSweeper(t)
		bad := dealAt(domain.StageDraft)
		good := dealAt(domain.StageDraft)

		expectEmptyCategories(m, domain.CategoryIdle)
		m.dealRepo.EXPECT().FindPastDeadline(gomock.Any(), domain.CategoryIdle, gomock.Any(), 100).
			Return([]domain.Deal{bad, good}, nil)
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx).Times(2)
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), bad.ID, gomock.Any()).Return(false, errors.New("db down"))
		m.dealRepo.EXPECT().ClaimStage(gomock.Any(), good.ID, gomock.Any()).Return(true, nil)
		m.escrow.EXPECT().Refund(gomock.Any(), gomock.Any(), domain.ReasonIdleTimeout).Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), "deal_canceled", gomock.Any()).Return(nil).Times(2)

		assert.NoError(t, s.RunOnce(context.Background()))
	})
}

package walletrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
)

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

func (r *Repository) CreateWallet(ctx context.Context, wallet *domain.EscrowWallet) (*domain.EscrowWallet, error) {
	query := `
        INSERT INTO escrow_wallets (id, deal_id, status, opened_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (deal_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, wallet.ID, wallet.DealID, wallet.Status, wallet.OpenedAt)
	if err != nil {
		zap.L().Error("can't create wallet", zap.Error(err))
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// wallet already opened for this deal, return the existing one
		return r.FindByDealID(ctx, wallet.DealID)
	}
	return wallet, nil
}

func (r *Repository) FindByDealID(ctx context.Context, dealID uuid.UUID) (*domain.EscrowWallet, error) {
	query := `
        SELECT id, deal_id, status, opened_at, closed_at
        FROM escrow_wallets
        WHERE deal_id = $1
    `
	row := r.db.QueryRow(ctx, query, dealID)
	var wallet domain.EscrowWallet
	err := row.Scan(&wallet.ID, &wallet.DealID, &wallet.Status, &wallet.OpenedAt, &wallet.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// LockByDealID takes a row lock on the wallet for the duration of the
// surrounding transaction. The payout path locks before reading the
// balance so two concurrent payouts cannot both pass validation.
func (r *Repository) LockByDealID(ctx context.Context, dealID uuid.UUID) (*domain.EscrowWallet, error) {
	query := `
        SELECT id, deal_id, status, opened_at, closed_at
        FROM escrow_wallets
        WHERE deal_id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, dealID)
	var wallet domain.EscrowWallet
	err := row.Scan(&wallet.ID, &wallet.DealID, &wallet.Status, &wallet.OpenedAt, &wallet.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// CloseWallet is idempotent: closing an already closed wallet is a
// no-op because cancellation paths may race manual cleanup.
func (r *Repository) CloseWallet(ctx context.Context, walletID uuid.UUID, closedAt time.Time) error {
	query := `
        UPDATE escrow_wallets
        SET status = $2, closed_at = $3
        WHERE id = $1 AND status <> $2
    `
	_, err := r.db.Exec(ctx, query, walletID, domain.WalletClosed, closedAt)
	if err != nil {
		zap.L().Error("can't close wallet", zap.Error(err))
		return err
	}
	return nil
}

// InsertTransaction appends a ledger row. For REFUND rows the partial
// unique index on deal_id turns retries into no-ops; inserted=false
// reports exactly that.
func (r *Repository) InsertTransaction(ctx context.Context, tx *domain.LedgerTransaction) (bool, error) {
	query := `
        INSERT INTO ledger_transactions (id, wallet_id, deal_id, type, direction, amount_nano, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query,
		tx.ID, tx.WalletID, tx.DealID, tx.Type, tx.Direction, tx.AmountNano, tx.Currency, tx.Status, tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't insert ledger transaction", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AvailableBalance is always derived from the transaction log:
// completed credits minus non-failed debits. There is no running
// counter to drift.
func (r *Repository) AvailableBalance(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `
        SELECT COALESCE(SUM(
            CASE
                WHEN direction = 'IN' AND status = 'COMPLETED' THEN amount_nano
                WHEN direction = 'OUT' AND status <> 'FAILED' THEN -amount_nano
                ELSE 0
            END
        ), 0)
        FROM ledger_transactions
        WHERE wallet_id = $1
    `
	var balance int64
	if err := r.db.QueryRow(ctx, query, walletID).Scan(&balance); err != nil {
		zap.L().Error("can't compute wallet balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) TransactionsByDealID(ctx context.Context, dealID uuid.UUID) ([]domain.LedgerTransaction, error) {
	query := `
        SELECT id, wallet_id, deal_id, type, direction, amount_nano, currency, status, created_at
        FROM ledger_transactions
        WHERE deal_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, dealID)
	if err != nil {
		zap.L().Error("can't fetch ledger transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		err := rows.Scan(&tx.ID, &tx.WalletID, &tx.DealID, &tx.Type, &tx.Direction, &tx.AmountNano, &tx.Currency, &tx.Status, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ledger transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

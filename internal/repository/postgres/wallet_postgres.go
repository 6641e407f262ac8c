package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const walletTxColumns = `id, partner_id, kind, amount, balance_after, reference, description, created_at`

// WalletPostgres is a PostgreSQL implementation of repository.WalletRepository.
type WalletPostgres struct {
	db *sql.DB
}

// NewWalletPostgres creates a new WalletPostgres repository.
func NewWalletPostgres(db *sql.DB) *WalletPostgres {
	return &WalletPostgres{db: db}
}

var _ repository.WalletRepository = (*WalletPostgres)(nil)

func scanWalletTx(s scanner) (*model.WalletTransaction, error) {
	var wt model.WalletTransaction
	if err := s.Scan(
		&wt.ID,
		&wt.PartnerID,
		&wt.Kind,
		&wt.Amount,
		&wt.BalanceAfter,
		&wt.Reference,
		&wt.Description,
		&wt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &wt, nil
}

// Get fetches a partner's wallet.
func (r *WalletPostgres) Get(ctx context.Context, partnerID string) (*model.LeadWallet, error) {
	const q = `SELECT partner_id, balance, currency, updated_at FROM lead_wallets WHERE partner_id = $1`
	var w model.LeadWallet
	if err := r.db.QueryRowContext(ctx, q, partnerID).Scan(&w.PartnerID, &w.Balance, &w.Currency, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListTransactions returns a partner's ledger newest first.
func (r *WalletPostgres) ListTransactions(ctx context.Context, partnerID string, pq repository.PageQuery) (*repository.PageResult[model.WalletTransaction], error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallet_transactions WHERE partner_id = $1`, partnerID).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + walletTxColumns + `
		FROM wallet_transactions
		WHERE partner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, partnerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanWalletTx)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.WalletTransaction]{Items: items, Total: total}, nil
}

// TotalBalance sums every wallet on the platform.
func (r *WalletPostgres) TotalBalance(ctx context.Context) (model.Money, error) {
	var total model.Money
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(balance), 0) FROM lead_wallets`).Scan(&total)
	return total, err
}

func insertWalletTx(ctx context.Context, db queryer, wt *model.WalletTransaction) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO wallet_transactions (`+walletTxColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		wt.ID, wt.PartnerID, wt.Kind, wt.Amount, wt.BalanceAfter, wt.Reference, wt.Description, wt.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

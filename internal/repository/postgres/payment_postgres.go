package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const paymentColumns = `id, partner_id, amount, method, reference, status, reviewed_by, reviewed_at, note, created_at`

// PaymentPostgres is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentPostgres struct {
	db *sql.DB
}

// NewPaymentPostgres creates a new PaymentPostgres repository.
func NewPaymentPostgres(db *sql.DB) *PaymentPostgres {
	return &PaymentPostgres{db: db}
}

var _ repository.PaymentRepository = (*PaymentPostgres)(nil)

func scanPayment(s scanner) (*model.PaymentRequest, error) {
	var p model.PaymentRequest
	if err := s.Scan(
		&p.ID,
		&p.PartnerID,
		&p.Amount,
		&p.Method,
		&p.Reference,
		&p.Status,
		&p.ReviewedBy,
		&p.ReviewedAt,
		&p.Note,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a payment request.
func (r *PaymentPostgres) Create(ctx context.Context, p *model.PaymentRequest) (*model.PaymentRequest, error) {
	q := `
		INSERT INTO payment_requests (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + paymentColumns
	return scanPayment(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.PartnerID,
		p.Amount,
		p.Method,
		p.Reference,
		p.Status,
		p.ReviewedBy,
		p.ReviewedAt,
		p.Note,
		p.CreatedAt,
	))
}

// FindByID fetches a payment request by id.
func (r *PaymentPostgres) FindByID(ctx context.Context, id string) (*model.PaymentRequest, error) {
	return scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payment_requests WHERE id = $1`, id))
}

// List returns payment requests newest first.
func (r *PaymentPostgres) List(ctx context.Context, f repository.PaymentFilter, pq repository.PageQuery) (*repository.PageResult[model.PaymentRequest], error) {
	var (
		conds []string
		args  []any
	)
	if f.PartnerID != "" {
		args = append(args, f.PartnerID)
		conds = append(conds, fmt.Sprintf("partner_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_requests`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := `SELECT ` + paymentColumns + ` FROM payment_requests` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanPayment)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.PaymentRequest]{Items: items, Total: total}, nil
}

// Approve credits the wallet, creating it on first credit, and closes the request.
func (r *PaymentPostgres) Approve(ctx context.Context, id, reviewerID string, now time.Time) (*model.PaymentRequest, *model.WalletTransaction, error) {
	var (
		req *model.PaymentRequest
		wt  *model.WalletTransaction
	)
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		req, err = scanPayment(tx.QueryRowContext(ctx,
			`SELECT `+paymentColumns+` FROM payment_requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if req.Status != model.PaymentPending {
			return repository.ErrStateChanged
		}

		var balance model.Money
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO lead_wallets (partner_id, balance, currency, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (partner_id) DO UPDATE SET
				balance    = lead_wallets.balance + EXCLUDED.balance,
				updated_at = EXCLUDED.updated_at
			RETURNING balance`,
			req.PartnerID, req.Amount, model.Currency, now,
		).Scan(&balance); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		wt = &model.WalletTransaction{
			ID:           uuid.NewString(),
			PartnerID:    req.PartnerID,
			Kind:         model.TxCredit,
			Amount:       req.Amount,
			BalanceAfter: balance,
			Reference:    req.ID,
			Description:  "wallet top-up via " + req.Method,
			CreatedAt:    now,
		}
		if err := insertWalletTx(ctx, tx, wt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_requests SET status = 'APPROVED', reviewed_by = $2, reviewed_at = $3 WHERE id = $1`,
			req.ID, reviewerID, now); err != nil {
			return fmt.Errorf("approve payment request: %w", err)
		}
		req.Status = model.PaymentApproved
		req.ReviewedBy = &reviewerID
		req.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return req, wt, nil
}

// Reject closes a pending request without crediting.
func (r *PaymentPostgres) Reject(ctx context.Context, id, reviewerID, note string, now time.Time) (*model.PaymentRequest, error) {
	q := `
		UPDATE payment_requests SET status = 'REJECTED', reviewed_by = $2, reviewed_at = $3, note = $4
		WHERE id = $1 AND status = 'PENDING'
		RETURNING ` + paymentColumns
	req, err := scanPayment(r.db.QueryRowContext(ctx, q, id, reviewerID, now, note))
	if err == nil {
		return req, nil
	}
	if !isNoRows(err) {
		return nil, err
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, repository.ErrStateChanged
}

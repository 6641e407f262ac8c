package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// TopUpInput is a partner's request to add funds to the lead wallet.
type TopUpInput struct {
	Amount    model.Money
	Method    string
	Reference string
}

// WalletService exposes a partner's lead wallet.
type WalletService interface {
	// Get returns a zero balance for partners that were never credited.
	Get(ctx context.Context, partnerID string) (*model.LeadWallet, error)
	Transactions(ctx context.Context, partnerID string, limit, offset int) (*ListResult[model.WalletTransaction], error)
	RequestTopUp(ctx context.Context, partnerID string, in TopUpInput) (*model.PaymentRequest, error)
	ListMyRequests(ctx context.Context, partnerID string, status model.PaymentStatus, limit, offset int) (*ListResult[model.PaymentRequest], error)
}

type walletService struct {
	wallets  repository.WalletRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

// NewWalletService constructs a new WalletService.
func NewWalletService(wallets repository.WalletRepository, payments repository.PaymentRepository) WalletService {
	return &walletService{wallets: wallets, payments: payments, now: utcNow}
}

func (s *walletService) Get(ctx context.Context, partnerID string) (*model.LeadWallet, error) {
	if partnerID == "" {
		return nil, ErrIDRequired
	}
	w, err := s.wallets.Get(ctx, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.LeadWallet{PartnerID: partnerID, Currency: model.Currency}, nil
		}
		return nil, err
	}
	return w, nil
}

func (s *walletService) Transactions(ctx context.Context, partnerID string, limit, offset int) (*ListResult[model.WalletTransaction], error) {
	if partnerID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.wallets.ListTransactions(ctx, partnerID, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *walletService) RequestTopUp(ctx context.Context, partnerID string, in TopUpInput) (*model.PaymentRequest, error) {
	if partnerID == "" {
		return nil, ErrIDRequired
	}
	if in.Amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}
	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		return nil, invalid("payment method is required")
	}
	pr, err := s.payments.Create(ctx, &model.PaymentRequest{
		ID:        uuid.NewString(),
		PartnerID: partnerID,
		Amount:    in.Amount,
		Method:    method,
		Reference: strings.TrimSpace(in.Reference),
		Status:    model.PaymentPending,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}
	return pr, nil
}

func (s *walletService) ListMyRequests(ctx context.Context, partnerID string, status model.PaymentStatus, limit, offset int) (*ListResult[model.PaymentRequest], error) {
	if partnerID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.payments.List(ctx, repository.PaymentFilter{PartnerID: partnerID, Status: status}, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

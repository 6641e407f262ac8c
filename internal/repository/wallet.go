package repository

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// WalletRepository reads partner lead wallets. Balance changes happen only inside
// BookingRepository.BookOffer and PaymentRepository.Approve.
type WalletRepository interface {
	// Get returns sql.ErrNoRows when the partner has never been credited.
	Get(ctx context.Context, partnerID string) (*model.LeadWallet, error)
	ListTransactions(ctx context.Context, partnerID string, pq PageQuery) (*PageResult[model.WalletTransaction], error)
	TotalBalance(ctx context.Context) (model.Money, error)
}

// PaymentFilter narrows payment request listings. Zero values mean "any".
type PaymentFilter struct {
	PartnerID string
	Status    model.PaymentStatus
}

// PaymentRepository persists wallet top-up requests.
type PaymentRepository interface {
	Create(ctx context.Context, p *model.PaymentRequest) (*model.PaymentRequest, error)
	FindByID(ctx context.Context, id string) (*model.PaymentRequest, error)
	List(ctx context.Context, f PaymentFilter, pq PageQuery) (*PageResult[model.PaymentRequest], error)
	// Approve credits the partner's wallet and marks the request APPROVED atomically.
	// Returns ErrStateChanged when the request is not PENDING.
	Approve(ctx context.Context, id, reviewerID string, now time.Time) (*model.PaymentRequest, *model.WalletTransaction, error)
	// Reject marks a PENDING request REJECTED, else ErrStateChanged.
	Reject(ctx context.Context, id, reviewerID, note string, now time.Time) (*model.PaymentRequest, error)
}

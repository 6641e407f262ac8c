package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/notify"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// Stats is the admin dashboard summary.
type Stats struct {
	Users         map[model.Role]int           `json:"users"`
	Quotes        map[model.QuoteStatus]int    `json:"quotes"`
	Offers        map[model.OfferStatus]int    `json:"offers"`
	Shipments     map[model.ShipmentStatus]int `json:"shipments"`
	WalletBalance model.Money                  `json:"wallet_balance"`
	Currency      string                       `json:"currency"`
}

// Sweep runs one quote expiry pass immediately.
type Sweep interface {
	RunOnce(ctx context.Context) (int, error)
}

// AdminService holds the operations reserved for ADMIN users.
type AdminService interface {
	ListUsers(ctx context.Context, role model.Role, limit, offset int) (*ListResult[model.User], error)
	VerifyUser(ctx context.Context, id string) (*model.User, error)
	ListPaymentRequests(ctx context.Context, status model.PaymentStatus, limit, offset int) (*ListResult[model.PaymentRequest], error)
	// ApprovePayment credits the partner's wallet; only PENDING requests can be reviewed.
	ApprovePayment(ctx context.Context, adminID, id string) (*model.PaymentRequest, error)
	RejectPayment(ctx context.Context, adminID, id, note string) (*model.PaymentRequest, error)
	Stats(ctx context.Context) (*Stats, error)
	ExpireNow(ctx context.Context) (int, error)
}

type adminService struct {
	users     repository.UserRepository
	quotes    repository.QuoteRepository
	offers    repository.OfferRepository
	shipments repository.ShipmentRepository
	wallets   repository.WalletRepository
	payments  repository.PaymentRepository
	announce  announcer
	sweep     Sweep
	now       func() time.Time
}

// NewAdminService constructs a new AdminService.
func NewAdminService(repos Repositories, notifier notify.Publisher, sweep Sweep) AdminService {
	return &adminService{
		users:     repos.Users,
		quotes:    repos.Quotes,
		offers:    repos.Offers,
		shipments: repos.Shipments,
		wallets:   repos.Wallets,
		payments:  repos.Payments,
		announce:  announcer{users: repos.Users, notifier: notifier},
		sweep:     sweep,
		now:       utcNow,
	}
}

func (s *adminService) ListUsers(ctx context.Context, role model.Role, limit, offset int) (*ListResult[model.User], error) {
	if role != "" && !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	res, err := s.users.List(ctx, role, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *adminService) VerifyUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.users.SetVerified(ctx, id, true); err != nil {
		return nil, notFound(err)
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	logger.FromContext(ctx).Info("user verified", "component", "service", "user_id", id, "role", string(u.Role))
	s.announce.user(ctx, id, model.NotifyAccountVerified, "Account verified",
		"Your account has been verified by the BidChemz team.")
	return u, nil
}

func (s *adminService) ListPaymentRequests(ctx context.Context, status model.PaymentStatus, limit, offset int) (*ListResult[model.PaymentRequest], error) {
	res, err := s.payments.List(ctx, repository.PaymentFilter{Status: status}, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *adminService) ApprovePayment(ctx context.Context, adminID, id string) (*model.PaymentRequest, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	pr, tx, err := s.payments.Approve(ctx, id, adminID, s.now())
	if err != nil {
		return nil, reviewError(err)
	}
	logger.FromContext(ctx).Info("payment approved", "component", "service",
		"payment_request_id", id, "partner_id", pr.PartnerID, "amount", int64(pr.Amount), "balance_after", int64(tx.BalanceAfter))
	s.announce.user(ctx, pr.PartnerID, model.NotifyPaymentReviewed, "Top-up approved",
		fmt.Sprintf("INR %s was added to your lead wallet. New balance INR %s.", pr.Amount.Rupees(), tx.BalanceAfter.Rupees()))
	return pr, nil
}

func (s *adminService) RejectPayment(ctx context.Context, adminID, id, note string) (*model.PaymentRequest, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	pr, err := s.payments.Reject(ctx, id, adminID, note, s.now())
	if err != nil {
		return nil, reviewError(err)
	}
	msg := fmt.Sprintf("Your top-up request of INR %s was rejected.", pr.Amount.Rupees())
	if note != "" {
		msg += " " + note
	}
	s.announce.user(ctx, pr.PartnerID, model.NotifyPaymentReviewed, "Top-up rejected", msg)
	return pr, nil
}

func reviewError(err error) error {
	if errors.Is(err, repository.ErrStateChanged) {
		return fmt.Errorf("payment request already reviewed: %w", ErrInvalidState)
	}
	return notFound(err)
}

func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	quotes, err := s.quotes.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}
	offers, err := s.offers.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count offers: %w", err)
	}
	shipments, err := s.shipments.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count shipments: %w", err)
	}
	balance, err := s.wallets.TotalBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum wallets: %w", err)
	}
	return &Stats{
		Users:         users,
		Quotes:        quotes,
		Offers:        offers,
		Shipments:     shipments,
		WalletBalance: balance,
		Currency:      model.Currency,
	}, nil
}

func (s *adminService) ExpireNow(ctx context.Context) (int, error) {
	return s.sweep.RunOnce(ctx)
}

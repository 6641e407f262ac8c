// Package service holds the marketplace use cases. Services validate input, enforce
// who may see and change what, and orchestrate repositories, notifications and webhooks.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/notify"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("not found")
	ErrReaderNil           = errors.New("reader is nil")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrForbidden           = errors.New("forbidden")
	ErrNotVerified         = errors.New("partner account is not verified")
	ErrNotMatched          = errors.New("quote does not match partner capabilities")
	ErrConflict            = errors.New("already exists")
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrQuoteClosed         = errors.New("quote is no longer accepting offers")
	ErrInsufficientBalance = errors.New("insufficient lead wallet balance")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// Repositories bundles the persistence dependencies shared by the services.
// A service uses only the fields it needs; tests may leave the rest nil.
type Repositories struct {
	Users         repository.UserRepository
	Partners      repository.PartnerRepository
	Quotes        repository.QuoteRepository
	Offers        repository.OfferRepository
	Bookings      repository.BookingRepository
	Shipments     repository.ShipmentRepository
	Wallets       repository.WalletRepository
	Payments      repository.PaymentRepository
	Documents     repository.DocumentRepository
	Notifications repository.NotificationRepository
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func listResult[T any](res *repository.PageResult[T]) *ListResult[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: res.Total}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound translates a missing row into ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func utcNow() time.Time { return time.Now().UTC() }

// shortCode is an upper-case hex fragment of a fresh uuid.
func shortCode(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}

func canSeeAll(p auth.Principal) bool { return p.IsAdmin() }

// announcer fans a domain event out to in-app/email/SMS notifications and partner webhooks.
// Delivery problems are logged, never returned.
type announcer struct {
	users    repository.UserRepository
	partners repository.PartnerRepository
	notifier notify.Publisher
	hooks    webhook.Publisher
}

func (a announcer) user(ctx context.Context, userID string, kind model.NotificationKind, title, message string) {
	if a.notifier == nil || a.users == nil {
		return
	}
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("notification recipient lookup failed",
			"component", "service", "user_id", userID, "error", err)
		return
	}
	a.notifier.Notify(ctx, u, kind, title, message)
}

// webhook delivers to the partner's endpoint when one is configured.
func (a announcer) webhook(ctx context.Context, partnerID string, event webhook.Event, data any) {
	if a.hooks == nil || a.partners == nil {
		return
	}
	p, err := a.partners.Get(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Warn("webhook endpoint lookup failed",
				"component", "service", "partner_id", partnerID, "error", err)
		}
		return
	}
	a.webhookTo(p, event, data)
}

func (a announcer) webhookTo(p *model.PartnerProfile, event webhook.Event, data any) {
	if a.hooks == nil || p.WebhookURL == "" {
		return
	}
	a.hooks.Publish(webhook.Endpoint{URL: p.WebhookURL, Secret: p.WebhookSecret}, event, data)
}

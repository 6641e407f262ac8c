// Package app assembles the pieces shared by the API server and the admin CLI.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/config"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/filecrypt"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/handler"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/notify"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/pricing"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/quotetimer"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository/postgres"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/storage"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

// ErrMissingDocumentKey is returned in production when no document encryption key is set.
var ErrMissingDocumentKey = errors.New("DOCUMENT_ENCRYPTION_KEY is required in production")

// Repositories builds the Postgres-backed repositories.
func Repositories(db *sql.DB) service.Repositories {
	return service.Repositories{
		Users:         postgres.NewUserPostgres(db),
		Partners:      postgres.NewPartnerPostgres(db),
		Quotes:        postgres.NewQuotePostgres(db),
		Offers:        postgres.NewOfferPostgres(db),
		Bookings:      postgres.NewBookingPostgres(db),
		Shipments:     postgres.NewShipmentPostgres(db),
		Wallets:       postgres.NewWalletPostgres(db),
		Payments:      postgres.NewPaymentPostgres(db),
		Documents:     postgres.NewDocumentPostgres(db),
		Notifications: postgres.NewNotificationPostgres(db),
	}
}

// Calculator loads the rate card from path, or uses the built-in card when path is empty.
func Calculator(path string) (*pricing.Calculator, error) {
	card := pricing.DefaultRateCard()
	if path != "" {
		loaded, err := pricing.LoadRateCard(path)
		if err != nil {
			return nil, fmt.Errorf("load rate card: %w", err)
		}
		card = loaded
	}
	return pricing.NewCalculator(card), nil
}

// Cipher returns the document cipher, or nil (store plaintext) outside production
// when no key is configured.
func Cipher(cfg *config.AppConfig, log *slog.Logger) (*filecrypt.Cipher, error) {
	if cfg.Marketplace.DocumentKeyHex == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingDocumentKey
		}
		log.Warn("document encryption disabled: DOCUMENT_ENCRYPTION_KEY not set")
		return nil, nil
	}
	key, err := filecrypt.ParseHexKey(cfg.Marketplace.DocumentKeyHex)
	if err != nil {
		return nil, fmt.Errorf("document key: %w", err)
	}
	return filecrypt.NewCipher(key)
}

// Options carries the runtime collaborators Build cannot create from config alone.
type Options struct {
	DB       *sql.DB
	Store    storage.Storage
	Registry prometheus.Registerer
	Log      *slog.Logger
}

// Components is the fully wired use-case layer.
type Components struct {
	Tokens     *auth.Manager
	Services   handler.Services
	Sweeper    *quotetimer.Sweeper
	Dispatcher *webhook.Dispatcher
}

// Build wires repositories, pricing, webhooks, notifications and services.
// Store may be nil for callers that never touch documents.
func Build(cfg *config.AppConfig, opts Options) (*Components, error) {
	tokens, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	calc, err := Calculator(cfg.Marketplace.PricingRatesFile)
	if err != nil {
		return nil, err
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	sender, err := webhook.NewSender(cfg.Marketplace.WebhookTimeout, reg, opts.Log)
	if err != nil {
		return nil, fmt.Errorf("webhook sender: %w", err)
	}
	dispatcher := webhook.NewDispatcher(sender, cfg.Marketplace.WebhookTimeout+5*time.Second)

	repos := Repositories(opts.DB)
	notifier := notify.NewNotifier(repos.Notifications,
		notify.LogEmailSender{Log: opts.Log}, notify.LogSMSSender{Log: opts.Log})

	quotes := service.NewQuoteService(repos, notifier, dispatcher, calc, cfg.Marketplace.QuoteWindow)
	sweeper := quotetimer.NewSweeper(quotes, cfg.Marketplace.SweepInterval, opts.Log)

	svcs := handler.Services{
		Auth:          service.NewAuthService(repos.Users, tokens, cfg.Auth.BcryptCost),
		Partners:      service.NewPartnerService(repos.Partners),
		Quotes:        quotes,
		Offers:        service.NewOfferService(repos, notifier, dispatcher, calc),
		Shipments:     service.NewShipmentService(repos, notifier, dispatcher, cfg.Marketplace.ConfirmationTitle),
		Wallets:       service.NewWalletService(repos.Wallets, repos.Payments),
		Notifications: service.NewNotificationService(repos.Notifications),
		Admin:         service.NewAdminService(repos, notifier, sweeper),
	}
	if opts.Store != nil {
		cipher, err := Cipher(cfg, opts.Log)
		if err != nil {
			return nil, err
		}
		svcs.Documents = service.NewDocumentService(opts.Store, repos, cipher)
	}

	return &Components{Tokens: tokens, Services: svcs, Sweeper: sweeper, Dispatcher: dispatcher}, nil
}

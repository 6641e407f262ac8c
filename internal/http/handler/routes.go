package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/middleware"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Auth          service.AuthService
	Partners      service.PartnerService
	Quotes        service.QuoteService
	Offers        service.OfferService
	Shipments     service.ShipmentService
	Wallets       service.WalletService
	Documents     service.DocumentService
	Notifications service.NotificationService
	Admin         service.AdminService
}

// Limits configures the per-client rate limiter. Max <= 0 disables it.
type Limits struct {
	Max     int
	AuthMax int
	Window  time.Duration
	// Storage shares counters between replicas; nil keeps them in memory.
	Storage fiber.Storage
}

// Deps carries everything RegisterRoutes wires.
type Deps struct {
	DB             *sql.DB
	Tokens         middleware.TokenParser
	Services       Services
	Limits         Limits
	MaxUploadBytes int64
	// Metrics, when set, is served on /metrics.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, validate, call a service, map errors.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	s := d.Services
	api := app.Group("/api")

	authLimit := middleware.RateLimit(d.Limits.AuthMax, d.Limits.Window, d.Limits.Storage)
	api.Post("/auth/register", authLimit, Register(s.Auth))
	api.Post("/auth/login", authLimit, Login(s.Auth))

	// Everything below requires a session.
	secured := api.Group("", middleware.Auth(d.Tokens), middleware.RateLimit(d.Limits.Max, d.Limits.Window, d.Limits.Storage))

	trader := middleware.RequireRole(model.RoleTrader)
	partner := middleware.RequireRole(model.RolePartner)
	admin := middleware.RequireRole(model.RoleAdmin)

	secured.Get("/auth/me", Me(s.Auth))

	secured.Get("/partners/me/profile", partner, GetProfile(s.Partners))
	secured.Put("/partners/me/profile", partner, UpsertProfile(s.Partners))

	secured.Post("/quotes", trader, CreateQuote(s.Quotes))
	secured.Get("/quotes", ListQuotes(s.Quotes))
	secured.Get("/quotes/:id", GetQuote(s.Quotes))
	secured.Post("/quotes/:id/cancel", trader, CancelQuote(s.Quotes))
	secured.Get("/quotes/:id/offers", ListQuoteOffers(s.Offers))
	secured.Post("/quotes/:id/offers", partner, SubmitOffer(s.Offers))
	secured.Get("/quotes/:id/matches", QuoteMatches(s.Quotes))
	secured.Get("/quotes/:id/lead-cost", partner, LeadCostPreview(s.Quotes))

	secured.Get("/offers", partner, ListMyOffers(s.Offers))
	secured.Post("/offers/:id/withdraw", partner, WithdrawOffer(s.Offers))
	secured.Post("/offers/:id/select", trader, SelectOffer(s.Offers))

	secured.Get("/shipments", ListShipments(s.Shipments))
	secured.Get("/shipments/:id", GetShipment(s.Shipments))
	secured.Post("/shipments/:id/events", AddShipmentEvent(s.Shipments))
	secured.Get("/shipments/:id/confirmation", ShipmentConfirmation(s.Shipments))
	secured.Get("/track/:tracking", TrackShipment(s.Shipments))

	secured.Get("/wallet", partner, GetWallet(s.Wallets))
	secured.Get("/wallet/transactions", partner, WalletTransactions(s.Wallets))
	secured.Post("/wallet/payment-requests", partner, RequestTopUp(s.Wallets))
	secured.Get("/wallet/payment-requests", partner, ListMyPaymentRequests(s.Wallets))

	secured.Post("/documents", UploadDocument(s.Documents, d.MaxUploadBytes))
	secured.Get("/documents", ListDocuments(s.Documents))
	secured.Get("/documents/:id", GetDocument(s.Documents))
	secured.Get("/documents/:id/download", DownloadDocument(s.Documents))
	secured.Delete("/documents/:id", DeleteDocument(s.Documents))

	secured.Get("/notifications", ListNotifications(s.Notifications))
	secured.Post("/notifications/read-all", MarkAllNotificationsRead(s.Notifications))
	secured.Post("/notifications/:id/read", MarkNotificationRead(s.Notifications))

	adm := secured.Group("/admin", admin)
	adm.Get("/users", ListUsers(s.Admin))
	adm.Post("/users/:id/verify", VerifyUser(s.Admin))
	adm.Get("/payment-requests", ListPaymentRequests(s.Admin))
	adm.Post("/payment-requests/:id/approve", ApprovePayment(s.Admin))
	adm.Post("/payment-requests/:id/reject", RejectPayment(s.Admin))
	adm.Get("/stats", PlatformStats(s.Admin))
	adm.Post("/quotes/expire", ExpireQuotes(s.Admin))
}

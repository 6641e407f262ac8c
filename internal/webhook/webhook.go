// Package webhook delivers signed event notifications to logistics partners.
//
// Each delivery is a single JSON POST signed with HMAC-SHA256 over the exact body bytes.
// There are no retries: the outcome of the one attempt is logged and counted.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	HeaderEvent     = "X-BidChemz-Event"
	HeaderDelivery  = "X-BidChemz-Delivery"
	HeaderSignature = "X-BidChemz-Signature"

	signaturePrefix = "sha256="
)

// Event names a webhook event type.
type Event string

const (
	EventQuoteMatched    Event = "quote.matched"
	EventOfferAccepted   Event = "offer.accepted"
	EventOfferRejected   Event = "offer.rejected"
	EventShipmentUpdated Event = "shipment.updated"
)

// Endpoint is where and how a partner receives webhooks.
type Endpoint struct {
	URL    string
	Secret string
}

// Envelope is the JSON body of every delivery.
type Envelope struct {
	ID         string    `json:"id"`
	Event      Event     `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher fires events without blocking the caller.
type Publisher interface {
	Publish(ep Endpoint, event Event, data any)
}

// Sender performs webhook deliveries.
type Sender struct {
	client     *http.Client
	log        *slog.Logger
	deliveries *prometheus.CounterVec
	now        func() time.Time
}

// NewSender creates a Sender and registers its delivery counter on reg.
func NewSender(timeout time.Duration, reg prometheus.Registerer, log *slog.Logger) (*Sender, error) {
	s := &Sender{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Webhook delivery attempts by event and outcome.",
			},
			[]string{"event", "outcome"},
		),
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := reg.Register(s.deliveries); err != nil {
		return nil, err
	}
	return s, nil
}

// Send makes exactly one delivery attempt. Any non-2xx response is an error.
func (s *Sender) Send(ctx context.Context, ep Endpoint, event Event, data any) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: s.now(),
		Data:       data,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		s.record(event, "error")
		s.log.Warn("webhook_delivery_failed", "component", "webhook", "event", event,
			"delivery_id", env.ID, "url", ep.URL, "error", err.Error())
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, string(event))
	req.Header.Set(HeaderDelivery, env.ID)
	req.Header.Set(HeaderSignature, Sign(ep.Secret, body))

	start := time.Now()
	res, err := s.client.Do(req)
	if err != nil {
		s.record(event, "error")
		s.log.Warn("webhook_delivery_failed", "component", "webhook", "event", event,
			"delivery_id", env.ID, "url", ep.URL, "error", err.Error())
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		s.record(event, "rejected")
		s.log.Warn("webhook_delivery_rejected", "component", "webhook", "event", event,
			"delivery_id", env.ID, "url", ep.URL, "status", res.StatusCode)
		return fmt.Errorf("webhook endpoint returned %d", res.StatusCode)
	}

	s.record(event, "delivered")
	s.log.Info("webhook_delivered", "component", "webhook", "event", event,
		"delivery_id", env.ID, "url", ep.URL, "status", res.StatusCode,
		"latency_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *Sender) record(event Event, outcome string) {
	s.deliveries.WithLabelValues(string(event), outcome).Inc()
}

// Sign returns the signature header value for body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received signature header in constant time.
func VerifySignature(body []byte, header, secret string) bool {
	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(header))
}

// Dispatcher sends webhooks in the background so request handlers never wait on partners.
type Dispatcher struct {
	sender  *Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps sender. Each delivery gets its own timeout independent of the caller.
func NewDispatcher(sender *Sender, timeout time.Duration) *Dispatcher {
	return &Dispatcher{sender: sender, timeout: timeout}
}

var _ Publisher = (*Dispatcher)(nil)

// Publish fires one delivery in a goroutine. Endpoints without a URL are skipped.
func (d *Dispatcher) Publish(ep Endpoint, event Event, data any) {
	if ep.URL == "" {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		_ = d.sender.Send(ctx, ep, event, data)
	}()
}

// Wait blocks until every in-flight delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/invoice"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/notify"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

// EventInput is a tracking update.
type EventInput struct {
	Status   model.ShipmentStatus
	Location string
	Note     string
}

// File is generated content ready to stream to a client.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ShipmentService handles bookings after selection.
type ShipmentService interface {
	List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.Shipment], error)
	Get(ctx context.Context, p auth.Principal, id string) (*model.Shipment, error)
	Track(ctx context.Context, p auth.Principal, tracking string) (*model.Shipment, error)
	// AddEvent moves a shipment forward. Only the carrying partner reports progress;
	// admins may cancel.
	AddEvent(ctx context.Context, p auth.Principal, id string, in EventInput) (*model.Shipment, error)
	// Confirmation renders the booking confirmation PDF.
	Confirmation(ctx context.Context, p auth.Principal, id string) (*File, error)
}

type shipmentService struct {
	shipments repository.ShipmentRepository
	quotes    repository.QuoteRepository
	offers    repository.OfferRepository
	users     repository.UserRepository
	announce  announcer
	title     string
	now       func() time.Time
}

// NewShipmentService constructs a new ShipmentService. title heads the confirmation PDF.
func NewShipmentService(repos Repositories, notifier notify.Publisher, hooks webhook.Publisher, title string) ShipmentService {
	return &shipmentService{
		shipments: repos.Shipments,
		quotes:    repos.Quotes,
		offers:    repos.Offers,
		users:     repos.Users,
		announce:  announcer{users: repos.Users, partners: repos.Partners, notifier: notifier, hooks: hooks},
		title:     title,
		now:       utcNow,
	}
}

func participant(p auth.Principal, sh *model.Shipment) bool {
	return canSeeAll(p) || sh.TraderID == p.UserID || sh.PartnerID == p.UserID
}

func (s *shipmentService) List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.Shipment], error) {
	var f repository.ShipmentFilter
	switch p.Role {
	case model.RoleAdmin:
	case model.RoleTrader:
		f.TraderID = p.UserID
	case model.RolePartner:
		f.PartnerID = p.UserID
	default:
		return nil, ErrForbidden
	}
	res, err := s.shipments.List(ctx, f, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *shipmentService) Get(ctx context.Context, p auth.Principal, id string) (*model.Shipment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !participant(p, sh) {
		return nil, ErrForbidden
	}
	return sh, nil
}

func (s *shipmentService) Track(ctx context.Context, p auth.Principal, tracking string) (*model.Shipment, error) {
	tracking = strings.ToUpper(strings.TrimSpace(tracking))
	if tracking == "" {
		return nil, ErrIDRequired
	}
	sh, err := s.shipments.FindByTracking(ctx, tracking)
	if err != nil {
		return nil, notFound(err)
	}
	if !participant(p, sh) {
		// Tracking numbers of other parties are treated as unknown.
		return nil, ErrNotFound
	}
	return sh, nil
}

func (s *shipmentService) AddEvent(ctx context.Context, p auth.Principal, id string, in EventInput) (*model.Shipment, error) {
	sh, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	switch {
	case p.IsAdmin():
		if in.Status != model.ShipmentCancelled {
			return nil, ErrForbidden
		}
	case sh.PartnerID != p.UserID:
		return nil, ErrForbidden
	}
	if !sh.Status.CanTransition(in.Status) {
		return nil, fmt.Errorf("move shipment from %s to %s: %w", sh.Status, in.Status, ErrInvalidState)
	}

	ev := &model.ShipmentEvent{
		ID:         uuid.NewString(),
		ShipmentID: sh.ID,
		Status:     in.Status,
		Location:   strings.TrimSpace(in.Location),
		Note:       strings.TrimSpace(in.Note),
		CreatedAt:  s.now(),
	}
	if err := s.shipments.AddEvent(ctx, sh.Status, ev); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("add shipment event: %w", err)
	}

	updated, err := s.shipments.FindByID(ctx, sh.ID)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Shipment %s is now %s.", updated.TrackingNumber, updated.Status)
	if ev.Location != "" {
		msg = fmt.Sprintf("Shipment %s is now %s at %s.", updated.TrackingNumber, updated.Status, ev.Location)
	}
	s.announce.user(ctx, updated.TraderID, model.NotifyShipmentUpdated, "Shipment update", msg)
	if p.IsAdmin() {
		s.announce.user(ctx, updated.PartnerID, model.NotifyShipmentUpdated, "Shipment update", msg)
	}
	s.announce.webhook(ctx, updated.PartnerID, webhook.EventShipmentUpdated, ShipmentUpdatedEvent{
		ShipmentID:     updated.ID,
		TrackingNumber: updated.TrackingNumber,
		Status:         updated.Status,
		Location:       ev.Location,
		Note:           ev.Note,
		UpdatedAt:      ev.CreatedAt,
	})
	return updated, nil
}

func (s *shipmentService) Confirmation(ctx context.Context, p auth.Principal, id string) (*File, error) {
	sh, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	q, err := s.quotes.FindByID(ctx, sh.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote: %w", err)
	}
	o, err := s.offers.FindByID(ctx, sh.OfferID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}
	trader, err := s.users.FindByID(ctx, sh.TraderID)
	if err != nil {
		return nil, fmt.Errorf("load trader: %w", err)
	}
	partner, err := s.users.FindByID(ctx, sh.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("load partner: %w", err)
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, invoice.Confirmation{
		Title:       s.title,
		Shipment:    *sh,
		Quote:       *q,
		Offer:       *o,
		Trader:      *trader,
		Partner:     *partner,
		GeneratedAt: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}
	return &File{
		Filename:    invoice.Filename(sh.TrackingNumber),
		ContentType: "application/pdf",
		Content:     buf.Bytes(),
	}, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// BookingPostgres is a PostgreSQL implementation of repository.BookingRepository.
type BookingPostgres struct {
	db *sql.DB
}

// NewBookingPostgres creates a new BookingPostgres repository.
func NewBookingPostgres(db *sql.DB) *BookingPostgres {
	return &BookingPostgres{db: db}
}

var _ repository.BookingRepository = (*BookingPostgres)(nil)

// BookOffer locks quote, offer and wallet in that order and applies the booking.
func (r *BookingPostgres) BookOffer(ctx context.Context, p repository.BookingParams) (*repository.BookingResult, error) {
	var res repository.BookingResult
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		quote, err := scanQuote(tx.QueryRowContext(ctx,
			`SELECT `+quoteColumns+` FROM quotes WHERE id = $1 FOR UPDATE`, p.QuoteID))
		if err != nil {
			return err
		}
		if quote.TraderID != p.TraderID || !quote.Status.AcceptsOffers() || quote.Expired(p.Now) {
			return repository.ErrStateChanged
		}

		offer, err := scanOffer(tx.QueryRowContext(ctx,
			`SELECT `+offerColumns+` FROM offers WHERE id = $1 AND quote_id = $2 FOR UPDATE`, p.OfferID, p.QuoteID))
		if err != nil {
			return err
		}
		if offer.Status != model.OfferPending {
			return repository.ErrStateChanged
		}

		debit, err := debitWallet(ctx, tx, offer.PartnerID, p.LeadCost, quote.Reference, p.Now)
		if err != nil {
			return err
		}
		res.Debit = *debit

		if _, err := tx.ExecContext(ctx,
			`UPDATE offers SET status = 'ACCEPTED', lead_cost = $2, updated_at = $3 WHERE id = $1`,
			offer.ID, p.LeadCost, p.Now); err != nil {
			return fmt.Errorf("accept offer: %w", err)
		}
		offer.Status = model.OfferAccepted
		offer.LeadCost = p.LeadCost
		offer.UpdatedAt = p.Now
		res.Accepted = *offer

		rejected, err := rejectPending(ctx, tx, quote.ID, offer.ID, p.Now)
		if err != nil {
			return err
		}
		res.RejectedOffers = rejected

		if _, err := tx.ExecContext(ctx,
			`UPDATE quotes SET status = 'BOOKED', selected_offer_id = $2, updated_at = $3 WHERE id = $1`,
			quote.ID, offer.ID, p.Now); err != nil {
			return fmt.Errorf("book quote: %w", err)
		}
		quote.Status = model.QuoteBooked
		quote.SelectedOfferID = &offer.ID
		quote.UpdatedAt = p.Now
		res.Quote = *quote

		shipment := model.Shipment{
			ID:             p.ShipmentID,
			TrackingNumber: p.TrackingNumber,
			QuoteID:        quote.ID,
			OfferID:        offer.ID,
			TraderID:       quote.TraderID,
			PartnerID:      offer.PartnerID,
			Status:         model.ShipmentBooked,
			CreatedAt:      p.Now,
			UpdatedAt:      p.Now,
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shipments (`+shipmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			shipment.ID,
			shipment.TrackingNumber,
			shipment.QuoteID,
			shipment.OfferID,
			shipment.TraderID,
			shipment.PartnerID,
			shipment.Status,
			shipment.CreatedAt,
			shipment.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert shipment: %w", err)
		}

		ev := model.ShipmentEvent{
			ID:         uuid.NewString(),
			ShipmentID: shipment.ID,
			Status:     model.ShipmentBooked,
			Note:       "booking confirmed",
			CreatedAt:  p.Now,
		}
		if err := insertEvent(ctx, tx, &ev); err != nil {
			return err
		}
		shipment.Events = []model.ShipmentEvent{ev}
		res.Shipment = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// debitWallet charges the lead cost against a locked wallet row.
func debitWallet(ctx context.Context, tx *sql.Tx, partnerID string, amount model.Money, reference string, now time.Time) (*model.WalletTransaction, error) {
	var balance model.Money
	err := tx.QueryRowContext(ctx,
		`SELECT balance FROM lead_wallets WHERE partner_id = $1 FOR UPDATE`, partnerID).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrInsufficientBalance
		}
		return nil, err
	}
	if balance < amount {
		return nil, repository.ErrInsufficientBalance
	}

	balance -= amount
	if _, err := tx.ExecContext(ctx,
		`UPDATE lead_wallets SET balance = $2, updated_at = $3 WHERE partner_id = $1`,
		partnerID, balance, now); err != nil {
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	wt := &model.WalletTransaction{
		ID:           uuid.NewString(),
		PartnerID:    partnerID,
		Kind:         model.TxDebit,
		Amount:       amount,
		BalanceAfter: balance,
		Reference:    reference,
		Description:  "lead cost for quote " + reference,
		CreatedAt:    now,
	}
	if err := insertWalletTx(ctx, tx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

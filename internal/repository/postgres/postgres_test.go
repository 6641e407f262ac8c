package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func columns(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func quoteRow(q model.Quote) *sqlmock.Rows {
	return sqlmock.NewRows(columns(quoteColumns)).AddRow(
		q.ID, q.Reference, q.TraderID, q.CargoName, q.CASNumber, q.UNNumber, q.HazardClass,
		q.Quantity, string(q.Unit), q.Packaging, q.PickupCity, q.PickupRegion, q.DeliveryCity,
		q.DeliveryRegion, q.PickupDate, q.TemperatureControlled, q.SpecialInstructions,
		string(q.Status), nil, q.ExpiresAt, q.CreatedAt, q.UpdatedAt,
	)
}

func offerRow(rows *sqlmock.Rows, o model.Offer) *sqlmock.Rows {
	if rows == nil {
		rows = sqlmock.NewRows(columns(offerColumns))
	}
	return rows.AddRow(o.ID, o.QuoteID, o.PartnerID, int64(o.Price), o.Currency, o.TransitDays,
		o.ValidUntil, o.Remarks, string(o.Status), int64(o.LeadCost), o.CreatedAt, o.UpdatedAt)
}

func sampleQuote() model.Quote {
	return model.Quote{
		ID:           "q-1",
		Reference:    "QT-20260310-ABC123",
		TraderID:     "trader-1",
		CargoName:    "Sulphuric acid",
		HazardClass:  8,
		Quantity:     12,
		Unit:         model.UnitMetricTons,
		PickupCity:   "Mumbai",
		PickupRegion: "Maharashtra",
		DeliveryCity: "Chennai",
		PickupDate:   fixedNow.Add(72 * time.Hour),
		Status:       model.QuoteOffersReceived,
		ExpiresAt:    fixedNow.Add(time.Hour),
		CreatedAt:    fixedNow.Add(-time.Hour),
		UpdatedAt:    fixedNow.Add(-time.Hour),
	}
}

func sampleOffer(id, partner string) model.Offer {
	return model.Offer{
		ID:          id,
		QuoteID:     "q-1",
		PartnerID:   partner,
		Price:       4500000,
		Currency:    model.Currency,
		TransitDays: 3,
		ValidUntil:  fixedNow.Add(48 * time.Hour),
		Status:      model.OfferPending,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
}

func TestColumnsHelper(t *testing.T) {
	require.Equal(t, []string{"id", "user_id", "kind", "title", "message", "read", "created_at"}, columns(notificationColumns))
}

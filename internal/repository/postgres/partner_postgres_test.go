package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

var partnerCols = []string{"user_id", "company", "verified", "hazard_classes", "service_regions",
	"max_capacity_tons", "temperature_controlled", "rating", "subscription_tier",
	"webhook_url", "webhook_secret", "active", "updated_at"}

func TestPartnerPostgres_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerPostgres(db)

	mock.ExpectQuery(`WHERE p.user_id = \$1`).WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(partnerCols).AddRow(
			"p-1", "Move Logistics", true, []byte(`[3,8]`), []byte(`["Maharashtra","Gujarat"]`),
			25.0, true, 4.6, "PREMIUM", "https://hooks.move.in/bid", "s3cret", true, fixedNow))

	p, err := repo.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, p.HazardClasses)
	assert.Equal(t, []string{"Maharashtra", "Gujarat"}, p.ServiceRegions)
	assert.Equal(t, model.TierPremium, p.SubscriptionTier)
	assert.Equal(t, "s3cret", p.WebhookSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartnerPostgres_GetBadJSON(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerPostgres(db)

	mock.ExpectQuery("FROM partner_profiles").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(partnerCols).AddRow(
			"p-1", "", false, []byte(`{`), []byte(`[]`), 1.0, false, 0.0, "FREE", "", "", true, fixedNow))

	_, err := repo.Get(context.Background(), "p-1")
	assert.ErrorContains(t, err, "hazard_classes")
}

func TestPartnerPostgres_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerPostgres(db)

	p := &model.PartnerProfile{
		UserID:           "p-1",
		HazardClasses:    []int{3},
		ServiceRegions:   []string{"ALL"},
		MaxCapacityTons:  10,
		SubscriptionTier: model.TierFree,
		Active:           true,
		UpdatedAt:        fixedNow,
	}

	mock.ExpectExec("INSERT INTO partner_profiles").
		WithArgs("p-1", `[3]`, `["ALL"]`, 10.0, false, 0.0, "FREE", "", "", true, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM partner_profiles").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(partnerCols).AddRow(
			"p-1", "Move", false, []byte(`[3]`), []byte(`["ALL"]`), 10.0, false, 0.0, "FREE", "", "", true, fixedNow))

	out, err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Move", out.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartnerPostgres_ListActive(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerPostgres(db)

	mock.ExpectQuery(`WHERE p.active`).WillReturnRows(sqlmock.NewRows(partnerCols).
		AddRow("p-1", "A", true, []byte(`[]`), []byte(`["ALL"]`), 5.0, false, 3.0, "FREE", "", "", true, fixedNow).
		AddRow("p-2", "B", false, []byte(`[1,2]`), []byte(`["Kerala"]`), 50.0, true, 4.0, "STANDARD", "", "", true, fixedNow))

	list, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, []int{1, 2}, list[1].HazardClasses)
}

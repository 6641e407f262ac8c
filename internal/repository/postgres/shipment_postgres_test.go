package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

func shipmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns(shipmentColumns)).
		AddRow("s-1", "BCZ-ABCDEF12", "q-1", "o-1", "trader-1", "p-1", "PICKED_UP", fixedNow, fixedNow)
}

func TestShipmentPostgres_FindByTracking(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShipmentPostgres(db)

	mock.ExpectQuery(`WHERE tracking_number = \$1`).WithArgs("BCZ-ABCDEF12").WillReturnRows(shipmentRows())
	mock.ExpectQuery(`FROM shipment_events WHERE shipment_id = \$1`).WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows(columns(eventColumns)).
			AddRow("e-1", "s-1", "BOOKED", "", "booking confirmed", fixedNow).
			AddRow("e-2", "s-1", "PICKED_UP", "Mumbai", "", fixedNow))

	sh, err := repo.FindByTracking(context.Background(), "BCZ-ABCDEF12")
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentPickedUp, sh.Status)
	require.Len(t, sh.Events, 2)
	assert.Equal(t, "Mumbai", sh.Events[1].Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShipmentPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShipmentPostgres(db)

	mock.ExpectQuery("SELECT COUNT").WithArgs("", "p-1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM shipments").WithArgs("", "p-1", 10, 0).WillReturnRows(shipmentRows())

	res, err := repo.List(context.Background(), repository.ShipmentFilter{PartnerID: "p-1"}, repository.PageQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Empty(t, res.Items[0].Events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShipmentPostgres_AddEvent(t *testing.T) {
	ev := &model.ShipmentEvent{
		ID:         "e-3",
		ShipmentID: "s-1",
		Status:     model.ShipmentInTransit,
		Location:   "Pune",
		CreatedAt:  fixedNow,
	}

	t.Run("ok", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewShipmentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shipments SET status").WithArgs("s-1", "PICKED_UP", "IN_TRANSIT", fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO shipment_events").WithArgs("e-3", "s-1", "IN_TRANSIT", "Pune", "", fixedNow).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.AddEvent(context.Background(), model.ShipmentPickedUp, ev))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent change", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewShipmentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shipments SET status").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.AddEvent(context.Background(), model.ShipmentPickedUp, ev)
		assert.ErrorIs(t, err, repository.ErrStateChanged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

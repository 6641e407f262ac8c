package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

func TestNotificationPostgres_CreateAndList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	n := &model.Notification{
		ID:        "n-1",
		UserID:    "trader-1",
		Kind:      model.NotifyOfferReceived,
		Title:     "New offer",
		Message:   "Move Logistics bid on QT-1",
		CreatedAt: fixedNow,
	}
	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(n.ID, n.UserID, "OFFER_RECEIVED", n.Title, n.Message, false, fixedNow).
		WillReturnRows(sqlmock.NewRows(columns(notificationColumns)).
			AddRow(n.ID, n.UserID, "OFFER_RECEIVED", n.Title, n.Message, false, fixedNow))
	out, err := repo.Create(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, model.NotifyOfferReceived, out.Kind)

	mock.ExpectQuery("SELECT COUNT").WithArgs("trader-1", true).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM notifications").WithArgs("trader-1", true, 20, 0).
		WillReturnRows(sqlmock.NewRows(columns(notificationColumns)).
			AddRow(n.ID, n.UserID, "OFFER_RECEIVED", n.Title, n.Message, false, fixedNow))
	res, err := repo.List(ctx, "trader-1", true, repository.PageQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_MarkRead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE notifications SET read = true WHERE id").WithArgs("n-1", "trader-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkRead(ctx, "n-1", "trader-1"))

	mock.ExpectExec("UPDATE notifications SET read = true WHERE id").WithArgs("n-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkRead(ctx, "n-1", "intruder"), sql.ErrNoRows)

	mock.ExpectExec("WHERE user_id = \\$1 AND NOT read").WithArgs("trader-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.MarkAllRead(ctx, "trader-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

func TestOfferPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOfferPostgres(db)
	o := sampleOffer("o-1", "p-1")

	mock.ExpectQuery("INSERT INTO offers").WillReturnRows(offerRow(nil, o))
	out, err := repo.Create(context.Background(), &o)
	require.NoError(t, err)
	assert.Equal(t, o.Price, out.Price)

	mock.ExpectQuery("INSERT INTO offers").WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err = repo.Create(context.Background(), &o)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferPostgres_FindLive(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOfferPostgres(db)

	mock.ExpectQuery(`status <> 'WITHDRAWN'`).WithArgs("q-1", "p-9").WillReturnError(sql.ErrNoRows)
	_, err := repo.FindLive(context.Background(), "q-1", "p-9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOfferPostgres_ListByQuote(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOfferPostgres(db)

	rows := offerRow(nil, sampleOffer("o-1", "p-1"))
	offerRow(rows, sampleOffer("o-2", "p-2"))
	mock.ExpectQuery(`WHERE quote_id = \$1 ORDER BY price`).WithArgs("q-1").WillReturnRows(rows)

	list, err := repo.ListByQuote(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestOfferPostgres_Withdraw(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOfferPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("SET status = 'WITHDRAWN'").WithArgs("o-1", "p-1", fixedNow).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Withdraw(ctx, "o-1", "p-1", fixedNow))

	mock.ExpectExec("SET status = 'WITHDRAWN'").WithArgs("o-1", "p-2", fixedNow).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Withdraw(ctx, "o-1", "p-2", fixedNow), repository.ErrStateChanged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

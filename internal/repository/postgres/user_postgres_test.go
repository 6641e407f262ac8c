package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := &model.User{
		ID:           "u-1",
		Email:        "ops@acme.in",
		PasswordHash: "hash",
		Name:         "Asha",
		Company:      "Acme Chemicals",
		Role:         model.RoleTrader,
		CreatedAt:    fixedNow,
	}

	t.Run("ok", func(t *testing.T) {
		rows := sqlmock.NewRows(columns(userColumns)).
			AddRow(u.ID, u.Email, u.PasswordHash, u.Name, u.Company, "", "TRADER", false, u.CreatedAt)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Email, u.PasswordHash, u.Name, u.Company, u.Phone, u.Role, u.Verified, u.CreatedAt).
			WillReturnRows(rows)

		out, err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleTrader, out.Role)
		assert.Equal(t, "hash", out.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})

		out, err := repo.Create(ctx, u)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(`WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("OPS@acme.in").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.FindByEmail(context.Background(), "OPS@acme.in")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery("SELECT COUNT").WithArgs("LOGISTICS_PARTNER").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM users").WithArgs("LOGISTICS_PARTNER", 10, 0).
		WillReturnRows(sqlmock.NewRows(columns(userColumns)).
			AddRow("p-1", "fleet@move.in", "h", "Ravi", "Move Logistics", "+9100", "LOGISTICS_PARTNER", true, fixedNow))

	res, err := repo.List(context.Background(), model.RolePartner, repository.PageQuery{Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_SetVerified(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users SET verified").WithArgs("p-1", true).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetVerified(ctx, "p-1", true))

	mock.ExpectExec("UPDATE users SET verified").WithArgs("missing", true).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetVerified(ctx, "missing", true), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_CountByRole(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery("GROUP BY role").WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).
		AddRow("TRADER", 4).AddRow("ADMIN", 1))

	counts, err := repo.CountByRole(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[model.Role]int{model.RoleTrader: 4, model.RoleAdmin: 1}, counts)
}

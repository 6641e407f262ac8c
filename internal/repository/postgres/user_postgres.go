package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const userColumns = `id, email, password_hash, name, company, phone, role, verified, created_at`

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Company,
		&u.Phone,
		&u.Role,
		&u.Verified,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and returns the stored row.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Company,
		u.Phone,
		u.Role,
		u.Verified,
		u.CreatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a user by email, ignoring case.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// List returns users newest first, optionally filtered by role.
func (r *UserPostgres) List(ctx context.Context, role model.Role, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	const qCount = `SELECT COUNT(*) FROM users WHERE ($1::text = '' OR role = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(role)).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::text = '' OR role = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, string(role), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanUser)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// SetVerified flips the verification flag.
func (r *UserPostgres) SetVerified(ctx context.Context, id string, verified bool) error {
	const q = `UPDATE users SET verified = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, verified)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	return mustAffect(res, sql.ErrNoRows)
}

// CountByRole returns the number of users per role.
func (r *UserPostgres) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	return countBy[model.Role](ctx, r.db, `SELECT role, COUNT(*) FROM users GROUP BY role`)
}

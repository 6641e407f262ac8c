package repository

import (
	"context"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a user. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns users, optionally restricted to one role (empty role = all).
	List(ctx context.Context, role model.Role, pq PageQuery) (*PageResult[model.User], error)
	// SetVerified returns sql.ErrNoRows when the user does not exist.
	SetVerified(ctx context.Context, id string, verified bool) error
	CountByRole(ctx context.Context) (map[model.Role]int, error)
}

// PartnerRepository persists logistics partner capability profiles.
type PartnerRepository interface {
	Get(ctx context.Context, userID string) (*model.PartnerProfile, error)
	Upsert(ctx context.Context, p *model.PartnerProfile) (*model.PartnerProfile, error)
	// ListActive returns every active profile joined with the owner's verification flag.
	ListActive(ctx context.Context) ([]model.PartnerProfile, error)
}

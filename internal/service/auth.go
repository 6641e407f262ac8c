package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const minPasswordLen = 8

// RegisterInput is a self-service sign-up.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Company  string
	Phone    string
	Role     model.Role
}

// Session is returned by Register and Login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(u *model.User) (string, time.Time, error)
}

// AuthService handles accounts and sessions.
type AuthService interface {
	// Register creates a TRADER or LOGISTICS_PARTNER account and signs it in.
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	// Login fails with ErrInvalidCredentials for both unknown emails and wrong passwords.
	Login(ctx context.Context, email, password string) (*Session, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	// CreateAdmin provisions an ADMIN account. It is not reachable over HTTP.
	CreateAdmin(ctx context.Context, email, password, name string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, bcryptCost int) AuthService {
	return &authService{users: users, tokens: tokens, bcryptCost: bcryptCost, now: utcNow}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if in.Role != model.RoleTrader && in.Role != model.RolePartner {
		return nil, invalid("role must be %s or %s", model.RoleTrader, model.RolePartner)
	}
	u, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *authService) CreateAdmin(ctx context.Context, email, password, name string) (*model.User, error) {
	u, err := s.create(ctx, RegisterInput{Email: email, Password: password, Name: name, Role: model.RoleAdmin})
	if err != nil {
		return nil, err
	}
	if err := s.users.SetVerified(ctx, u.ID, true); err != nil {
		return nil, fmt.Errorf("verify admin: %w", err)
	}
	u.Verified = true
	return u, nil
}

func (s *authService) create(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, invalid("email is not a valid address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Company:      strings.TrimSpace(in.Company),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *authService) session(u *model.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestNewManager(t *testing.T) {
	_, err := NewManager("short", time.Hour)
	assert.ErrorIs(t, err, ErrWeakSecret)

	m, err := NewManager(secret, 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.ttl)
}

func TestIssueParse(t *testing.T) {
	m, err := NewManager(secret, time.Hour)
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, exp, err := m.Issue(&model.User{ID: "u-1", Role: model.RolePartner})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	p, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, model.RolePartner, p.Role)
	assert.False(t, p.IsAdmin())

	m.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejects(t *testing.T) {
	m, err := NewManager(secret, time.Hour)
	require.NoError(t, err)

	other, err := NewManager("another-secret-of-sufficient-length", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Issue(&model.User{ID: "u-1", Role: model.RoleTrader})
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u-1", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1", "role": "ROOT", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1", "role": "TRADER",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"alg none":     noneTok,
		"unknown role": badRole,
		"no expiry":    noExp,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
}

package auth

import (
	"testing"
	"time"

	"motofinance/internal/domain/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_SignVerify(t *testing.T) {
	j := JWT{Secret: []byte("secret"), TokenTTL: time.Hour}

	tok, exp, err := j.Sign(Claims{UserID: "u-1", Role: entities.RoleStore, StoreID: "store-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	c, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, entities.RoleStore, c.Role)
	assert.Equal(t, "store-1", c.StoreID)
	assert.Equal(t, "u-1", c.Subject)
	assert.Equal(t, issuer, c.Issuer)
}

func TestJWT_VerifyRejects(t *testing.T) {
	j := JWT{Secret: []byte("secret"), TokenTTL: time.Hour}

	_, err := j.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	other := JWT{Secret: []byte("other"), TokenTTL: time.Hour}
	tok, _, err := other.Sign(Claims{UserID: "u-1", Role: entities.RoleAdmin})
	require.NoError(t, err)
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := j.Sign(Claims{
		UserID:           "u-1",
		Role:             entities.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	require.NoError(t, err)
	_, err = j.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	guest, _, err := j.Sign(Claims{UserID: "u-1", Role: "guest"})
	require.NoError(t, err)
	_, err = j.Verify(guest)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_SignRequiresSecret(t *testing.T) {
	_, _, err := JWT{}.Sign(Claims{UserID: "u-1", Role: entities.RoleAdmin})
	assert.Error(t, err)
}

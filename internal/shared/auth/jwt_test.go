package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("s3cret", "dev")
	require.NoError(t, err)

	token, err := issuer.Sign(Identity{UserID: "user-1", Role: RoleAdmin, Email: "a@x.com"})
	require.NoError(t, err)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "a@x.com", id.Email)
}

func TestSignDefaultsToUserRole(t *testing.T) {
	issuer, err := NewIssuer("", "dev")
	require.NoError(t, err)

	token, err := issuer.Sign(Identity{UserID: "user-2"})
	require.NoError(t, err)
	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, id.Role)
	assert.False(t, id.IsAdmin())
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	a, _ := NewIssuer("one", "dev")
	b, _ := NewIssuer("two", "dev")

	token, err := a.Sign(Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer, _ := NewIssuer("s3cret", "dev")
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := issuer.Sign(Identity{UserID: "user-1"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer, _ := NewIssuer("s3cret", "dev")
	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestNewIssuerRequiresSecretInProduction(t *testing.T) {
	_, err := NewIssuer("", "production")
	assert.Error(t, err)

	_, err = NewIssuer("set", "production")
	assert.NoError(t, err)
}

package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: []byte("secret")})
	id := uuid.New()

	token, err := m.Issue(id, "extended")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.Equal(t, "extended", claims.RuleSet)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenManager(TokenConfig{Secret: []byte("a")}).Issue(uuid.New(), "classic")
	require.NoError(t, err)

	_, err = NewTokenManager(TokenConfig{Secret: []byte("b")}).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager(TokenConfig{Secret: []byte("a")}).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: []byte("secret"), TTL: time.Minute})
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Issue(uuid.New(), "classic")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

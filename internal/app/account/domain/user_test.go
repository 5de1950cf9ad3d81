package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Grace@Navy.MIL ")
	require.NoError(t, err)
	assert.Equal(t, "grace@navy.mil", got)

	for _, bad := range []string{"", "grace", "Grace <grace@navy.mil>", "@navy.mil"} {
		_, err := NormalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))

	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordBytes)))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordBytes+1)), ErrPasswordTooLong)
	// 25 three-byte runes: short in characters, too long for bcrypt.
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("€", 25)), ErrPasswordTooLong)
	assert.True(t, IsValidationError(ErrPasswordTooLong))
}

func TestNewUser_RecordsEvent(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := NewUser("u-1", "Grace", "grace@navy.mil", "hash", now)
	require.NoError(t, err)

	require.Len(t, u.DomainEvents(), 1)
	ev := u.DomainEvents()[0]
	assert.Equal(t, "user.registered", ev.EventType())
	assert.Equal(t, "u-1", ev.AggregateID())
	assert.True(t, IsValidationError(ErrWeakPassword))
	assert.False(t, IsValidationError(ErrEmailTaken))
}

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/murkotick/storefront-service/internal/app/account/domain"
	"github.com/murkotick/storefront-service/internal/app/account/usecases/register_user"
)

func TestRegisterUser(t *testing.T) {
	ctx := testContext(t)

	u, err := registerUC.Execute(ctx, register_user.Request{Name: "Grace", Email: "Grace@Example.com", Password: "hopper1"})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", u.Email())
	assert.Equal(t, domain.RoleUser, u.Role())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte("hopper1")))

	_, err = registerUC.Execute(ctx, register_user.Request{Name: "Other", Email: " GRACE@example.com ", Password: "another1"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	assert.Equal(t, []string{"user.registered"}, eventTypes(outboxFor(ctx, t, u.ID())))
}

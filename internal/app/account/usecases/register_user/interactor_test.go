package register_user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-service/internal/app/account/domain"
	"github.com/murkotick/storefront-service/internal/app/account/repo"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

type stubUsers map[string]bool

func (s stubUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return s[email], nil
}

type recordingCommitter struct {
	plans []*commitplan.Plan
	err   error
}

func (c *recordingCommitter) Apply(_ context.Context, p *commitplan.Plan) error {
	c.plans = append(c.plans, p)
	return c.err
}

func newInteractor(users stubUsers, cm *recordingCommitter) *Interactor {
	it := NewInteractor(users, repo.NewUserRepo(), outbox.NewRepo(), cm, clock.NewFake(time.Now()))
	it.BcryptCost = bcrypt.MinCost
	return it
}

func TestExecute_RegistersUser(t *testing.T) {
	cm := &recordingCommitter{}
	it := newInteractor(stubUsers{}, cm)

	u, err := it.Execute(context.Background(), Request{Name: " Ada ", Email: " Ada@Example.com ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", u.Name())
	assert.Equal(t, "ada@example.com", u.Email())
	assert.Equal(t, domain.RoleUser, u.Role())
	assert.NotEqual(t, "secret", u.PasswordHash())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte("secret")))

	require.Len(t, cm.plans, 1)
	assert.Equal(t, 2, cm.plans[0].Len())
}

func TestExecute_Rejections(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"short password", Request{Name: "Ada", Email: "ada@example.com", Password: "12345"}, domain.ErrWeakPassword},
		{"long password", Request{Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("x", 80)}, domain.ErrPasswordTooLong},
		{"bad email", Request{Name: "Ada", Email: "not-an-email", Password: "secret"}, domain.ErrInvalidEmail},
		{"missing name", Request{Email: "ada@example.com", Password: "secret"}, domain.ErrEmptyName},
		{"taken", Request{Name: "Ada", Email: "taken@example.com", Password: "secret"}, domain.ErrEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cm := &recordingCommitter{}
			it := newInteractor(stubUsers{"taken@example.com": true}, cm)

			_, err := it.Execute(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.want)
			assert.Empty(t, cm.plans)
		})
	}
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	conflict := fmt.Errorf("committer: apply 2 mutations: %w", status.Error(codes.AlreadyExists, "users_by_email"))
	it := newInteractor(stubUsers{}, &recordingCommitter{err: conflict})

	_, err := it.Execute(context.Background(), Request{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

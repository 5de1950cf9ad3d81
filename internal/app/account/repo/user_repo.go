package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-service/internal/app/account/domain"
	"github.com/murkotick/storefront-service/internal/models/m_user"
)

type UserRepo struct{}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

func (r *UserRepo) InsertMut(u *domain.User) *spanner.Mutation {
	if u == nil {
		return nil
	}
	return m_user.InsertMutation(m_user.BuildInsertMap(m_user.Row{
		UserID:       u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt().UTC(),
		UpdatedAt:    u.UpdatedAt().UTC(),
	}))
}

// SpannerUserReader answers lookups through the unique email index.
type SpannerUserReader struct {
	Client *spanner.Client
}

func NewSpannerUserReader(client *spanner.Client) *SpannerUserReader {
	return &SpannerUserReader{Client: client}
}

func (r *SpannerUserReader) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.Client.Single().ReadRowUsingIndex(ctx, m_user.TableName, m_user.IndexByEmail,
		spanner.Key{email}, []string{m_user.ColUserID})
	if spanner.ErrCode(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup email: %w", err)
	}
	return true, nil
}

package register_user

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"

	contracts "github.com/murkotick/storefront-service/internal/app/account/contracts"
	"github.com/murkotick/storefront-service/internal/app/account/domain"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

const DefaultBcryptCost = 12

type Request struct {
	Name     string
	Email    string
	Password string
}

type Interactor struct {
	Users      contracts.UserReader
	UserRepo   contracts.UserRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Clock      clock.Clock
	// BcryptCost defaults to DefaultBcryptCost; tests lower it.
	BcryptCost int
}

func NewInteractor(users contracts.UserReader, userRepo contracts.UserRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		Users:      users,
		UserRepo:   userRepo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		Clock:      clk,
		BcryptCost: DefaultBcryptCost,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.User, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	taken, err := it.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), it.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := it.Clock.Now()
	user, err := domain.NewUser(uuid.New().String(), req.Name, email, string(hash), now)
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan("user.register")
	plan.Add(it.UserRepo.InsertMut(user))
	for _, ev := range user.DomainEvents() {
		payload, err := marshalEvent(ev)
		if err != nil {
			return nil, err
		}
		plan.Add(it.OutboxRepo.InsertMut(outbox.NewEvent(ev.EventType(), ev.AggregateID(), payload, now)))
	}

	if err := it.Committer.Apply(ctx, plan); err != nil {
		// A concurrent registration can win the unique index between the check and the commit.
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func marshalEvent(ev domain.DomainEvent) (string, error) {
	e, ok := ev.(*domain.UserRegisteredEvent)
	if !ok {
		return "", fmt.Errorf("unexpected account event %T", ev)
	}
	b, err := json.Marshal(map[string]interface{}{
		"user_id":       e.UserID,
		"email":         e.Email,
		"registered_at": e.RegisteredAt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}

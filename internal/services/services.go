package services

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// ProfileCache is the serialized-profile cache contract the services need.
// The redis client satisfies it; NoopProfileCache stands in when redis is
// not configured.
type ProfileCache interface {
	Get(ctx context.Context, phone string) ([]byte, bool)
	Set(ctx context.Context, phone string, payload []byte)
	Invalidate(ctx context.Context, phones ...string)
}

type NoopProfileCache struct{}

func (NoopProfileCache) Get(ctx context.Context, phone string) ([]byte, bool)  { return nil, false }
func (NoopProfileCache) Set(ctx context.Context, phone string, payload []byte) {}
func (NoopProfileCache) Invalidate(ctx context.Context, phones ...string)      {}

func fetchUserByPhone(ctx context.Context, tx *gorm.DB, userRepo repos.UserRepo, phone string) (*types.User, error) {
	users, err := userRepo.GetByPhones(ctx, tx, []string{phone})
	if err != nil {
		return nil, fmt.Errorf("Error retrieving user by phone: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %s", apierr.ErrNotFound, phone)
	}
	return users[0], nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

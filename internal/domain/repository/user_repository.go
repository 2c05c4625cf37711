package repository

import (
	"context"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// UserRepository persistence port for User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetFirstByCompany returns the oldest user of a company.
	GetFirstByCompany(ctx context.Context, companyID string) (*entity.User, error)
	// GetProfile returns the user joined with its company and the search count of day.
	GetProfile(ctx context.Context, id string, day time.Time) (*entity.UserWithCompany, error)
	// List returns users newest first with the search count of day.
	List(ctx context.Context, day time.Time, limit, offset int) ([]*entity.UserWithCompany, error)
	Update(ctx context.Context, user *entity.User) error
	TouchLastLogin(ctx context.Context, id string) error
	// Delete returns false when no row matched.
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

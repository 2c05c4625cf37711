package auth

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

// TxRunner runs fn with company and user repositories bound to one transaction.
type TxRunner interface {
	RunAccount(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
	) error) error
}

// ProfileReader builds the public profile (company and quota included) of a user.
type ProfileReader interface {
	Profile(ctx context.Context, userID string) (*dto.UserResponse, error)
}

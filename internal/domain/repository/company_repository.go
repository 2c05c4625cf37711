package repository

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// CompanyRepository persistence port for Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByRegistrationNumber(ctx context.Context, number string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// DeleteIfUnused removes the company when no user references it.
	DeleteIfUnused(ctx context.Context, id string) (bool, error)
}

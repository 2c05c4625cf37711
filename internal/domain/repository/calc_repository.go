package repository

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// CalcRepository cache of upstream calculation answers.
type CalcRepository interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, p entity.CalcParams) (*entity.CalcRecord, error)
	// Save is idempotent: an existing row for the same params is kept.
	Save(ctx context.Context, rec *entity.CalcRecord) error
}

package calc

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// Calculator remote force calculator.
type Calculator interface {
	Calculate(ctx context.Context, p entity.CalcParams) (string, error)
}

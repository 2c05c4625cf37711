package catalog

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

// TxRunner runs fn with a component repository bound to one transaction.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(components repository.ComponentRepository) error) error
}

package repository

import (
	"context"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// ComponentRepository persistence port for components_info and components_list.
type ComponentRepository interface {
	CreateInfo(ctx context.Context, info *entity.ComponentInfo) error
	// UpdateInfo returns false when no row matched (key, nbphase).
	UpdateInfo(ctx context.Context, info *entity.ComponentInfo) (bool, error)
	GetInfo(ctx context.Context, key string, nbphase int) ([]*entity.ComponentInfo, error)
	GetInfoByKeys(ctx context.Context, keys []string, nbphase int) (map[string][]*entity.ComponentInfo, error)
	ListVariants(ctx context.Context, componentID string, nbphase int) ([]*entity.ComponentVariant, error)
	// ReplaceVariants deletes the existing rows for (componentID, nbphase) and inserts vs.
	ReplaceVariants(ctx context.Context, componentID string, nbphase int, vs []entity.ComponentVariant) error
	FindVariants(ctx context.Context, q entity.VariantQuery) ([]*entity.ComponentVariant, error)
	// Delete removes info and variants, returning the number of rows removed.
	Delete(ctx context.Context, componentID string, nbphase int) (int64, error)
}

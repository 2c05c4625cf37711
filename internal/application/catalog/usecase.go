// Package catalog manages the support catalog: component info rows and their variant lists.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

// CatalogUseCase CRUD over components.
type CatalogUseCase struct {
	components repository.ComponentRepository
	tx         TxRunner
	log        *logger.Logger
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(components repository.ComponentRepository, tx TxRunner, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{components: components, tx: tx, log: log}
}

// Get returns the info rows and the variant summary; ErrNotFound when either is missing.
func (uc *CatalogUseCase) Get(ctx context.Context, key dto.ComponentKeyRequest) (*dto.ComponentsResponse, error) {
	infos, err := uc.components.GetInfo(ctx, key.ComponentID, key.NbPhase)
	if err != nil {
		return nil, err
	}
	variants, err := uc.components.ListVariants(ctx, key.ComponentID, key.NbPhase)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 || len(variants) == 0 {
		return nil, domain.ErrNotFound
	}
	out := &dto.ComponentsResponse{
		Components:     make([]dto.ComponentInfoDTO, 0, len(infos)),
		ComponentsList: ToSummaryDTO(busbar.Summarize(variants)),
	}
	for _, ci := range infos {
		out.Components = append(out.Components, ToInfoDTO(ci, nil))
	}
	return out, nil
}

// Summary returns the variant summary; ErrNotFound when there are no variants.
func (uc *CatalogUseCase) Summary(ctx context.Context, key dto.ComponentKeyRequest) (*dto.ComponentListResponse, error) {
	variants, err := uc.components.ListVariants(ctx, key.ComponentID, key.NbPhase)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, domain.ErrNotFound
	}
	return &dto.ComponentListResponse{Components: ToSummaryDTO(busbar.Summarize(variants))}, nil
}

// Create inserts the info row and its variant combinations. ErrDuplicate when the key exists.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.ComponentRequest) (*dto.ComponentWriteResponse, error) {
	info := infoFromRequest(in)
	info.Amini = busbar.Amini(in.AList)
	variants := busbar.Combinations(info.Key, info.NbPhase, in.Thickness, in.Width, in.Poles, in.Shape)

	err := uc.tx.RunCatalog(ctx, func(components repository.ComponentRepository) error {
		if err := components.CreateInfo(ctx, info); err != nil {
			return err
		}
		return components.ReplaceVariants(ctx, info.Key, info.NbPhase, variants)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("component_id", info.Key).Int("nbphase", info.NbPhase).Int("variants", len(variants)).Msg("component created")
	return &dto.ComponentWriteResponse{Message: "Component created successfully", Variants: len(variants)}, nil
}

// Update rewrites the editable info columns and the variant list. ErrNotFound when the info row is missing.
func (uc *CatalogUseCase) Update(ctx context.Context, in dto.ComponentRequest) (*dto.ComponentWriteResponse, error) {
	info := infoFromRequest(in)
	variants := busbar.Combinations(info.Key, info.NbPhase, in.Thickness, in.Width, in.Poles, in.Shape)

	err := uc.tx.RunCatalog(ctx, func(components repository.ComponentRepository) error {
		if in.UnitPrice == nil {
			current, err := components.GetInfo(ctx, info.Key, info.NbPhase)
			if err != nil {
				return err
			}
			if len(current) > 0 {
				info.UnitPrice = current[0].UnitPrice
			}
		}
		ok, err := components.UpdateInfo(ctx, info)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return components.ReplaceVariants(ctx, info.Key, info.NbPhase, variants)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("component_id", info.Key).Int("nbphase", info.NbPhase).Msg("component updated")
	return &dto.ComponentWriteResponse{Message: "Component updated successfully", Variants: len(variants)}, nil
}

// Delete removes info and variants. ErrNotFound when nothing was removed.
func (uc *CatalogUseCase) Delete(ctx context.Context, key dto.ComponentKeyRequest) error {
	return uc.tx.RunCatalog(ctx, func(components repository.ComponentRepository) error {
		n, err := components.Delete(ctx, key.ComponentID, key.NbPhase)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// UnitPrice catalog price of a component, zero when unknown.
func (uc *CatalogUseCase) UnitPrice(ctx context.Context, componentID string, nbphase int) (decimal.Decimal, string, error) {
	infos, err := uc.components.GetInfo(ctx, componentID, nbphase)
	if err != nil {
		return decimal.Zero, "", err
	}
	if len(infos) == 0 {
		return decimal.Zero, "", nil
	}
	return infos[0].UnitPrice, infos[0].Info, nil
}

func infoFromRequest(in dto.ComponentRequest) *entity.ComponentInfo {
	info := &entity.ComponentInfo{
		Key:     strings.TrimSpace(in.Key),
		NbPhase: in.NbPhase,
		Angle:   in.Angle,
		Resmini: in.Resmini,
		Info:    in.Info,
		AList:   in.AList,
	}
	if in.UnitPrice != nil {
		info.UnitPrice = in.UnitPrice.Round(2)
	}
	return info
}

// ToInfoDTO maps a catalog row, attaching L when known.
func ToInfoDTO(ci *entity.ComponentInfo, l *string) dto.ComponentInfoDTO {
	return dto.ComponentInfoDTO{
		Key:           ci.Key,
		NbPhase:       ci.NbPhase,
		Amini:         ci.Amini,
		Amaxi:         ci.Amaxi,
		Angle:         ci.Angle,
		Resmini:       ci.Resmini,
		TypeSupport:   ci.TypeSupport,
		Bmini:         ci.Bmini,
		LargeurModule: ci.LargeurModule,
		Img1Article:   ci.Img1Article,
		Img2Article:   ci.Img2Article,
		NumArt:        ci.NumArt,
		Info:          ci.Info,
		AList:         ci.AList,
		UnitPrice:     ci.UnitPrice,
		L:             l,
	}
}

// ToSummaryDTO maps a variant summary.
func ToSummaryDTO(s busbar.VariantSummary) dto.VariantSummaryDTO {
	return dto.VariantSummaryDTO{
		IsComplete: s.IsComplete,
		Thickness:  s.Thickness,
		Width:      s.Width,
		Poles:      s.Poles,
		Shape:      s.Shape,
	}
}

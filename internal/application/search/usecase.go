// Package search runs the busbar support search: variant lookup, L resolution and pagination.
package search

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

// Resolver resolves L for a calculation key.
type Resolver interface {
	Resolve(ctx context.Context, p entity.CalcParams) (*string, error)
}

// QuotaConsumer charges one search to a user's daily quota.
type QuotaConsumer interface {
	ConsumeSearch(ctx context.Context, userID string) error
}

// SearchUseCase POST /api/queryBusbar.
type SearchUseCase struct {
	components  repository.ComponentRepository
	resolver    Resolver
	quota       QuotaConsumer
	log         *logger.Logger
	concurrency int
}

// NewSearchUseCase builds the use case. concurrency bounds parallel L lookups.
func NewSearchUseCase(
	components repository.ComponentRepository,
	resolver Resolver,
	quota QuotaConsumer,
	log *logger.Logger,
	concurrency int,
) *SearchUseCase {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &SearchUseCase{components: components, resolver: resolver, quota: quota, log: log, concurrency: concurrency}
}

// Criteria parsed search form.
type Criteria struct {
	Query entity.VariantQuery
	Icc   int
}

// ParseCriteria converts the form labels into a variant query. Icc is clamped to the supported range.
func ParseCriteria(in dto.QueryBusbarRequest) (*Criteria, error) {
	perPhase, err := busbar.ParsePerPhase(in.PerPhase)
	if err != nil {
		return nil, err
	}
	thickness, err := busbar.ParseDimension("thickness", in.Thickness)
	if err != nil {
		return nil, err
	}
	width, err := busbar.ParseDimension("width", in.Width)
	if err != nil {
		return nil, err
	}
	if !busbar.IsValidGeometry(thickness, width) {
		return nil, fmt.Errorf("%w: width %d is not offered for thickness %d", domain.ErrInvalidInput, width, thickness)
	}
	poles, err := busbar.ParsePoles(in.Poles)
	if err != nil {
		return nil, err
	}
	return &Criteria{
		Query: entity.VariantQuery{
			NbPhase:   perPhase,
			Thickness: thickness,
			Width:     width,
			Poles:     poles,
			Shape:     in.Shape,
		},
		Icc: busbar.ClampIcc(in.Icc),
	}, nil
}

// Query charges the quota of userID, then searches. An empty userID skips the quota.
func (uc *SearchUseCase) Query(ctx context.Context, userID string, in dto.QueryBusbarRequest) (*dto.QueryBusbarResponse, error) {
	crit, err := ParseCriteria(in)
	if err != nil {
		return nil, err
	}
	if userID != "" && uc.quota != nil {
		if err := uc.quota.ConsumeSearch(ctx, userID); err != nil {
			return nil, err
		}
	}

	products, err := uc.Find(ctx, *crit)
	if err != nil {
		return nil, err
	}
	if in.WithoutImg1 {
		products = withoutImg1(products)
	}

	page := busbar.Paginate(len(products), in.Page, in.PageSize)
	icc := float64(crit.Icc)
	resp := &dto.QueryBusbarResponse{
		Products:   make([]dto.ProductDTO, 0, page.End-page.Start),
		Total:      len(products),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Icc:        crit.Icc,
		Ipk:        busbar.PeakCurrent(icc),
		PeakFactor: busbar.PeakFactor(icc),
	}
	for _, p := range products[page.Start:page.End] {
		resp.Products = append(resp.Products, toProductDTO(p))
	}
	uc.log.Info().Str("user_id", userID).Int("nbphase", crit.Query.NbPhase).Int("thickness", crit.Query.Thickness).
		Int("width", crit.Query.Width).Int("poles", crit.Query.Poles).Int("results", len(products)).Msg("busbar search")
	return resp, nil
}

// Find returns every matching product with its catalog rows and resolved L values.
func (uc *SearchUseCase) Find(ctx context.Context, crit Criteria) ([]*entity.Product, error) {
	variants, err := uc.components.FindVariants(ctx, crit.Query)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return []*entity.Product{}, nil
	}
	keys := make([]string, 0, len(variants))
	seen := map[string]bool{}
	for _, v := range variants {
		if !seen[v.ComponentID] {
			seen[v.ComponentID] = true
			keys = append(keys, v.ComponentID)
		}
	}
	infos, err := uc.components.GetInfoByKeys(ctx, keys, crit.Query.NbPhase)
	if err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(variants))
	for _, v := range variants {
		p := &entity.Product{Variant: *v}
		for _, ci := range infos[v.ComponentID] {
			p.AdditionalInfo = append(p.AdditionalInfo, entity.ProductInfo{ComponentInfo: *ci})
		}
		products = append(products, p)
	}

	if err := uc.resolveAll(ctx, crit, products); err != nil {
		return nil, err
	}
	return products, nil
}

// resolveAll fills L for every catalog row, at most uc.concurrency lookups at a time.
// Rows whose a_list has no leading integer keep L nil.
func (uc *SearchUseCase) resolveAll(ctx context.Context, crit Criteria, products []*entity.Product) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for _, p := range products {
		for i := range p.AdditionalInfo {
			info := &p.AdditionalInfo[i]
			spacing, ok := busbar.FirstSpacing(info.AList)
			if !ok {
				continue
			}
			params := entity.CalcParams{
				W:         crit.Query.Width,
				T:         crit.Query.Thickness,
				B:         p.Variant.NbPhase,
				Angle:     info.Angle,
				A:         spacing,
				Icc:       crit.Icc,
				Force:     info.Resmini * 10,
				NbrePhase: crit.Query.Poles,
			}
			g.Go(func() error {
				l, err := uc.resolver.Resolve(gctx, params)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					uc.log.Warn().Err(err).Str("component_id", info.Key).Msg("resolve L")
					return nil
				}
				info.L = l
				return nil
			})
		}
	}
	return g.Wait()
}

func withoutImg1(products []*entity.Product) []*entity.Product {
	out := products[:0:0]
	for _, p := range products {
		if !p.HasImg1() {
			out = append(out, p)
		}
	}
	return out
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	out := dto.ProductDTO{
		ID:             p.Variant.ID,
		NbPhase:        p.Variant.NbPhase,
		Thickness:      p.Variant.Thickness,
		Width:          p.Variant.Width,
		Poles:          p.Variant.Poles,
		Shape:          p.Variant.Shape,
		ComponentID:    p.Variant.ComponentID,
		AdditionalInfo: make([]dto.ComponentInfoDTO, 0, len(p.AdditionalInfo)),
	}
	for i := range p.AdditionalInfo {
		info := p.AdditionalInfo[i]
		out.AdditionalInfo = append(out.AdditionalInfo, catalog.ToInfoDTO(&info.ComponentInfo, info.L))
	}
	return out
}

// Options geometry choices for the search form.
func Options() dto.OptionsResponse {
	widths := map[int][]int{}
	for _, t := range busbar.ThicknessOptions() {
		widths[t] = busbar.WidthOptions(t)
	}
	return dto.OptionsResponse{
		Thickness: busbar.ThicknessOptions(),
		Widths:    widths,
		Poles:     []string{"Bi", "Three", "Four"},
		MinIcc:    busbar.MinIcc,
		MaxIcc:    busbar.MaxIcc,
	}
}

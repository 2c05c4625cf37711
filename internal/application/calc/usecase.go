// Package calc resolves the maximum distance between supports (L) through the
// calc_excel cache and the remote calculator.
package calc

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

// NoResponse answer of SendAspExcel when the calculator gave nothing back.
const NoResponse = "No response from ASPExcel"

// CalcUseCase cache-first calculation. Concurrent identical params share one upstream call.
type CalcUseCase struct {
	cache      repository.CalcRepository
	calculator Calculator
	log        *logger.Logger
	group      singleflight.Group
}

// NewCalcUseCase builds the use case.
func NewCalcUseCase(cache repository.CalcRepository, calculator Calculator, log *logger.Logger) *CalcUseCase {
	return &CalcUseCase{cache: cache, calculator: calculator, log: log}
}

func key(p entity.CalcParams) string {
	return fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d|%d", p.W, p.T, p.B, p.Angle, p.A, p.Icc, p.Force, p.NbrePhase)
}

// Resolve returns L for p, or nil when the calculator has no answer.
// Upstream failures are logged, not returned; cache failures are returned.
func (uc *CalcUseCase) Resolve(ctx context.Context, p entity.CalcParams) (*string, error) {
	p.B = busbar.NormalizePerPhase(p.B)

	rec, err := uc.cache.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if rec.L == "" {
			return nil, nil
		}
		return &rec.L, nil
	}

	// The shared call outlives any single caller; the client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := uc.group.Do(key(p), func() (interface{}, error) {
		return uc.fetch(shared, p)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			uc.log.Warn().Err(err).Str("params", key(p)).Msg("calculator unavailable")
			return nil, nil
		}
		return nil, err
	}
	l, _ := v.(string)
	if l == "" {
		return nil, nil
	}
	return &l, nil
}

// fetch calls the calculator once and stores the answer.
func (uc *CalcUseCase) fetch(ctx context.Context, p entity.CalcParams) (string, error) {
	l, err := uc.calculator.Calculate(ctx, p)
	if err != nil {
		return "", err
	}
	if err := uc.cache.Save(ctx, &entity.CalcRecord{CalcParams: p, L: l}); err != nil {
		return "", err
	}
	uc.log.Debug().Str("params", key(p)).Str("L", l).Msg("calculator answer cached")
	return l, nil
}

// CalcExcel handles POST /api/calcExcel.
func (uc *CalcUseCase) CalcExcel(ctx context.Context, in dto.CalcExcelRequest) (*dto.CalcExcelResponse, error) {
	l, err := uc.Resolve(ctx, entity.CalcParams{
		W: int(in.W), T: int(in.T), B: in.B, Angle: int(in.Angle), A: int(in.A),
		Icc: int(in.Icc), Force: int(in.Force), NbrePhase: in.NbrePhase,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CalcExcelResponse{L: l}, nil
}

// SendAspExcel forces an upstream call, bypassing the cache read, and stores the answer.
func (uc *CalcUseCase) SendAspExcel(ctx context.Context, in dto.SendAspExcelRequest) (*dto.SendAspExcelResponse, error) {
	p := entity.CalcParams{
		W: int(in.W), T: int(in.T), B: in.B, Angle: int(in.Angle), A: int(in.A),
		Icc: int(in.Icc), Force: int(in.Force), NbrePhase: in.Poles,
	}
	l, err := uc.fetch(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			uc.log.Warn().Err(err).Str("params", key(p)).Msg("calculator unavailable")
			return &dto.SendAspExcelResponse{Response: NoResponse}, nil
		}
		return nil, err
	}
	if l == "" {
		l = NoResponse
	}
	return &dto.SendAspExcelResponse{Response: l}, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.CalcRepository = (*CalcRepo)(nil)

// CalcRepo calc_excel cache over PostgreSQL.
type CalcRepo struct {
	q Querier
}

// NewCalcRepository builds the calculation cache adapter.
func NewCalcRepository(q Querier) *CalcRepo {
	return &CalcRepo{q: q}
}

// Get returns nil, nil on a miss.
func (r *CalcRepo) Get(ctx context.Context, p entity.CalcParams) (*entity.CalcRecord, error) {
	query := `
		SELECT w, t, b, angle, a, icc, force, nbre_phase, l, created_at
		FROM calc_excel
		WHERE w = $1 AND t = $2 AND b = $3 AND angle = $4 AND a = $5 AND icc = $6 AND force = $7 AND nbre_phase = $8`
	var rec entity.CalcRecord
	err := r.q.QueryRow(ctx, query, p.W, p.T, p.B, p.Angle, p.A, p.Icc, p.Force, p.NbrePhase).Scan(
		&rec.W, &rec.T, &rec.B, &rec.Angle, &rec.A, &rec.Icc, &rec.Force, &rec.NbrePhase, &rec.L, &rec.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calc excel: %w", err)
	}
	return &rec, nil
}

// Save keeps the first stored answer for a key.
func (r *CalcRepo) Save(ctx context.Context, rec *entity.CalcRecord) error {
	query := `
		INSERT INTO calc_excel (w, t, b, angle, a, icc, force, nbre_phase, l)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (w, t, b, angle, a, icc, force, nbre_phase) DO NOTHING`
	_, err := r.q.Exec(ctx, query, rec.W, rec.T, rec.B, rec.Angle, rec.A, rec.Icc, rec.Force, rec.NbrePhase, rec.L)
	if err != nil {
		return fmt.Errorf("insert calc excel: %w", err)
	}
	return nil
}

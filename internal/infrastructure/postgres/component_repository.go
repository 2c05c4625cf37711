package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo components_info and components_list over PostgreSQL.
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository builds the catalog adapter. Pass a pool or a tx.
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const infoColumns = `key, nbphase, amini, amaxi, angle, resmini, typesupport, bmini, largeurmodule,
	img1_article, img2_article, numart, info, a_list, unit_price`

func scanInfo(row rowScanner) (*entity.ComponentInfo, error) {
	var ci entity.ComponentInfo
	err := row.Scan(&ci.Key, &ci.NbPhase, &ci.Amini, &ci.Amaxi, &ci.Angle, &ci.Resmini, &ci.TypeSupport,
		&ci.Bmini, &ci.LargeurModule, &ci.Img1Article, &ci.Img2Article, &ci.NumArt, &ci.Info, &ci.AList,
		&ci.UnitPrice)
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// CreateInfo inserts a components_info row. An existing (key, nbphase) maps to ErrDuplicate.
func (r *ComponentRepo) CreateInfo(ctx context.Context, ci *entity.ComponentInfo) error {
	query := `
		INSERT INTO components_info (` + infoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		ci.Key, ci.NbPhase, ci.Amini, ci.Amaxi, ci.Angle, ci.Resmini, ci.TypeSupport, ci.Bmini,
		ci.LargeurModule, ci.Img1Article, ci.Img2Article, ci.NumArt, ci.Info, ci.AList, ci.UnitPrice,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component info: %w", err)
	}
	return nil
}

// UpdateInfo updates the editable columns of (key, nbphase).
func (r *ComponentRepo) UpdateInfo(ctx context.Context, ci *entity.ComponentInfo) (bool, error) {
	query := `
		UPDATE components_info SET angle = $3, resmini = $4, info = $5, a_list = $6, unit_price = $7
		WHERE key = $1 AND nbphase = $2`
	tag, err := r.q.Exec(ctx, query, ci.Key, ci.NbPhase, ci.Angle, ci.Resmini, ci.Info, ci.AList, ci.UnitPrice)
	if err != nil {
		return false, fmt.Errorf("update component info: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetInfo rows for an exact (key, nbphase). An empty key lists every key for nbphase.
func (r *ComponentRepo) GetInfo(ctx context.Context, key string, nbphase int) ([]*entity.ComponentInfo, error) {
	query := `SELECT ` + infoColumns + ` FROM components_info
		WHERE ($1 = '' OR key = $1) AND nbphase = $2 ORDER BY key`
	rows, err := r.q.Query(ctx, query, key, nbphase)
	if err != nil {
		return nil, fmt.Errorf("get component info: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComponentInfo
	for rows.Next() {
		ci, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component info: %w", err)
		}
		list = append(list, ci)
	}
	return list, rows.Err()
}

// GetInfoByKeys batches the per-product info lookup of a search.
func (r *ComponentRepo) GetInfoByKeys(ctx context.Context, keys []string, nbphase int) (map[string][]*entity.ComponentInfo, error) {
	out := make(map[string][]*entity.ComponentInfo, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	query := `SELECT ` + infoColumns + ` FROM components_info
		WHERE key = ANY($1) AND nbphase = $2 ORDER BY key`
	rows, err := r.q.Query(ctx, query, keys, nbphase)
	if err != nil {
		return nil, fmt.Errorf("get component info by keys: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ci, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component info: %w", err)
		}
		out[ci.Key] = append(out[ci.Key], ci)
	}
	return out, rows.Err()
}

const variantColumns = `id, nbphase, thickness, width, poles, shape, component_id`

func collectVariants(rows pgx.Rows) ([]*entity.ComponentVariant, error) {
	defer rows.Close()
	var list []*entity.ComponentVariant
	for rows.Next() {
		var v entity.ComponentVariant
		if err := rows.Scan(&v.ID, &v.NbPhase, &v.Thickness, &v.Width, &v.Poles, &v.Shape, &v.ComponentID); err != nil {
			return nil, fmt.Errorf("scan component variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListVariants rows of components_list for a component.
func (r *ComponentRepo) ListVariants(ctx context.Context, componentID string, nbphase int) ([]*entity.ComponentVariant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM components_list
		WHERE component_id = $1 AND nbphase = $2 ORDER BY id`, componentID, nbphase)
	if err != nil {
		return nil, fmt.Errorf("list component variants: %w", err)
	}
	return collectVariants(rows)
}

// ReplaceVariants swaps the variant list of a component. Run it inside a transaction.
func (r *ComponentRepo) ReplaceVariants(ctx context.Context, componentID string, nbphase int, vs []entity.ComponentVariant) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM components_list WHERE component_id = $1 AND nbphase = $2`, componentID, nbphase); err != nil {
		return fmt.Errorf("delete component variants: %w", err)
	}
	if len(vs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range vs {
		batch.Queue(`INSERT INTO components_list (nbphase, thickness, width, poles, shape, component_id)
			VALUES ($1, $2, $3, $4, $5, $6)`, nbphase, v.Thickness, v.Width, v.Poles, v.Shape, componentID)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range vs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert component variant: %w", err)
		}
	}
	return br.Close()
}

// FindVariants exact match used by the busbar search.
func (r *ComponentRepo) FindVariants(ctx context.Context, f entity.VariantQuery) ([]*entity.ComponentVariant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM components_list
		WHERE nbphase = $1 AND thickness = $2 AND width = $3 AND poles = $4 AND shape = $5
		ORDER BY component_id, id`, f.NbPhase, f.Thickness, f.Width, f.Poles, f.Shape)
	if err != nil {
		return nil, fmt.Errorf("find component variants: %w", err)
	}
	return collectVariants(rows)
}

// Delete removes info and variants. Run it inside a transaction.
func (r *ComponentRepo) Delete(ctx context.Context, componentID string, nbphase int) (int64, error) {
	infoTag, err := r.q.Exec(ctx, `DELETE FROM components_info WHERE key = $1 AND nbphase = $2`, componentID, nbphase)
	if err != nil {
		return 0, fmt.Errorf("delete component info: %w", err)
	}
	listTag, err := r.q.Exec(ctx, `DELETE FROM components_list WHERE component_id = $1 AND nbphase = $2`, componentID, nbphase)
	if err != nil {
		return 0, fmt.Errorf("delete component variants: %w", err)
	}
	return infoTag.RowsAffected() + listTag.RowsAffected(), nil
}

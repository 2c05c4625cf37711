package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.SearchLogRepository = (*SearchLogRepo)(nil)

// SearchLogRepo user_search_logs over PostgreSQL.
type SearchLogRepo struct {
	q Querier
}

// NewSearchLogRepository builds the search log adapter.
func NewSearchLogRepository(q Querier) *SearchLogRepo {
	return &SearchLogRepo{q: q}
}

// CountForDay returns 0 when the user has no row for day.
func (r *SearchLogRepo) CountForDay(ctx context.Context, userID string, day time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(search_count), 0) FROM user_search_logs WHERE user_id = $1 AND log_date = $2::date`,
		userID, day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count searches: %w", err)
	}
	return n, nil
}

// IncrementIfBelow upserts the daily row in a single statement so concurrent
// searches of one user cannot overshoot the limit.
func (r *SearchLogRepo) IncrementIfBelow(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	query := `
		INSERT INTO user_search_logs (id, user_id, log_date, search_count, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::date, 1, now(), now()
		WHERE $4::int < 0 OR $4::int > 0
		ON CONFLICT (user_id, log_date) DO UPDATE
			SET search_count = user_search_logs.search_count + 1, updated_at = now()
			WHERE $4::int < 0 OR user_search_logs.search_count < $4::int
		RETURNING search_count`
	var n int
	err := r.q.QueryRow(ctx, query, uuid.New().String(), userID, day, limit).Scan(&n)
	if err == nil {
		return n, true, nil
	}
	if !isNoRows(err) {
		return 0, false, fmt.Errorf("increment search log: %w", err)
	}
	n, err = r.CountForDay(ctx, userID, day)
	if err != nil {
		return 0, false, err
	}
	return n, false, nil
}

// List newest days first with the owning user.
func (r *SearchLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.SearchLogRow, error) {
	query := `
		SELECT l.id, l.user_id, l.log_date, l.search_count, l.created_at, l.updated_at,
			COALESCE(u.email, ''), COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(c.name, '')
		FROM user_search_logs l
		LEFT JOIN users u ON u.id = l.user_id
		LEFT JOIN companies c ON c.id = u.company_id
		ORDER BY l.log_date DESC, l.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list search logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SearchLogRow
	for rows.Next() {
		var row entity.SearchLogRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.LogDate, &row.SearchCount, &row.CreatedAt, &row.UpdatedAt,
			&row.Email, &row.FirstName, &row.LastName, &row.CompanyName); err != nil {
			return nil, fmt.Errorf("scan search log: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// ListByUser rows of one user inside [since, until].
func (r *SearchLogRepo) ListByUser(ctx context.Context, userID string, since, until time.Time) ([]*entity.SearchLog, error) {
	query := `
		SELECT id, user_id, log_date, search_count, created_at, updated_at
		FROM user_search_logs
		WHERE user_id = $1 AND log_date BETWEEN $2::date AND $3::date
		ORDER BY log_date DESC`
	rows, err := r.q.Query(ctx, query, userID, since, until)
	if err != nil {
		return nil, fmt.Errorf("list user search logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SearchLog
	for rows.Next() {
		var l entity.SearchLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.LogDate, &l.SearchCount, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan search log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

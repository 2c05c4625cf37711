package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only dashboard queries.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// DailyStats searches and distinct searching users per day.
func (r *AnalyticsRepo) DailyStats(ctx context.Context, since, until time.Time) ([]entity.DailyStat, error) {
	query := `
		SELECT log_date, COALESCE(SUM(search_count), 0), COUNT(DISTINCT user_id) FILTER (WHERE search_count > 0)
		FROM user_search_logs
		WHERE log_date BETWEEN $1::date AND $2::date
		GROUP BY log_date
		ORDER BY log_date`
	rows, err := r.q.Query(ctx, query, since, until)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	defer rows.Close()
	var out []entity.DailyStat
	for rows.Next() {
		var s entity.DailyStat
		if err := rows.Scan(&s.Date, &s.TotalSearches, &s.ActiveUsers); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TotalStats global counters; active users are counted over the 7 days ending today.
func (r *AnalyticsRepo) TotalStats(ctx context.Context, today time.Time) (*entity.TotalStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(DISTINCT user_id) FROM user_search_logs WHERE log_date >= $1::date - 6),
			(SELECT COALESCE(SUM(search_count), 0) FROM user_search_logs),
			(SELECT COALESCE(SUM(search_count), 0) FROM user_search_logs WHERE log_date = $1::date)`
	var s entity.TotalStats
	if err := r.q.QueryRow(ctx, query, today).Scan(&s.TotalUsers, &s.ActiveUsers, &s.TotalSearches, &s.TodaySearches); err != nil {
		return nil, fmt.Errorf("total stats: %w", err)
	}
	return &s, nil
}

// UserActivity users ordered by total searches, then newest account.
func (r *AnalyticsRepo) UserActivity(ctx context.Context, limit int) ([]entity.UserActivity, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, COALESCE(c.name, ''), u.email,
			COALESCE(SUM(l.search_count), 0) AS total_searches, MAX(l.log_date), u.created_at
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		LEFT JOIN user_search_logs l ON l.user_id = u.id
		GROUP BY u.id, c.name
		ORDER BY total_searches DESC, u.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("user activity: %w", err)
	}
	defer rows.Close()
	var out []entity.UserActivity
	for rows.Next() {
		var a entity.UserActivity
		if err := rows.Scan(&a.UserID, &a.FirstName, &a.LastName, &a.CompanyName, &a.Email,
			&a.TotalSearches, &a.LastActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

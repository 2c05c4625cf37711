package repository

import (
	"context"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// AnalyticsRepository read-only queries for the admin dashboard.
type AnalyticsRepository interface {
	// DailyStats returns the days in [since, until] that have searches, oldest first.
	DailyStats(ctx context.Context, since, until time.Time) ([]entity.DailyStat, error)
	TotalStats(ctx context.Context, today time.Time) (*entity.TotalStats, error)
	UserActivity(ctx context.Context, limit int) ([]entity.UserActivity, error)
}

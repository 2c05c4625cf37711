package repository

import (
	"context"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// SearchLogRepository daily search counters.
type SearchLogRepository interface {
	// CountForDay returns the counter of userID on day (0 when absent).
	CountForDay(ctx context.Context, userID string, day time.Time) (int, error)
	// IncrementIfBelow atomically bumps the counter for day when it is below limit.
	// A negative limit means unlimited. It returns the new count and whether it was incremented.
	IncrementIfBelow(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SearchLogRow, error)
	// ListByUser returns the user's rows with LogDate in [since, until], newest first.
	ListByUser(ctx context.Context, userID string, since, until time.Time) ([]*entity.SearchLog, error)
}

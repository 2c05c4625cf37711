package entity

import "time"

// SearchLog daily search counter for a user. One row per (UserID, LogDate).
type SearchLog struct {
	ID          string
	UserID      string
	LogDate     time.Time
	SearchCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DailyStat aggregated searches for one day.
type DailyStat struct {
	Date          time.Time
	TotalSearches int
	ActiveUsers   int
}

// TotalStats global counters for the admin dashboard.
type TotalStats struct {
	TotalUsers    int
	ActiveUsers   int // distinct users with searches in the last 7 days
	TotalSearches int
	TodaySearches int
}

// UserActivity per-user search totals.
type UserActivity struct {
	UserID        string
	FirstName     string
	LastName      string
	CompanyName   string
	Email         string
	TotalSearches int
	LastActive    *time.Time
	CreatedAt     time.Time
}

// SearchLogRow search log joined with its user, as listed on the admin screen.
type SearchLogRow struct {
	SearchLog
	Email       string
	FirstName   string
	LastName    string
	CompanyName string
}

// LogDay truncates t to its calendar day, as stored in log_date.
func LogDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package dto

import "time"

// AnalyticsRequest query of GET /admin/analytics.
type AnalyticsRequest struct {
	Days          int `query:"days" validate:"omitempty,min=1,max=365"`
	ActivityLimit int `query:"activity_limit" validate:"omitempty,min=1,max=100"`
}

// DailyStatDTO one day of the analytics window.
type DailyStatDTO struct {
	Date          string `json:"date"` // YYYY-MM-DD
	TotalSearches int    `json:"total_searches"`
	ActiveUsers   int    `json:"active_users"`
}

// TotalStatsDTO global counters.
type TotalStatsDTO struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	TotalSearches int `json:"total_searches"`
	TodaySearches int `json:"today_searches"`
}

// UserActivityDTO per-user totals.
type UserActivityDTO struct {
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	Email         string  `json:"email"`
	TotalSearches int     `json:"total_searches"`
	LastActive    *string `json:"last_active"`
}

// AnalyticsResponse body of GET /admin/analytics.
type AnalyticsResponse struct {
	DailyStats   []DailyStatDTO    `json:"daily_stats"`
	TotalStats   TotalStatsDTO     `json:"total_stats"`
	UserActivity []UserActivityDTO `json:"user_activity"`
}

// SearchLogDTO one row of the admin search log listing.
type SearchLogDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	LogDate     string    `json:"log_date"`
	SearchCount int       `json:"search_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchLogListResponse body of GET /admin/search-logs.
type SearchLogListResponse struct {
	Logs []SearchLogDTO `json:"logs"`
	Page PageResponse   `json:"page"`
}

// UserSearchLogDTO one day of a user's history.
type UserSearchLogDTO struct {
	LogDate     string `json:"log_date"`
	SearchCount int    `json:"search_count"`
}

// UserSearchLogsResponse body of GET /admin/search-logs/:user_id.
type UserSearchLogsResponse struct {
	UserID string             `json:"user_id"`
	Days   int                `json:"days"`
	Logs   []UserSearchLogDTO `json:"logs"`
}

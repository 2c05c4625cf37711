// Package analytics holds the admin reporting over user search logs.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

const (
	DefaultDays          = 7
	DefaultActivityLimit = 20
	DefaultUserLogDays   = 30
	DefaultLogLimit      = 100
	MaxLogLimit          = 500
	maxDays              = 365
	maxActivityLimit     = 100
	dateLayout           = "2006-01-02"
)

// AnalyticsUseCase dashboard and search log listings.
type AnalyticsUseCase struct {
	analytics  repository.AnalyticsRepository
	searchLogs repository.SearchLogRepository
	users      repository.UserRepository
	now        func() time.Time
}

// NewAnalyticsUseCase builds the use case.
func NewAnalyticsUseCase(
	analytics repository.AnalyticsRepository,
	searchLogs repository.SearchLogRepository,
	users repository.UserRepository,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{analytics: analytics, searchLogs: searchLogs, users: users, now: time.Now}
}

func clamp(v, lo, hi, def int) int {
	if v == 0 {
		v = def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Overview builds the dashboard. The three queries run concurrently.
func (uc *AnalyticsUseCase) Overview(ctx context.Context, in dto.AnalyticsRequest) (*dto.AnalyticsResponse, error) {
	days := clamp(in.Days, 1, maxDays, DefaultDays)
	limit := clamp(in.ActivityLimit, 1, maxActivityLimit, DefaultActivityLimit)
	today := entity.LogDay(uc.now())
	since := today.AddDate(0, 0, -(days - 1))

	var (
		daily    []entity.DailyStat
		totals   *entity.TotalStats
		activity []entity.UserActivity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = uc.analytics.DailyStats(gctx, since, today)
		if err != nil {
			return fmt.Errorf("analytics: daily stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = uc.analytics.TotalStats(gctx, today)
		if err != nil {
			return fmt.Errorf("analytics: total stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		activity, err = uc.analytics.UserActivity(gctx, limit)
		if err != nil {
			return fmt.Errorf("analytics: user activity: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		DailyStats:   FillDays(daily, since, days),
		UserActivity: make([]dto.UserActivityDTO, 0, len(activity)),
	}
	if totals != nil {
		resp.TotalStats = dto.TotalStatsDTO{
			TotalUsers:    totals.TotalUsers,
			ActiveUsers:   totals.ActiveUsers,
			TotalSearches: totals.TotalSearches,
			TodaySearches: totals.TodaySearches,
		}
	}
	for _, a := range activity {
		item := dto.UserActivityDTO{
			UserID:        a.UserID,
			UserName:      DisplayName(a.FirstName, a.LastName, a.CompanyName, a.Email),
			Email:         a.Email,
			TotalSearches: a.TotalSearches,
		}
		if a.LastActive != nil {
			s := a.LastActive.Format(dateLayout)
			item.LastActive = &s
		}
		resp.UserActivity = append(resp.UserActivity, item)
	}
	return resp, nil
}

// FillDays returns one entry per day starting at since, zero-filling days without searches.
func FillDays(stats []entity.DailyStat, since time.Time, days int) []dto.DailyStatDTO {
	byDay := make(map[string]entity.DailyStat, len(stats))
	for _, s := range stats {
		byDay[s.Date.Format(dateLayout)] = s
	}
	out := make([]dto.DailyStatDTO, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format(dateLayout)
		s := byDay[day]
		out = append(out, dto.DailyStatDTO{Date: day, TotalSearches: s.TotalSearches, ActiveUsers: s.ActiveUsers})
	}
	return out
}

// DisplayName is "first last" when set, else the company name, else the email.
func DisplayName(first, last, company, email string) string {
	if name := strings.TrimSpace(first + " " + last); name != "" {
		return name
	}
	if company != "" {
		return company
	}
	return email
}

// SearchLogs admin listing, newest day first.
func (uc *AnalyticsUseCase) SearchLogs(ctx context.Context, page dto.PageRequest) (*dto.SearchLogListResponse, error) {
	page.DefaultPage(DefaultLogLimit, MaxLogLimit)
	rows, err := uc.searchLogs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SearchLogListResponse{
		Logs: make([]dto.SearchLogDTO, 0, len(rows)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range rows {
		out.Logs = append(out.Logs, dto.SearchLogDTO{
			ID:          r.ID,
			UserID:      r.UserID,
			UserName:    DisplayName(r.FirstName, r.LastName, r.CompanyName, r.Email),
			Email:       r.Email,
			LogDate:     r.LogDate.Format(dateLayout),
			SearchCount: r.SearchCount,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out, nil
}

// UserSearchLogs history of one user over the last days (1..365, default 30).
func (uc *AnalyticsUseCase) UserSearchLogs(ctx context.Context, userID string, days int) (*dto.UserSearchLogsResponse, error) {
	days = clamp(days, 1, maxDays, DefaultUserLogDays)
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	today := entity.LogDay(uc.now())
	logs, err := uc.searchLogs.ListByUser(ctx, userID, today.AddDate(0, 0, -(days-1)), today)
	if err != nil {
		return nil, err
	}
	out := &dto.UserSearchLogsResponse{UserID: userID, Days: days, Logs: make([]dto.UserSearchLogDTO, 0, len(logs))}
	for _, l := range logs {
		out.Logs = append(out.Logs, dto.UserSearchLogDTO{LogDate: l.LogDate.Format(dateLayout), SearchCount: l.SearchCount})
	}
	return out, nil
}

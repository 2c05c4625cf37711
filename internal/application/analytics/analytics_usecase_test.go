package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/analytics"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/infrastructure/memory"
)

func addUser(t *testing.T, store *memory.Store, first, email string) string {
	t.Helper()
	ctx := context.Background()
	c := &entity.Company{Name: "Acme " + email, RegistrationNumber: email}
	require.NoError(t, store.Companies().Create(ctx, c))
	u := &entity.User{CompanyID: c.ID, Email: email, FirstName: first, Role: entity.RoleUser, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(ctx, u))
	return u.ID
}

func TestOverview(t *testing.T) {
	store := memory.NewStore()
	a := addUser(t, store, "An", "a@example.com")
	b := addUser(t, store, "", "b@example.com")
	addUser(t, store, "Chi", "c@example.com")

	now := time.Now()
	logs := store.SearchLogs()
	logs.Seed(a, now, 4)
	logs.Seed(a, now.AddDate(0, 0, -2), 3)
	logs.Seed(b, now.AddDate(0, 0, -2), 1)
	logs.Seed(b, now.AddDate(0, 0, -30), 9)

	uc := analytics.NewAnalyticsUseCase(store.Analytics(), store.SearchLogs(), store.Users())
	resp, err := uc.Overview(context.Background(), dto.AnalyticsRequest{})
	require.NoError(t, err)

	require.Len(t, resp.DailyStats, analytics.DefaultDays)
	last := resp.DailyStats[len(resp.DailyStats)-1]
	assert.Equal(t, entity.LogDay(now).Format("2006-01-02"), last.Date)
	assert.Equal(t, 4, last.TotalSearches)
	assert.Equal(t, 1, last.ActiveUsers)
	twoDaysAgo := resp.DailyStats[len(resp.DailyStats)-3]
	assert.Equal(t, 4, twoDaysAgo.TotalSearches)
	assert.Equal(t, 2, twoDaysAgo.ActiveUsers)
	assert.Zero(t, resp.DailyStats[0].TotalSearches)

	assert.Equal(t, dto.TotalStatsDTO{TotalUsers: 3, ActiveUsers: 2, TotalSearches: 17, TodaySearches: 4}, resp.TotalStats)

	require.Len(t, resp.UserActivity, 3)
	assert.Equal(t, b, resp.UserActivity[0].UserID)
	assert.Equal(t, 10, resp.UserActivity[0].TotalSearches)
	assert.Equal(t, "Acme b@example.com", resp.UserActivity[0].UserName)
	assert.Equal(t, "An", resp.UserActivity[1].UserName)
	assert.Nil(t, resp.UserActivity[2].LastActive)
}

func TestOverview_ClampsWindow(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewAnalyticsUseCase(store.Analytics(), store.SearchLogs(), store.Users())

	resp, err := uc.Overview(context.Background(), dto.AnalyticsRequest{Days: 1000})
	require.NoError(t, err)
	assert.Len(t, resp.DailyStats, 365)
	assert.Empty(t, resp.UserActivity)
}

type failingAnalytics struct{ memory.AnalyticsRepo }

func (failingAnalytics) TotalStats(context.Context, time.Time) (*entity.TotalStats, error) {
	return nil, errors.New("db down")
}

func TestOverview_PropagatesErrors(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewAnalyticsUseCase(&failingAnalytics{*store.Analytics()}, store.SearchLogs(), store.Users())

	_, err := uc.Overview(context.Background(), dto.AnalyticsRequest{})
	assert.ErrorContains(t, err, "total stats")
}

func TestFillDays(t *testing.T) {
	since := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	out := analytics.FillDays([]entity.DailyStat{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TotalSearches: 5, ActiveUsers: 2},
	}, since, 4)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"},
		[]string{out[0].Date, out[1].Date, out[2].Date, out[3].Date})
	assert.Equal(t, 5, out[2].TotalSearches)
	assert.Zero(t, out[3].ActiveUsers)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "An Nguyen", analytics.DisplayName("An", "Nguyen", "Acme", "a@x"))
	assert.Equal(t, "Nguyen", analytics.DisplayName("", "Nguyen", "Acme", "a@x"))
	assert.Equal(t, "Acme", analytics.DisplayName("", "", "Acme", "a@x"))
	assert.Equal(t, "a@x", analytics.DisplayName("", "", "", "a@x"))
}

func TestSearchLogs(t *testing.T) {
	store := memory.NewStore()
	a := addUser(t, store, "An", "a@example.com")
	now := time.Now()
	store.SearchLogs().Seed(a, now.AddDate(0, 0, -1), 2)
	store.SearchLogs().Seed(a, now, 1)

	uc := analytics.NewAnalyticsUseCase(store.Analytics(), store.SearchLogs(), store.Users())
	resp, err := uc.SearchLogs(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultLogLimit, resp.Page.Limit)
	require.Len(t, resp.Logs, 2)
	assert.Equal(t, entity.LogDay(now).Format("2006-01-02"), resp.Logs[0].LogDate)
	assert.Equal(t, "An", resp.Logs[0].UserName)

	hist, err := uc.UserSearchLogs(context.Background(), a, 1)
	require.NoError(t, err)
	require.Len(t, hist.Logs, 1)
	assert.Equal(t, 1, hist.Logs[0].SearchCount)

	_, err = uc.UserSearchLogs(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

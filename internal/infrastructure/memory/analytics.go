package memory

import (
	"context"
	"sort"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) DailyStats(_ context.Context, since, until time.Time) ([]entity.DailyStat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	since, until = entity.LogDay(since), entity.LogDay(until)
	byDay := map[time.Time]*entity.DailyStat{}
	for k, l := range r.s.logs {
		if k.day.Before(since) || k.day.After(until) {
			continue
		}
		st, ok := byDay[k.day]
		if !ok {
			st = &entity.DailyStat{Date: k.day}
			byDay[k.day] = st
		}
		st.TotalSearches += l.SearchCount
		if l.SearchCount > 0 {
			st.ActiveUsers++
		}
	}
	out := make([]entity.DailyStat, 0, len(byDay))
	for _, st := range byDay {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AnalyticsRepo) TotalStats(_ context.Context, today time.Time) (*entity.TotalStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	today = entity.LogDay(today)
	weekStart := today.AddDate(0, 0, -6)
	st := &entity.TotalStats{TotalUsers: len(r.s.users)}
	active := map[string]bool{}
	for k, l := range r.s.logs {
		st.TotalSearches += l.SearchCount
		if k.day.Equal(today) {
			st.TodaySearches += l.SearchCount
		}
		if !k.day.Before(weekStart) {
			active[k.userID] = true
		}
	}
	st.ActiveUsers = len(active)
	return st, nil
}

func (r *AnalyticsRepo) UserActivity(_ context.Context, limit int) ([]entity.UserActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.UserActivity, 0, len(r.s.users))
	for _, u := range r.s.sortedUsers(true) {
		a := entity.UserActivity{
			UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, CreatedAt: u.CreatedAt,
		}
		if c, ok := r.s.companies[u.CompanyID]; ok {
			a.CompanyName = c.Name
		}
		for k, l := range r.s.logs {
			if k.userID != u.ID {
				continue
			}
			a.TotalSearches += l.SearchCount
			if a.LastActive == nil || k.day.After(*a.LastActive) {
				d := k.day
				a.LastActive = &d
			}
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSearches > out[j].TotalSearches })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

type ComponentRepo struct{ s *Store }

func (r *ComponentRepo) CreateInfo(_ context.Context, ci *entity.ComponentInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := compKey{ci.Key, ci.NbPhase}
	if _, ok := r.s.infos[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *ci
	r.s.infos[k] = &cp
	return nil
}

// UpdateInfo touches the same columns as the postgres repository.
func (r *ComponentRepo) UpdateInfo(_ context.Context, ci *entity.ComponentInfo) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.infos[compKey{ci.Key, ci.NbPhase}]
	if !ok {
		return false, nil
	}
	cur.Angle, cur.Resmini, cur.Info, cur.AList, cur.UnitPrice = ci.Angle, ci.Resmini, ci.Info, ci.AList, ci.UnitPrice
	return true, nil
}

// GetInfo an empty key lists every component of nbphase.
func (r *ComponentRepo) GetInfo(_ context.Context, key string, nbphase int) ([]*entity.ComponentInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ComponentInfo
	for k, ci := range r.s.infos {
		if k.nbphase == nbphase && (key == "" || k.key == key) {
			cp := *ci
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *ComponentRepo) GetInfoByKeys(_ context.Context, keys []string, nbphase int) (map[string][]*entity.ComponentInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string][]*entity.ComponentInfo, len(keys))
	for _, key := range keys {
		if ci, ok := r.s.infos[compKey{key, nbphase}]; ok {
			cp := *ci
			out[key] = append(out[key], &cp)
		}
	}
	return out, nil
}

func (r *ComponentRepo) ListVariants(_ context.Context, componentID string, nbphase int) ([]*entity.ComponentVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterVariants(func(v *entity.ComponentVariant) bool {
		return v.ComponentID == componentID && v.NbPhase == nbphase
	}), nil
}

// filterVariants returns copies sorted by component then id. Caller holds the lock.
func (s *Store) filterVariants(keep func(*entity.ComponentVariant) bool) []*entity.ComponentVariant {
	out := []*entity.ComponentVariant{}
	for _, v := range s.variants {
		if keep(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ComponentID != out[j].ComponentID {
			return out[i].ComponentID < out[j].ComponentID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *ComponentRepo) ReplaceVariants(_ context.Context, componentID string, nbphase int, vs []entity.ComponentVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.dropVariants(componentID, nbphase)
	for _, v := range vs {
		r.s.nextVarID++
		v.ID = r.s.nextVarID
		v.ComponentID = componentID
		v.NbPhase = nbphase
		cp := v
		r.s.variants = append(r.s.variants, &cp)
	}
	return nil
}

// dropVariants caller holds the lock.
func (s *Store) dropVariants(componentID string, nbphase int) int64 {
	kept := s.variants[:0]
	var n int64
	for _, v := range s.variants {
		if v.ComponentID == componentID && v.NbPhase == nbphase {
			n++
			continue
		}
		kept = append(kept, v)
	}
	s.variants = kept
	return n
}

func (r *ComponentRepo) FindVariants(_ context.Context, q entity.VariantQuery) ([]*entity.ComponentVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterVariants(func(v *entity.ComponentVariant) bool {
		return v.NbPhase == q.NbPhase && v.Thickness == q.Thickness && v.Width == q.Width &&
			v.Poles == q.Poles && v.Shape == q.Shape
	}), nil
}

func (r *ComponentRepo) Delete(_ context.Context, componentID string, nbphase int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := r.s.dropVariants(componentID, nbphase)
	k := compKey{componentID, nbphase}
	if _, ok := r.s.infos[k]; ok {
		delete(r.s.infos, k)
		n++
	}
	return n, nil
}

// ── calc cache ───────────────────────────────────────────────────────────────

type CalcRepo struct{ s *Store }

func (r *CalcRepo) Get(_ context.Context, p entity.CalcParams) (*entity.CalcRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.calcs[p]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *CalcRepo) Save(_ context.Context, rec *entity.CalcRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.calcs[rec.CalcParams]; ok {
		return nil
	}
	cp := *rec
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.calcs[rec.CalcParams] = &cp
	return nil
}

// Len number of cached calculations.
func (r *CalcRepo) Len() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.calcs)
}

// ── search logs ──────────────────────────────────────────────────────────────

type SearchLogRepo struct{ s *Store }

func (r *SearchLogRepo) CountForDay(_ context.Context, userID string, day time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.logs[logKey{userID, entity.LogDay(day)}]; ok {
		return l.SearchCount, nil
	}
	return 0, nil
}

func (r *SearchLogRepo) IncrementIfBelow(_ context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := logKey{userID, entity.LogDay(day)}
	l, ok := r.s.logs[k]
	count := 0
	if ok {
		count = l.SearchCount
	}
	if limit >= 0 && count >= limit {
		return count, false, nil
	}
	now := time.Now()
	if !ok {
		l = &entity.SearchLog{ID: uuid.New().String(), UserID: userID, LogDate: k.day, CreatedAt: now}
		r.s.logs[k] = l
	}
	l.SearchCount++
	l.UpdatedAt = now
	return l.SearchCount, true, nil
}

// Seed sets the counter of userID on day, creating the row when missing.
func (r *SearchLogRepo) Seed(userID string, day time.Time, count int) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := logKey{userID, entity.LogDay(day)}
	now := time.Now()
	r.s.logs[k] = &entity.SearchLog{
		ID: uuid.New().String(), UserID: userID, LogDate: k.day, SearchCount: count, CreatedAt: now, UpdatedAt: now,
	}
}

func (r *SearchLogRepo) List(_ context.Context, limit, offset int) ([]*entity.SearchLogRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.SearchLogRow, 0, len(r.s.logs))
	for _, l := range r.s.logs {
		row := &entity.SearchLogRow{SearchLog: *l}
		if u, ok := r.s.users[l.UserID]; ok {
			row.Email, row.FirstName, row.LastName = u.Email, u.FirstName, u.LastName
			if c, ok := r.s.companies[u.CompanyID]; ok {
				row.CompanyName = c.Name
			}
		}
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].LogDate.Equal(all[j].LogDate) {
			return all[i].LogDate.After(all[j].LogDate)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	out := []*entity.SearchLogRow{}
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *SearchLogRepo) ListByUser(_ context.Context, userID string, since, until time.Time) ([]*entity.SearchLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	since, until = entity.LogDay(since), entity.LogDay(until)
	out := []*entity.SearchLog{}
	for k, l := range r.s.logs {
		if k.userID == userID && !k.day.Before(since) && !k.day.After(until) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate.After(out[j].LogDate) })
	return out, nil
}

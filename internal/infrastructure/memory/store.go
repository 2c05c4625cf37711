// Package memory holds in-process implementations of the repository ports.
// Use-case tests run against it; it keeps no data across restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
	_ repository.ComponentRepository = (*ComponentRepo)(nil)
	_ repository.CalcRepository      = (*CalcRepo)(nil)
	_ repository.SearchLogRepository = (*SearchLogRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
	_ auth.TxRunner                  = (*Store)(nil)
	_ catalog.TxRunner               = (*Store)(nil)
)

type compKey struct {
	key     string
	nbphase int
}

type logKey struct {
	userID string
	day    time.Time
}

// Store shared state of every repository. Writes inside RunAccount and RunCatalog
// are not rolled back on error.
type Store struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	companies map[string]*entity.Company
	infos     map[compKey]*entity.ComponentInfo
	variants  []*entity.ComponentVariant
	nextVarID int64
	calcs     map[entity.CalcParams]*entity.CalcRecord
	logs      map[logKey]*entity.SearchLog
	seq       int64
	userOrder map[string]int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     map[string]*entity.User{},
		companies: map[string]*entity.Company{},
		infos:     map[compKey]*entity.ComponentInfo{},
		calcs:     map[entity.CalcParams]*entity.CalcRecord{},
		logs:      map[logKey]*entity.SearchLog{},
		userOrder: map[string]int64{},
	}
}

func (s *Store) Users() *UserRepo { return &UserRepo{s} }
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s} }
func (s *Store) Components() *ComponentRepo { return &ComponentRepo{s} }
func (s *Store) Calcs() *CalcRepo { return &CalcRepo{s} }
func (s *Store) SearchLogs() *SearchLogRepo { return &SearchLogRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s} }

// RunAccount implements auth.TxRunner.
func (s *Store) RunAccount(_ context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(s.Companies(), s.Users())
}

// RunCatalog implements catalog.TxRunner.
func (s *Store) RunCatalog(_ context.Context, fn func(repository.ComponentRepository) error) error {
	return fn(s.Components())
}

// ── users ────────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.s.users[u.ID] = &cp
	r.s.seq++
	r.s.userOrder[u.ID] = r.s.seq
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetFirstByCompany(_ context.Context, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var first *entity.User
	for _, u := range r.s.sortedUsers(false) {
		if u.CompanyID == companyID {
			first = u
			break
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

// sortedUsers by insertion order. Caller holds the lock.
func (s *Store) sortedUsers(newestFirst bool) []*entity.User {
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return s.userOrder[out[i].ID] > s.userOrder[out[j].ID]
		}
		return s.userOrder[out[i].ID] < s.userOrder[out[j].ID]
	})
	return out
}

// profile caller holds the lock.
func (s *Store) profile(u *entity.User, day time.Time) *entity.UserWithCompany {
	p := &entity.UserWithCompany{User: *u}
	if c, ok := s.companies[u.CompanyID]; ok {
		p.Company = *c
	}
	if l, ok := s.logs[logKey{u.ID, entity.LogDay(day)}]; ok {
		p.TodaySearches = l.SearchCount
	}
	return p
}

func (r *UserRepo) GetProfile(_ context.Context, id string, day time.Time) (*entity.UserWithCompany, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return r.s.profile(u, day), nil
}

func (r *UserRepo) List(_ context.Context, day time.Time, limit, offset int) ([]*entity.UserWithCompany, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.s.sortedUsers(true)
	out := []*entity.UserWithCompany{}
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, r.s.profile(all[i], day))
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, other := range r.s.users {
		if other.ID != u.ID && strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return false, nil
	}
	delete(r.s.users, id)
	for k := range r.s.logs {
		if k.userID == id {
			delete(r.s.logs, k)
		}
	}
	return true, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

// ── companies ────────────────────────────────────────────────────────────────

type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.companies {
		if other.RegistrationNumber == c.RegistrationNumber {
			return domain.ErrRegistrationExists
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CompanyRepo) GetByRegistrationNumber(_ context.Context, number string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.RegistrationNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *CompanyRepo) DeleteIfUnused(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[id]; !ok {
		return false, nil
	}
	for _, u := range r.s.users {
		if u.CompanyID == id {
			return false, nil
		}
	}
	delete(r.s.companies, id)
	return true, nil
}

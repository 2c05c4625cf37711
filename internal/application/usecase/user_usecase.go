package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

var _ auth.ProfileReader = (*UserUseCase)(nil)

// UserUseCase admin user management and the daily search quota.
type UserUseCase struct {
	users        repository.UserRepository
	searchLogs   repository.SearchLogRepository
	tx           auth.TxRunner
	defaultQuota int
	log          *logger.Logger
	now          func() time.Time
}

// NewUserUseCase builds the use case.
func NewUserUseCase(
	users repository.UserRepository,
	searchLogs repository.SearchLogRepository,
	tx auth.TxRunner,
	defaultQuota int,
	log *logger.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		searchLogs:   searchLogs,
		tx:           tx,
		defaultQuota: defaultQuota,
		log:          log,
		now:          time.Now,
	}
}

func (uc *UserUseCase) today() time.Time {
	return entity.LogDay(uc.now())
}

// Profile returns nil, nil when the user does not exist.
func (uc *UserUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	p, err := uc.users.GetProfile(ctx, userID, uc.today())
	if err != nil || p == nil {
		return nil, err
	}
	return ToUserResponse(p), nil
}

// Get returns ErrUserNotFound when missing.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	p, err := uc.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}

// List users newest first.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage(50, 500)
	list, err := uc.users.List(ctx, uc.today(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range list {
		out.Users = append(out.Users, *ToUserResponse(p))
	}
	return out, nil
}

// Create an account on behalf of an admin. Role and quota may be chosen.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	quota := uc.defaultQuota
	if in.DailySearchLimit != nil {
		quota = *in.DailySearchLimit
	}
	company, user, err := auth.NewAccount(in.RegisterRequest, role, quota, uc.now())
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := auth.CreateAccount(ctx, uc.tx, company, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role).Msg("user created")
	return uc.Get(ctx, user.ID)
}

// Update applies a partial update to the user and its company in one transaction.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	current, err := uc.users.GetProfile(ctx, id, uc.today())
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}
	user, company := current.User, current.Company
	companyChanged := applyCompanyUpdate(&company, in)
	if err := applyUserUpdate(&user, in); err != nil {
		return nil, err
	}
	now := uc.now()
	user.UpdatedAt = now
	company.UpdatedAt = now

	err = uc.tx.RunAccount(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if in.Email != nil && !strings.EqualFold(user.Email, current.Email) {
			taken, err := users.GetByEmail(ctx, user.Email)
			if err != nil {
				return err
			}
			if taken != nil && taken.ID != user.ID {
				return domain.ErrEmailAlreadyExists
			}
		}
		if companyChanged {
			if err := companies.Update(ctx, &company); err != nil {
				return err
			}
		}
		return users.Update(ctx, &user)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

func applyUserUpdate(u *entity.User, in dto.UpdateUserRequest) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	set(&u.FirstName, in.FirstName)
	set(&u.LastName, in.LastName)
	set(&u.JobPosition, in.JobPosition)
	set(&u.ProfessionalAddress, in.ProfessionalAddress)
	set(&u.PostalCode, in.PostalCode)
	set(&u.City, in.City)
	set(&u.Country, in.Country)
	set(&u.DirectPhone, in.DirectPhone)
	set(&u.MobilePhone, in.MobilePhone)
	set(&u.Role, in.Role)
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.DailySearchLimit != nil {
		u.DailySearchLimit = *in.DailySearchLimit
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	return nil
}

func applyCompanyUpdate(c *entity.Company, in dto.UpdateUserRequest) bool {
	changed := false
	set := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != *dst {
			*dst = strings.TrimSpace(*v)
			changed = true
		}
	}
	set(&c.Name, in.CompanyName)
	set(&c.RegistrationNumber, in.RegistrationNumber)
	set(&c.Activities, in.Activities)
	set(&c.ActivitiesOther, in.ActivitiesOther)
	set(&c.EmployeeCount, in.EmployeeCount)
	set(&c.Phone, in.CompanyPhone)
	return changed
}

// Delete removes the user and, when it was the last one, its company.
// Returns ErrUserNotFound when no row matched.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	var companyDeleted bool
	err := uc.tx.RunAccount(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		ok, err := users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}
		companyDeleted, err = companies.DeleteIfUnused(ctx, user.CompanyID)
		return err
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Bool("company_deleted", companyDeleted).Msg("user deleted")
	return nil
}

// QuotaStatus today's quota of a user.
func (uc *UserUseCase) QuotaStatus(ctx context.Context, id string) (*dto.QuotaStatus, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, err := uc.searchLogs.CountForDay(ctx, id, uc.today())
	if err != nil {
		return nil, err
	}
	q := NewQuotaStatus(user, count)
	return &q, nil
}

// IncrementSearch consumes one search of today's quota. Admins are unlimited;
// inactive users and spent quotas are refused.
func (uc *UserUseCase) IncrementSearch(ctx context.Context, id string) (*dto.IncrementSearchResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	limit := user.DailySearchLimit
	if user.IsAdmin() {
		limit = -1
	}
	count, ok, err := uc.searchLogs.IncrementIfBelow(ctx, id, uc.today(), limit)
	if err != nil {
		return nil, err
	}
	status := NewQuotaStatus(user, count)
	if !ok {
		return &dto.IncrementSearchResponse{Allowed: false, QuotaStatus: status}, domain.ErrQuotaExceeded
	}
	return &dto.IncrementSearchResponse{Allowed: true, QuotaStatus: status}, nil
}

// ConsumeSearch is IncrementSearch for callers that only need the verdict.
func (uc *UserUseCase) ConsumeSearch(ctx context.Context, userID string) error {
	_, err := uc.IncrementSearch(ctx, userID)
	return err
}

// DecrementLimit lowers the daily limit by one. A limit already at zero is rejected.
func (uc *UserUseCase) DecrementLimit(ctx context.Context, id string) (*dto.QuotaStatus, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.DailySearchLimit <= 0 {
		return nil, fmt.Errorf("%w: daily search limit is already 0", domain.ErrInvalidInput)
	}
	user.DailySearchLimit--
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	count, err := uc.searchLogs.CountForDay(ctx, id, uc.today())
	if err != nil {
		return nil, err
	}
	q := NewQuotaStatus(user, count)
	return &q, nil
}

// NewQuotaStatus derives the quota view of a user from today's count.
func NewQuotaStatus(u *entity.User, count int) dto.QuotaStatus {
	q := dto.QuotaStatus{DailySearchLimit: u.DailySearchLimit, SearchCount: count}
	if u.IsAdmin() {
		q.Unlimited = true
		return q
	}
	remaining := u.DailySearchLimit - count
	if remaining < 0 {
		remaining = 0
	}
	q.DailySearchRemaining = &remaining
	return q
}

// ToUserResponse maps a profile to its public view.
func ToUserResponse(p *entity.UserWithCompany) *dto.UserResponse {
	if p == nil {
		return nil
	}
	u := p.User
	return &dto.UserResponse{
		ID:                  u.ID,
		CompanyID:           u.CompanyID,
		CompanyName:         p.Company.Name,
		RegistrationNumber:  p.Company.RegistrationNumber,
		Activities:          p.Company.Activities,
		ActivitiesOther:     p.Company.ActivitiesOther,
		EmployeeCount:       p.Company.EmployeeCount,
		CompanyPhone:        p.Company.Phone,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		JobPosition:         u.JobPosition,
		ProfessionalAddress: u.ProfessionalAddress,
		PostalCode:          u.PostalCode,
		City:                u.City,
		Country:             u.Country,
		DirectPhone:         u.DirectPhone,
		MobilePhone:         u.MobilePhone,
		Role:                u.Role,
		IsActive:            u.IsActive,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
		QuotaStatus:         NewQuotaStatus(&u, p.TodaySearches),
	}
}

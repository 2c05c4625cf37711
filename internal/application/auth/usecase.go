package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
	"github.com/berlivn/eriflex-api/pkg/jwt"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration, login and current-user lookups.
type AuthUseCase struct {
	users        repository.UserRepository
	companies    repository.CompanyRepository
	tx           TxRunner
	profiles     ProfileReader
	jwtCfg       JWTConfig
	defaultQuota int
	log          *logger.Logger
	now          func() time.Time
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	tx TxRunner,
	profiles ProfileReader,
	jwtCfg JWTConfig,
	defaultQuota int,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:        users,
		companies:    companies,
		tx:           tx,
		profiles:     profiles,
		jwtCfg:       jwtCfg,
		defaultQuota: defaultQuota,
		log:          log,
		now:          time.Now,
	}
}

// Register creates the company and its first user in one transaction.
// Self-registered accounts always get the user role.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	company, user, err := NewAccount(in, entity.RoleUser, uc.defaultQuota, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.CreateAccount(ctx, company, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("company_id", company.ID).Msg("account registered")
	return uc.profiles.Profile(ctx, user.ID)
}

// CreateAccount persists company and user atomically after the uniqueness checks.
func (uc *AuthUseCase) CreateAccount(ctx context.Context, company *entity.Company, user *entity.User) error {
	return CreateAccount(ctx, uc.tx, company, user)
}

// CreateAccount runs the registration writes inside tx.
func CreateAccount(ctx context.Context, tx TxRunner, company *entity.Company, user *entity.User) error {
	return tx.RunAccount(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		existing, err := companies.GetByRegistrationNumber(ctx, company.RegistrationNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrRegistrationExists
		}
		taken, err := users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return users.Create(ctx, user)
	})
}

// NewAccount maps a registration payload to entities, hashing the password with bcrypt.
func NewAccount(in dto.RegisterRequest, role string, quota int, now time.Time) (*entity.Company, *entity.User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = entity.DefaultCountry
	}
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.CompanyName),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Activities:         in.Activities,
		ActivitiesOther:    in.ActivitiesOther,
		EmployeeCount:      in.EmployeeCount,
		Phone:              in.CompanyPhone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	user := &entity.User{
		ID:                  uuid.New().String(),
		CompanyID:           company.ID,
		Email:               strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:        hash,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		JobPosition:         in.JobPosition,
		ProfessionalAddress: in.ProfessionalAddress,
		PostalCode:          in.PostalCode,
		City:                in.City,
		Country:             country,
		DirectPhone:         in.DirectPhone,
		MobilePhone:         in.MobilePhone,
		Role:                role,
		IsActive:            true,
		DailySearchLimit:    quota,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	return company, user, nil
}

// Login checks the credentials and returns a signed token with the profile.
// The identifier is matched against user emails first, then company registration numbers.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.findByIdentifier(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("could not stamp last login")
	}
	profile, err := uc.profiles.Profile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *profile}, nil
}

func (uc *AuthUseCase) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	if identifier == "" {
		return nil, nil
	}
	user, err := uc.users.GetByEmail(ctx, identifier)
	if err != nil || user != nil {
		return user, err
	}
	company, err := uc.companies.GetByRegistrationNumber(ctx, identifier)
	if err != nil || company == nil {
		return nil, err
	}
	return uc.users.GetFirstByCompany(ctx, company.ID)
}

// Me returns the profile of the authenticated user.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	profile, err := uc.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	return profile, nil
}

// EnsureAdmin creates an admin account with a placeholder company when email is unused.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	company, user, err := NewAccount(dto.RegisterRequest{
		Email:              email,
		Password:           password,
		CompanyName:        "Administration",
		RegistrationNumber: "ADMIN-" + strings.ToUpper(uuid.New().String()[:8]),
		FirstName:          "Admin",
	}, entity.RoleAdmin, 0, uc.now())
	if err != nil {
		return false, err
	}
	if err := uc.CreateAccount(ctx, company, user); err != nil {
		return false, err
	}
	uc.log.Info().Str("email", user.Email).Msg("bootstrap admin created")
	return true, nil
}

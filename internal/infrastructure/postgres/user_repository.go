package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository over PostgreSQL (pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the user adapter. Pass a pool or a tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.company_id, u.email, u.password_hash, u.first_name, u.last_name, u.job_position,
	u.professional_address, u.postal_code, u.city, u.country, u.direct_phone, u.mobile_phone,
	u.role, u.is_active, u.daily_search_limit, u.last_login_at, u.created_at, u.updated_at`

const companyColumns = `c.id, c.name, c.registration_number, c.activities, c.activities_other,
	c.employee_count, c.phone, c.created_at, c.updated_at`

func userDest(u *entity.User) []any {
	return []any{
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.JobPosition,
		&u.ProfessionalAddress, &u.PostalCode, &u.City, &u.Country, &u.DirectPhone, &u.MobilePhone,
		&u.Role, &u.IsActive, &u.DailySearchLimit, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	}
}

func companyDest(c *entity.Company) []any {
	return []any{
		&c.ID, &c.Name, &c.RegistrationNumber, &c.Activities, &c.ActivitiesOther,
		&c.EmployeeCount, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	}
}

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, first_name, last_name, job_position,
			professional_address, postal_code, city, country, direct_phone, mobile_phone,
			role, is_active, daily_search_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.JobPosition,
		user.ProfessionalAddress, user.PostalCode, user.City, user.Country, user.DirectPhone, user.MobilePhone,
		user.Role, user.IsActive, user.DailySearchLimit, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id).Scan(userDest(&u)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetByEmail case-insensitive lookup.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1) LIMIT 1`, email).
		Scan(userDest(&u)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetFirstByCompany oldest account of a company; registration creates it.
func (r *UserRepo) GetFirstByCompany(ctx context.Context, companyID string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.company_id = $1
		ORDER BY u.created_at ASC LIMIT 1`, companyID).Scan(userDest(&u)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get first user of company: %w", err)
	}
	return &u, nil
}

func scanUserWithCompany(row rowScanner) (*entity.UserWithCompany, error) {
	var uc entity.UserWithCompany
	dest := append(userDest(&uc.User), companyDest(&uc.Company)...)
	dest = append(dest, &uc.TodaySearches)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &uc, nil
}

// GetProfile user joined with its company and the search counter of day.
func (r *UserRepo) GetProfile(ctx context.Context, id string, day time.Time) (*entity.UserWithCompany, error) {
	query := `
		SELECT ` + userColumns + `, ` + companyColumns + `, COALESCE(l.search_count, 0)
		FROM users u
		JOIN companies c ON c.id = u.company_id
		LEFT JOIN user_search_logs l ON l.user_id = u.id AND l.log_date = $2::date
		WHERE u.id = $1`
	uc, err := scanUserWithCompany(r.q.QueryRow(ctx, query, id, day))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return uc, nil
}

// List users newest first.
func (r *UserRepo) List(ctx context.Context, day time.Time, limit, offset int) ([]*entity.UserWithCompany, error) {
	query := `
		SELECT ` + userColumns + `, ` + companyColumns + `, COALESCE(l.search_count, 0)
		FROM users u
		JOIN companies c ON c.id = u.company_id
		LEFT JOIN user_search_logs l ON l.user_id = u.id AND l.log_date = $1::date
		ORDER BY u.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, day, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserWithCompany
	for rows.Next() {
		uc, err := scanUserWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, uc)
	}
	return list, rows.Err()
}

// Update writes every mutable column.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, first_name = $4, last_name = $5, job_position = $6,
			professional_address = $7, postal_code = $8, city = $9, country = $10, direct_phone = $11,
			mobile_phone = $12, role = $13, is_active = $14, daily_search_limit = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.JobPosition,
		user.ProfessionalAddress, user.PostalCode, user.City, user.Country, user.DirectPhone,
		user.MobilePhone, user.Role, user.IsActive, user.DailySearchLimit, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// TouchLastLogin stamps last_login_at.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count total users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

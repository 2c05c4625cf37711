package postgres

import (
	"context"
	"fmt"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo CompanyRepository over PostgreSQL (pool or tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the company adapter.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persists a new company. A taken registration number maps to ErrRegistrationExists.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, registration_number, activities, activities_other, employee_count, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.RegistrationNumber, company.Activities, company.ActivitiesOther,
		company.EmployeeCount, company.Phone, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRegistrationExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when missing.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id)
}

// GetByRegistrationNumber looks a company up by tax code.
func (r *CompanyRepo) GetByRegistrationNumber(ctx context.Context, number string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.registration_number = $1`, number)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg string) (*entity.Company, error) {
	var c entity.Company
	if err := r.q.QueryRow(ctx, query, arg).Scan(companyDest(&c)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update writes the mutable company columns.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, registration_number = $3, activities = $4, activities_other = $5,
			employee_count = $6, phone = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.RegistrationNumber, company.Activities, company.ActivitiesOther,
		company.EmployeeCount, company.Phone, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRegistrationExists
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// DeleteIfUnused frees the registration number once the last user of the company is gone.
func (r *CompanyRepo) DeleteIfUnused(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM companies WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM users WHERE company_id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

package dto

import "time"

// RegisterRequest self-registration: a company with its first user.
type RegisterRequest struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8,max=72"`
	CompanyName         string `json:"company_name" validate:"required,max=200"`
	RegistrationNumber  string `json:"registration_number" validate:"required,max=50"`
	Activities          string `json:"activities" validate:"required,max=500"`
	ActivitiesOther     string `json:"activities_other" validate:"omitempty,max=500"`
	EmployeeCount       string `json:"employee_count" validate:"required,max=50"`
	CompanyPhone        string `json:"company_phone" validate:"required,max=50"`
	FirstName           string `json:"first_name" validate:"required,max=100"`
	LastName            string `json:"last_name" validate:"required,max=100"`
	JobPosition         string `json:"job_position" validate:"required,max=100"`
	ProfessionalAddress string `json:"professional_address" validate:"required,max=300"`
	PostalCode          string `json:"postal_code" validate:"required,max=20"`
	City                string `json:"city" validate:"required,max=100"`
	Country             string `json:"country" validate:"omitempty,max=100"`
	DirectPhone         string `json:"direct_phone" validate:"required,max=50"`
	MobilePhone         string `json:"mobile_phone" validate:"required,max=50"`
}

// CreateUserRequest admin creation; same payload as registration plus role and quota.
type CreateUserRequest struct {
	RegisterRequest
	Role             string `json:"role" validate:"omitempty,oneof=admin user"`
	DailySearchLimit *int   `json:"daily_search_limit" validate:"omitempty,min=0"`
	IsActive         *bool  `json:"is_active"`
}

// UpdateUserRequest partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email               *string `json:"email" validate:"omitempty,email"`
	Password            *string `json:"password" validate:"omitempty,min=8,max=72"`
	CompanyName         *string `json:"company_name" validate:"omitempty,min=1,max=200"`
	RegistrationNumber  *string `json:"registration_number" validate:"omitempty,min=1,max=50"`
	Activities          *string `json:"activities" validate:"omitempty,max=500"`
	ActivitiesOther     *string `json:"activities_other" validate:"omitempty,max=500"`
	EmployeeCount       *string `json:"employee_count" validate:"omitempty,max=50"`
	CompanyPhone        *string `json:"company_phone" validate:"omitempty,max=50"`
	FirstName           *string `json:"first_name" validate:"omitempty,max=100"`
	LastName            *string `json:"last_name" validate:"omitempty,max=100"`
	JobPosition         *string `json:"job_position" validate:"omitempty,max=100"`
	ProfessionalAddress *string `json:"professional_address" validate:"omitempty,max=300"`
	PostalCode          *string `json:"postal_code" validate:"omitempty,max=20"`
	City                *string `json:"city" validate:"omitempty,max=100"`
	Country             *string `json:"country" validate:"omitempty,max=100"`
	DirectPhone         *string `json:"direct_phone" validate:"omitempty,max=50"`
	MobilePhone         *string `json:"mobile_phone" validate:"omitempty,max=50"`
	Role                *string `json:"role" validate:"omitempty,oneof=admin user"`
	IsActive            *bool   `json:"is_active"`
	DailySearchLimit    *int    `json:"daily_search_limit" validate:"omitempty,min=0"`
}

// UserResponse user profile (never the password hash) with its company flattened in.
type UserResponse struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"company_id"`
	CompanyName         string     `json:"company_name"`
	RegistrationNumber  string     `json:"registration_number"`
	Activities          string     `json:"activities"`
	ActivitiesOther     string     `json:"activities_other"`
	EmployeeCount       string     `json:"employee_count"`
	CompanyPhone        string     `json:"company_phone"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	JobPosition         string     `json:"job_position"`
	ProfessionalAddress string     `json:"professional_address"`
	PostalCode          string     `json:"postal_code"`
	City                string     `json:"city"`
	Country             string     `json:"country"`
	DirectPhone         string     `json:"direct_phone"`
	MobilePhone         string     `json:"mobile_phone"`
	Role                string     `json:"role"`
	IsActive            bool       `json:"is_active"`
	LastLoginAt         *time.Time `json:"last_login_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	QuotaStatus
}

// QuotaStatus daily search quota. Remaining is nil when the quota is unlimited.
type QuotaStatus struct {
	DailySearchLimit     int  `json:"daily_search_limit"`
	SearchCount          int  `json:"search_count"`
	DailySearchRemaining *int `json:"daily_search_remaining"`
	Unlimited            bool `json:"unlimited"`
}

// IncrementSearchResponse answer of a quota consumption.
type IncrementSearchResponse struct {
	Allowed bool `json:"allowed"`
	QuotaStatus
}

// UserListResponse paginated user listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest identifier is an email or a company registration number.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=200"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse JWT plus profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

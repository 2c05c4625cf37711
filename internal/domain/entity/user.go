package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultCountry applied when registration omits the country.
const DefaultCountry = "Vietnam"

// User a person belonging to a Company.
type User struct {
	ID                  string
	CompanyID           string
	Email               string
	PasswordHash        string // bcrypt hash, never plain text once persisted
	FirstName           string
	LastName            string
	JobPosition         string
	ProfessionalAddress string
	PostalCode          string
	City                string
	Country             string
	DirectPhone         string
	MobilePhone         string
	Role                string // admin, user
	IsActive            bool
	DailySearchLimit    int
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserWithCompany user joined with its company, as returned by profile reads.
type UserWithCompany struct {
	User
	Company       Company
	TodaySearches int
}

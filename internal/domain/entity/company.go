package entity

import "time"

// Company tenant organisation owning users.
type Company struct {
	ID                 string
	Name               string
	RegistrationNumber string // tax code, unique
	Activities         string
	ActivitiesOther    string
	EmployeeCount      string
	Phone              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

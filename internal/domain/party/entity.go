// internal/domain/party/entity.go
package party

import "time"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
)

func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Address is an optional value object owned by at most one client or employee
type Address struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Street    string    `gorm:"size:100" json:"street,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	State     string    `gorm:"size:100" json:"state,omitempty"`
	ZipCode   string    `gorm:"size:20" json:"zip_code,omitempty"`
	Country   string    `gorm:"size:100" json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Address) TableName() string { return "addresses" }

type Client struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:100;not null;index" json:"name"`
	Email      string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone      string    `gorm:"size:50" json:"phone,omitempty"`
	NationalID string    `gorm:"size:14;not null;uniqueIndex" json:"national_id"`
	AddressID  *int64    `gorm:"uniqueIndex" json:"address_id,omitempty"`
	Address    *Address  `gorm:"constraint:OnDelete:SET NULL" json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

type Employee struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string         `gorm:"size:100;not null;index" json:"name"`
	Email      string         `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone      string         `gorm:"size:50" json:"phone,omitempty"`
	NationalID string         `gorm:"size:14;not null;uniqueIndex" json:"national_id"`
	Status     EmployeeStatus `gorm:"size:20;not null;index" json:"status"`
	AddressID  *int64         `gorm:"uniqueIndex" json:"address_id,omitempty"`
	Address    *Address       `gorm:"constraint:OnDelete:SET NULL" json:"address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

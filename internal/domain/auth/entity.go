// internal/domain/auth/entity.go
package auth

import "time"

type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleVendor        Role = "Vendor"
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleVendor
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	EmployeeID   *int64    `gorm:"index" json:"employee_id,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// BlacklistedToken marks a jti as revoked until ExpiresAt
type BlacklistedToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	JTI       string    `gorm:"column:jti;size:64;not null;uniqueIndex" json:"jti"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }

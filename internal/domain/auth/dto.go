package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email,max=100"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Role       Role   `json:"role" binding:"required"`
	EmployeeID *int64 `json:"employee_id" binding:"omitempty,min=1"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserListFilters struct {
	Role  *Role `form:"role"`
	Skip  int   `form:"skip" binding:"omitempty,min=0"`
	Limit int   `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Identity is what a validated token says about its bearer
type Identity struct {
	UserID    int64
	Email     string
	Role      Role
	JTI       string
	ExpiresAt time.Time
}

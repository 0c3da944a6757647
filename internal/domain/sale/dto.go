package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	ClientID       int64            `json:"client_id" binding:"required,min=1"`
	EmployeeID     int64            `json:"employee_id" binding:"required,min=1"`
	VehicleID      int64            `json:"vehicle_id" binding:"required,min=1"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	PaymentMethod  PaymentMethod    `json:"payment_method" binding:"required"`
	SaleDate       string           `json:"sale_date" binding:"required"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Notes          string           `json:"notes" binding:"max=1000"`
}

// UpdateSaleRequest merges onto the stored sale; nil fields keep their value
type UpdateSaleRequest struct {
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	PaymentMethod  *PaymentMethod   `json:"payment_method"`
	Status         *Status          `json:"status"`
	SaleDate       *string          `json:"sale_date"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Notes          *string          `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// ListFilters are not additive: only the highest priority criterion present
// is applied, in the order date range, client, employee, status, payment method.
type ListFilters struct {
	StartDate     string         `form:"start_date"`
	EndDate       string         `form:"end_date"`
	ClientID      *int64         `form:"client_id"`
	EmployeeID    *int64         `form:"employee_id"`
	Status        *Status        `form:"status"`
	PaymentMethod *PaymentMethod `form:"payment_method"`
	OrderByValue  string         `form:"order_by_value" binding:"omitempty,oneof=asc desc"`
	Skip          int            `form:"skip" binding:"omitempty,min=0"`
	Limit         int            `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Criterion names the single filter a List call applies
type Criterion string

const (
	ByDateRange     Criterion = "date_range"
	ByClient        Criterion = "client"
	ByEmployee      Criterion = "employee"
	ByStatus        Criterion = "status"
	ByPaymentMethod Criterion = "payment_method"
	ByNothing       Criterion = "none"
)

// Query is the resolved form of ListFilters handed to the repository
type Query struct {
	Criterion     Criterion
	Start         time.Time
	End           time.Time
	ClientID      int64
	EmployeeID    int64
	Status        Status
	PaymentMethod PaymentMethod
	OrderByValue  string
	Skip          int
	Limit         int
}

type ListResponse struct {
	Sales     []Sale    `json:"sales"`
	Count     int       `json:"count"`
	Criterion Criterion `json:"filter_applied"`
	Skip      int       `json:"skip"`
	Limit     int       `json:"limit"`
}

// StatusChange is returned by status updates. Warning is set when the
// vehicle could not be marked as sold.
type StatusChange struct {
	Sale    *Sale  `json:"sale"`
	Warning string `json:"warning,omitempty"`
}

type StatisticsFilters struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Statistics struct {
	TotalSales           int64            `json:"total_sales"`
	TotalRevenue         decimal.Decimal  `json:"total_revenue"`
	TotalCommission      decimal.Decimal  `json:"total_commission"`
	SalesByStatus        map[string]int64 `json:"sales_by_status"`
	SalesByPaymentMethod map[string]int64 `json:"sales_by_payment_method"`
	Period               *Period          `json:"period,omitempty"`
}

// GroupCount is one row of a GROUP BY count
type GroupCount struct {
	Key   string `gorm:"column:group_key"`
	Count int64  `gorm:"column:group_count"`
}

// Totals is the aggregate row of the statistics query
type Totals struct {
	Count      int64
	Revenue    decimal.Decimal
	Commission decimal.Decimal
}
